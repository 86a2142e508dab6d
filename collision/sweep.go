package collision

import (
	"math"

	"github.com/milk9111/scenegrid/common"
)

// axisSpeedFloor is the displacement-per-step below which an axis is
// treated as stationary instead of dividing by a near-zero speed.
const axisSpeedFloor = 1e-12

// SweepPolygons tests mover, translating at vel for dt, against the
// stationary target. Both polygons are in world space at their start
// positions. It reports the first contact within the step, or false if
// the shapes never touch during [0, dt].
//
// The test is a swept separating-axis pass over the edge normals of
// both polygons: each axis yields an entry/exit time interval for the
// projected shadows, and the shapes collide iff the latest entry
// precedes the earliest exit inside the step. Pairs already
// overlapping at t=0 report Time 0 with the minimum-translation
// penetration axis instead of a sweep axis.
func SweepPolygons(mover Polygon, vel common.Vec2, dt float64, target Polygon) (Contact, bool) {
	mover.mustValid()
	target.mustValid()

	d := vel.Scale(dt)

	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	var enterAxis common.Vec2

	test := func(axis common.Vec2) bool {
		minA, maxA := project(mover, axis)
		minB, maxB := project(target, axis)

		s := d.Dot(axis)
		if math.Abs(s) < axisSpeedFloor {
			// Stationary along this axis: separated now means
			// separated forever.
			return maxA >= minB && maxB >= minA
		}

		t0 := (minB - maxA) / s
		t1 := (maxB - minA) / s
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
			enterAxis = axis
		}
		if t1 < tExit {
			tExit = t1
		}
		return tEnter <= tExit
	}

	if !eachAxis(mover, test) || !eachAxis(target, test) {
		return Contact{}, false
	}
	if tExit < 0 || tEnter > 1 {
		return Contact{}, false
	}

	if tEnter < 0 {
		// Already overlapping at the start of the step.
		return overlapContact(mover, target)
	}

	n := enterAxis
	if d.Dot(n) > 0 {
		n = n.Neg()
	}
	return Contact{
		Normal: n,
		Time:   common.Clamp(tEnter, 0, 1),
	}, true
}

// overlapContact resolves an initially-overlapping pair: Time 0, with
// the minimum-translation axis as the normal and the overlap depth as
// the penetration.
func overlapContact(mover, target Polygon) (Contact, bool) {
	best := math.Inf(1)
	var bestAxis common.Vec2

	measure := func(axis common.Vec2) bool {
		minA, maxA := project(mover, axis)
		minB, maxB := project(target, axis)
		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap < 0 {
			return false
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
		return true
	}

	if !eachAxis(mover, measure) || !eachAxis(target, measure) {
		return Contact{}, false
	}

	n := bestAxis
	if mover.centroid().Sub(target.centroid()).Dot(n) < 0 {
		n = n.Neg()
	}
	return Contact{
		Normal:      n,
		Time:        0,
		Penetration: best,
	}, true
}

// eachAxis feeds the unit edge normals of p to fn, stopping early when
// fn reports separation. Zero-length edges contribute no axis.
func eachAxis(p Polygon, fn func(axis common.Vec2) bool) bool {
	n := len(p.Verts)
	for i := 0; i < n; i++ {
		edge := p.Verts[(i+1)%n].Sub(p.Verts[i])
		if edge.IsZero() {
			continue
		}
		if !fn(edge.Perp().Normalize()) {
			return false
		}
	}
	return true
}

func project(p Polygon, axis common.Vec2) (min, max float64) {
	min = p.Verts[0].Dot(axis)
	max = min
	for _, v := range p.Verts[1:] {
		d := v.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
