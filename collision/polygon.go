package collision

import (
	"fmt"

	"github.com/milk9111/scenegrid/common"
)

// Polygon is a convex collision shape: an ordered sequence of
// world-space vertices with clockwise winding. Convexity is a
// documented requirement of the sweep math and is not re-verified per
// test; concave polygons produce unsupported results.
type Polygon struct {
	Verts []common.Vec2
}

// NewPolygon validates and wraps a vertex slice. Fewer than 3 vertices
// is a checked precondition failure.
func NewPolygon(verts []common.Vec2) (Polygon, error) {
	if len(verts) < 3 {
		return Polygon{}, fmt.Errorf("collision: polygon needs at least 3 vertices, got %d", len(verts))
	}
	return Polygon{Verts: verts}, nil
}

// RectPolygon builds the four-corner polygon of an axis-aligned rect.
func RectPolygon(r common.Rect) Polygon {
	return Polygon{Verts: []common.Vec2{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}}
}

// Translate returns a copy of p shifted by d.
func (p Polygon) Translate(d common.Vec2) Polygon {
	out := Polygon{Verts: make([]common.Vec2, len(p.Verts))}
	for i, v := range p.Verts {
		out.Verts[i] = v.Add(d)
	}
	return out
}

// Bounds returns the axis-aligned bounding rect of the polygon.
func (p Polygon) Bounds() common.Rect {
	if len(p.Verts) == 0 {
		return common.Rect{}
	}
	r := common.Rect{Min: p.Verts[0], Max: p.Verts[0]}
	for _, v := range p.Verts[1:] {
		if v.X < r.Min.X {
			r.Min.X = v.X
		}
		if v.Y < r.Min.Y {
			r.Min.Y = v.Y
		}
		if v.X > r.Max.X {
			r.Max.X = v.X
		}
		if v.Y > r.Max.Y {
			r.Max.Y = v.Y
		}
	}
	return r
}

func (p Polygon) centroid() common.Vec2 {
	var c common.Vec2
	if len(p.Verts) == 0 {
		return c
	}
	for _, v := range p.Verts {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.Verts)))
}

// mustValid panics on a polygon that bypassed NewPolygon. Sweep math
// on fewer than 3 vertices would silently produce garbage normals.
func (p Polygon) mustValid() {
	if len(p.Verts) < 3 {
		panic(fmt.Sprintf("collision: malformed polygon with %d vertices", len(p.Verts)))
	}
}
