package collision

import "github.com/milk9111/scenegrid/common"

// Kind discriminates the closed set of collision surface variants.
type Kind int

const (
	// KindPolygon is a single convex world-space polygon.
	KindPolygon Kind = iota
	// KindTileBatch is the implicit geometry of a tile grid: one
	// polygon per collidable cell, synthesized on demand.
	KindTileBatch
)

// TileBatch enumerates the world-space polygons of collidable tiles
// overlapping a region. Implemented by tile.Layer; defined here so the
// surface dispatch stays a closed set without importing the grid.
//
// Each polygon is synthesized into the arena and is only valid for the
// duration of the fn call. fn returns false to stop early.
type TileBatch interface {
	EachCollisionPoly(region common.Rect, mask uint32, arena *Arena, fn func(poly Polygon, owner any) bool)
}

// Surface is one side of a narrow-phase collision test: a tagged
// variant carrying either a polygon or a tile batch, plus the priority
// that decides which side's geometry controls the math.
type Surface struct {
	Kind     Kind
	Priority int

	// Owner tags contacts and short-circuits self tests. Must be a
	// comparable value; the conventional choice is the pointer to the
	// owning scene object or layer.
	Owner any

	// Mask is the surface's object-type bitmask, matched against tile
	// type masks when testing a batch.
	Mask uint32

	// Poly is set for KindPolygon.
	Poly Polygon

	// Batch is set for KindTileBatch.
	Batch TileBatch
}

// PolygonSurface wraps a convex polygon as a collision surface.
func PolygonSurface(owner any, priority int, mask uint32, poly Polygon) Surface {
	poly.mustValid()
	return Surface{
		Kind:     KindPolygon,
		Priority: priority,
		Owner:    owner,
		Mask:     mask,
		Poly:     poly,
	}
}

// BatchSurface wraps a tile batch as a collision surface.
func BatchSurface(owner any, priority int, batch TileBatch) Surface {
	return Surface{
		Kind:     KindTileBatch,
		Priority: priority,
		Owner:    owner,
		Batch:    batch,
	}
}

type pairHandler func(dt float64, vel common.Vec2, mover, target Surface, arena *Arena) []Contact

// dispatch is keyed by (mover kind, target kind). Keeping the table
// explicit makes the variant pairing exhaustive: adding a Kind without
// handlers is caught by the lookup panic in testMove.
var dispatch = map[[2]Kind]pairHandler{
	{KindPolygon, KindPolygon}:     polyVsPoly,
	{KindPolygon, KindTileBatch}:   polyVsBatch,
	{KindTileBatch, KindPolygon}:   batchVsPoly,
	{KindTileBatch, KindTileBatch}: batchVsBatch,
}

// TestMove sweeps s, moving at vel for dt, against the stationary
// other surface. Contacts are ordered by time of impact, with s as the
// mover in every record.
//
// Orientation rule: the lower-priority surface is always the swept
// side, so specialized geometry (tile batches) controls the math. When
// s outranks other, the roles are swapped internally and the resulting
// contacts flipped back. Equal priorities keep the caller's "s moves
// against other" formulation, which makes TestMove and TestMoveAgainst
// symmetric.
func (s Surface) TestMove(dt float64, vel common.Vec2, other Surface) []Contact {
	// Identity check before any float math: an object never collides
	// with itself, including the zero-velocity overlap path.
	if s.Owner != nil && s.Owner == other.Owner {
		return nil
	}

	var arena Arena
	if s.Priority > other.Priority {
		contacts := testMove(dt, vel.Neg(), other, s, &arena)
		for i := range contacts {
			contacts[i] = contacts[i].swap()
		}
		return contacts
	}
	return testMove(dt, vel, s, other, &arena)
}

// TestMoveAgainst is the two-sided entry point from the other
// surface's point of view: mover sweeps at vel against the stationary
// receiver. Equivalent to mover.TestMove(dt, vel, s).
func (s Surface) TestMoveAgainst(dt float64, vel common.Vec2, mover Surface) []Contact {
	return mover.TestMove(dt, vel, s)
}

func testMove(dt float64, vel common.Vec2, mover, target Surface, arena *Arena) []Contact {
	h, ok := dispatch[[2]Kind{mover.Kind, target.Kind}]
	if !ok {
		panic("collision: no handler for surface kind pair")
	}
	contacts := h(dt, vel, mover, target, arena)
	sortContacts(contacts)
	return contacts
}

func polyVsPoly(dt float64, vel common.Vec2, mover, target Surface, _ *Arena) []Contact {
	c, hit := SweepPolygons(mover.Poly, vel, dt, target.Poly)
	if !hit {
		return nil
	}
	c.Mover = mover.Owner
	c.Target = target.Owner
	return []Contact{c}
}

func polyVsBatch(dt float64, vel common.Vec2, mover, target Surface, arena *Arena) []Contact {
	region := mover.Poly.Bounds().Sweep(vel, dt)
	var contacts []Contact
	target.Batch.EachCollisionPoly(region, mover.Mask, arena, func(poly Polygon, owner any) bool {
		if c, hit := SweepPolygons(mover.Poly, vel, dt, poly); hit {
			c.Mover = mover.Owner
			c.Target = owner
			contacts = append(contacts, c)
		}
		return true
	})
	return contacts
}

// batchVsPoly only occurs when a batch is the lower-priority side. The
// grid itself never translates, so the test is re-expressed as the
// polygon sweeping through the batch with the opposite velocity.
func batchVsPoly(dt float64, vel common.Vec2, mover, target Surface, arena *Arena) []Contact {
	contacts := polyVsBatch(dt, vel.Neg(), target, mover, arena)
	for i := range contacts {
		contacts[i] = contacts[i].swap()
	}
	return contacts
}

// batchVsBatch is statically no collision: grids never move, and two
// stationary implicit grids have no meaningful sweep.
func batchVsBatch(float64, common.Vec2, Surface, Surface, *Arena) []Contact {
	return nil
}
