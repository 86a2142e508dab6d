package tile

import (
	"github.com/milk9111/scenegrid/collision"
	"github.com/milk9111/scenegrid/common"
)

// defaultTileVerts is the full-cell collision basis used when a type
// defines no custom polygon: the unit tile bounds, clockwise in
// y-down screen coordinates.
var defaultTileVerts = []common.Vec2{
	{X: -0.5, Y: -0.5},
	{X: 0.5, Y: -0.5},
	{X: 0.5, Y: 0.5},
	{X: -0.5, Y: 0.5},
}

// CollisionMatches enumerates the occupied cells in the world-space
// range [min, max] whose type has collisions enabled and whose object
// mask intersects mask, synthesizing each tile's world polygon into
// the arena. fn returns false to stop. Cells are visited row-major,
// so enumeration order is deterministic.
func (l *Layer) CollisionMatches(min, max common.Vec2, padding int, mask uint32, arena *collision.Arena, fn func(poly collision.Polygon, ref Ref) bool) {
	if !l.Loaded() || fn == nil {
		return
	}
	gr, ok := l.WorldToGrid(common.Rect{Min: min, Max: max}, padding)
	if !ok {
		return
	}
	for gy := gr.MinY; gy <= gr.MaxY; gy++ {
		for gx := gr.MinX; gx <= gr.MaxX; gx++ {
			cell := l.cells[gy*l.width+gx]
			if cell == 0 {
				continue
			}
			t := l.types[int(cell&cellIndexMask)-1]
			if !t.CollisionsEnabled || t.ObjectMask&mask == 0 {
				continue
			}
			poly := l.synthesize(gx, gy, t, cell&cellFlipX != 0, cell&cellFlipY != 0, arena)
			if !fn(poly, Ref{Layer: l, X: gx, Y: gy}) {
				return
			}
		}
	}
}

// synthesize builds the world-space polygon for one cell: the type's
// unit-space basis (or the default tile bounds), flipped per the
// cell's flags, scaled to the tile size, rotated with the layer, and
// offset to the cell's world center. Flipping one axis reverses the
// winding, so the vertex order is reversed again to keep it clockwise.
func (l *Layer) synthesize(gx, gy int, t *Type, flipX, flipY bool, arena *collision.Arena) collision.Polygon {
	base := t.Collision
	if len(base) < 3 {
		base = defaultTileVerts
	}

	verts := arena.Verts(len(base))
	center := l.GridToWorld(gx, gy)
	reverse := flipX != flipY
	for i, v := range base {
		if flipX {
			v.X = -v.X
		}
		if flipY {
			v.Y = -v.Y
		}
		v.X *= l.tileW
		v.Y *= l.tileH
		out := i
		if reverse {
			out = len(base) - 1 - i
		}
		verts[out] = center.Add(v.Rotate(l.Rotation))
	}
	return collision.Polygon{Verts: verts}
}

// EachCollisionPoly implements collision.TileBatch.
func (l *Layer) EachCollisionPoly(region common.Rect, mask uint32, arena *collision.Arena, fn func(poly collision.Polygon, owner any) bool) {
	l.CollisionMatches(region.Min, region.Max, 1, mask, arena, func(poly collision.Polygon, ref Ref) bool {
		return fn(poly, ref)
	})
}

// DefaultBatchPriority outranks the zero priority of ordinary polygon
// surfaces, so the grid's implicit geometry controls the narrow phase
// by default.
const DefaultBatchPriority = 16

// Surface wraps the layer as a tile-batch collision surface with an
// explicit priority.
func (l *Layer) Surface(priority int) collision.Surface {
	return collision.BatchSurface(l, priority, l)
}

// CollisionSurface completes the scene.Collider capability using
// DefaultBatchPriority.
func (l *Layer) CollisionSurface() collision.Surface {
	return l.Surface(DefaultBatchPriority)
}
