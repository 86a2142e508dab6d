package tile

import "github.com/milk9111/scenegrid/common"

// Type is a reusable tile descriptor shared by every cell that refers
// to it: a template, not a per-cell allocation. Layers own a registry
// of Types and cells reference them by index.
type Type struct {
	// Index is the type's slot in its layer's registry, assigned when
	// the type is first registered.
	Index int

	Name string

	// Material names the render material. Rendering is out of scope
	// here; the field only marks the type as carrying visual data.
	Material string

	// CollisionsEnabled gates the type out of collision matching
	// entirely when false.
	CollisionsEnabled bool

	// ObjectMask is matched against a query's collision mask; a tile
	// only participates when the masks intersect.
	ObjectMask uint32

	// Collision is an optional convex collision polygon in unit tile
	// space ([-0.5, 0.5] on both axes, clockwise). Empty means the
	// tile collides as its full axis-aligned bounds.
	Collision []common.Vec2
}

// HasData reports whether the type describes anything at all. A tile
// whose type has neither material nor collision data cannot be placed.
func (t *Type) HasData() bool {
	if t == nil {
		return false
	}
	return t.Material != "" || len(t.Collision) >= 3 || t.CollisionsEnabled
}
