package scene

import (
	"github.com/milk9111/scenegrid/collision"
	"github.com/milk9111/scenegrid/common"
)

// Object is the capability an entity needs to live in a Container.
// Bounds must reflect the object's current position; after mutating
// whatever drives Bounds, the caller must tell the container via Move
// or MarkDirty before the next query (see Container).
type Object interface {
	// Bounds returns the current world-space axis-aligned bounds.
	Bounds() common.Rect
	// Layer returns the scene layer in [0, 31] the object belongs to.
	Layer() int
	// Visible reports whether queries should see the object.
	Visible() bool
}

// Collider is an Object that can participate in narrow-phase tests.
type Collider interface {
	Object
	CollisionSurface() collision.Surface
}

// AllLayers matches every scene layer in a query mask.
const AllLayers uint32 = 0xffffffff

// LayerMask returns the query mask bit for a single layer. Layers
// outside [0, 31] yield an empty mask.
func LayerMask(layer int) uint32 {
	if layer < 0 || layer > 31 {
		return 0
	}
	return 1 << uint(layer)
}
