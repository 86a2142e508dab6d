package collision

import "github.com/milk9111/scenegrid/common"

// Arena is a per-call scratch buffer for synthesizing transient
// polygons (tile batches build one world polygon per candidate cell).
// It replaces the shared mutable scratch the original design used, so
// two scenes can query concurrently without aliasing each other's
// vertices. Zero value is ready to use.
type Arena struct {
	buf []common.Vec2
}

// Verts returns a vertex slice of length n backed by the arena. The
// slice is only valid until the next Verts call: callers must finish
// testing one synthesized polygon before requesting the next.
func (a *Arena) Verts(n int) []common.Vec2 {
	if cap(a.buf) < n {
		a.buf = make([]common.Vec2, n)
	}
	return a.buf[:n]
}
