package scene

import (
	"fmt"
	"math"

	"github.com/milk9111/scenegrid/common"
)

// binRange is an inclusive range of bin cells, or empty.
type binRange struct {
	minX, minY int
	maxX, maxY int
	empty      bool
}

func (r binRange) contains(x, y int) bool {
	return !r.empty && x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

type entry struct {
	obj    Object
	bounds common.Rect // bounds the current bin membership was computed from
	rng    binRange
	stamp  uint64
	dirty  bool
}

// Container is a binned spatial index over a fixed world rectangle:
// a grid of bins, each holding the objects whose bounds overlap it.
// An object spanning several bins is a member of all of them.
//
// The container is a plain value owned by whoever builds the scene;
// independent containers never share state, so test scenes can run
// side by side.
//
// All mutation and queries happen on one logical thread within the
// frame step. Bin membership reflects an object's bounds as of the
// most recent Insert, Move, or dirty flush: callers that mutate an
// object's bounds must call Move or MarkDirty before the next query.
type Container struct {
	world        common.Rect
	binsX, binsY int
	cellW, cellH float64

	bins    [][]*entry
	entries map[Object]*entry
	pending []Object
	stamp   uint64
}

// NewContainer builds a container covering world with binsX x binsY
// bins. The world rect must have positive area.
func NewContainer(world common.Rect, binsX, binsY int) (*Container, error) {
	if world.Degenerate() {
		return nil, fmt.Errorf("scene: container world rect %v has no area", world)
	}
	if binsX < 1 || binsY < 1 {
		return nil, fmt.Errorf("scene: container needs at least 1x1 bins, got %dx%d", binsX, binsY)
	}
	return &Container{
		world:   world,
		binsX:   binsX,
		binsY:   binsY,
		cellW:   world.Width() / float64(binsX),
		cellH:   world.Height() / float64(binsY),
		bins:    make([][]*entry, binsX*binsY),
		entries: make(map[Object]*entry),
	}, nil
}

// Bins returns the grid dimensions.
func (c *Container) Bins() (x, y int) {
	return c.binsX, c.binsY
}

// BinBounds returns the world rect covered by bin (x, y).
func (c *Container) BinBounds(x, y int) common.Rect {
	return common.Rect{
		Min: common.Vec2{
			X: c.world.Min.X + float64(x)*c.cellW,
			Y: c.world.Min.Y + float64(y)*c.cellH,
		},
		Max: common.Vec2{
			X: c.world.Min.X + float64(x+1)*c.cellW,
			Y: c.world.Min.Y + float64(y+1)*c.cellH,
		},
	}
}

// Len returns the number of indexed objects.
func (c *Container) Len() int {
	return len(c.entries)
}

// Has reports whether obj is currently indexed.
func (c *Container) Has(obj Object) bool {
	_, ok := c.entries[obj]
	return ok
}

// rangeFor maps a world rect to the inclusive range of bins it
// overlaps. Degenerate rects occupy the single bin containing their
// Min corner. With clampInside set (insertion), rects beyond the world
// edge are pulled into the nearest edge bin so objects are never lost
// from the index; without it (queries), a rect fully outside yields an
// empty range.
func (c *Container) rangeFor(r common.Rect, clampInside bool) binRange {
	if r.Degenerate() {
		x := c.cellX(r.Min.X)
		y := c.cellY(r.Min.Y)
		return binRange{minX: x, minY: y, maxX: x, maxY: y}
	}

	minX := int(math.Floor((r.Min.X - c.world.Min.X) / c.cellW))
	minY := int(math.Floor((r.Min.Y - c.world.Min.Y) / c.cellH))
	maxX := int(math.Ceil((r.Max.X-c.world.Min.X)/c.cellW)) - 1
	maxY := int(math.Ceil((r.Max.Y-c.world.Min.Y)/c.cellH)) - 1

	if !clampInside && (maxX < 0 || maxY < 0 || minX >= c.binsX || minY >= c.binsY) {
		return binRange{empty: true}
	}
	return binRange{
		minX: common.ClampInt(minX, 0, c.binsX-1),
		minY: common.ClampInt(minY, 0, c.binsY-1),
		maxX: common.ClampInt(maxX, 0, c.binsX-1),
		maxY: common.ClampInt(maxY, 0, c.binsY-1),
	}
}

func (c *Container) cellX(wx float64) int {
	return common.ClampInt(int(math.Floor((wx-c.world.Min.X)/c.cellW)), 0, c.binsX-1)
}

func (c *Container) cellY(wy float64) int {
	return common.ClampInt(int(math.Floor((wy-c.world.Min.Y)/c.cellH)), 0, c.binsY-1)
}

// Insert indexes obj under its current bounds. Inserting an object
// that is already present re-indexes it, so Insert is idempotent.
func (c *Container) Insert(obj Object) {
	if obj == nil {
		return
	}
	if _, ok := c.entries[obj]; ok {
		c.Move(obj)
		return
	}
	e := &entry{
		obj:    obj,
		bounds: obj.Bounds(),
	}
	e.rng = c.rangeFor(e.bounds, true)
	c.entries[obj] = e
	c.eachBin(e.rng, func(i int) {
		c.bins[i] = append(c.bins[i], e)
	})
}

// Remove drops obj from every bin. Removing an absent object is a
// no-op, not an error.
func (c *Container) Remove(obj Object) {
	e, ok := c.entries[obj]
	if !ok {
		return
	}
	c.eachBin(e.rng, func(i int) {
		c.removeFromBin(i, e)
	})
	delete(c.entries, obj)
}

// Move re-reads obj's bounds and updates its bin membership, touching
// only the bins whose membership actually changed. Unknown objects
// are inserted.
func (c *Container) Move(obj Object) {
	e, ok := c.entries[obj]
	if !ok {
		c.Insert(obj)
		return
	}
	e.dirty = false

	newBounds := obj.Bounds()
	newRng := c.rangeFor(newBounds, true)
	oldRng := e.rng
	e.bounds = newBounds
	if newRng == oldRng {
		return
	}
	e.rng = newRng

	// Symmetric difference of the two ranges: bins only in the old
	// range lose the entry, bins only in the new range gain it.
	c.eachBin(oldRng, func(i int) {
		x, y := i%c.binsX, i/c.binsX
		if !newRng.contains(x, y) {
			c.removeFromBin(i, e)
		}
	})
	c.eachBin(newRng, func(i int) {
		x, y := i%c.binsX, i/c.binsX
		if !oldRng.contains(x, y) {
			c.bins[i] = append(c.bins[i], e)
		}
	})
}

// MarkDirty records that obj's bounds changed; its membership is
// recomputed lazily before the next query. Cheaper than Move when an
// object mutates several times per frame.
func (c *Container) MarkDirty(obj Object) {
	e, ok := c.entries[obj]
	if !ok || e.dirty {
		return
	}
	e.dirty = true
	c.pending = append(c.pending, obj)
}

func (c *Container) flushDirty() {
	if len(c.pending) == 0 {
		return
	}
	for _, obj := range c.pending {
		if e, ok := c.entries[obj]; ok && e.dirty {
			c.Move(obj)
		}
	}
	c.pending = c.pending[:0]
}

// Query walks every bin overlapping rect and reports each distinct
// candidate whose layer bit is set in layerMask, is visible, and whose
// actual bounds intersect rect. Objects spanning several queried bins
// are reported exactly once. visit returns false to stop early.
func (c *Container) Query(rect common.Rect, layerMask uint32, visit func(Object) bool) {
	if visit == nil {
		return
	}
	c.flushDirty()

	c.stamp++
	stamp := c.stamp
	rng := c.rangeFor(rect, false)
	if rng.empty {
		return
	}

	for y := rng.minY; y <= rng.maxY; y++ {
		for x := rng.minX; x <= rng.maxX; x++ {
			for _, e := range c.bins[y*c.binsX+x] {
				if e.stamp == stamp {
					continue
				}
				e.stamp = stamp
				if !e.obj.Visible() {
					continue
				}
				if layerMask&LayerMask(e.obj.Layer()) == 0 {
					continue
				}
				if !e.obj.Bounds().Intersects(rect) {
					continue
				}
				if !visit(e.obj) {
					return
				}
			}
		}
	}
}

// Collect is the collection-mode query: same filtering as Query, with
// the candidates appended to a fresh slice.
func (c *Container) Collect(rect common.Rect, layerMask uint32) []Object {
	var out []Object
	c.Query(rect, layerMask, func(o Object) bool {
		out = append(out, o)
		return true
	})
	return out
}

func (c *Container) eachBin(rng binRange, fn func(i int)) {
	if rng.empty {
		return
	}
	for y := rng.minY; y <= rng.maxY; y++ {
		for x := rng.minX; x <= rng.maxX; x++ {
			fn(y*c.binsX + x)
		}
	}
}

func (c *Container) removeFromBin(i int, e *entry) {
	bin := c.bins[i]
	for j, cand := range bin {
		if cand == e {
			bin[j] = bin[len(bin)-1]
			c.bins[i] = bin[:len(bin)-1]
			return
		}
	}
}
