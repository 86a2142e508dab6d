package tile

import (
	"fmt"
	"math"

	"github.com/milk9111/scenegrid/common"
)

// Cell values pack a type reference and two flip flags into one
// uint32: zero is empty, otherwise the low bits hold typeIndex+1 and
// the top two bits hold flip-X / flip-Y.
const (
	cellFlipX     = 1 << 30
	cellFlipY     = 1 << 31
	cellIndexMask = cellFlipX - 1
)

// Tile is the decoded content of one occupied cell.
type Tile struct {
	Type  *Type
	FlipX bool
	FlipY bool
}

// CellDef is a deferred cell description used while a layer is still
// Unloaded: the type is referenced by registry index instead of by
// pointer, so defs can be parsed before types are resolved.
type CellDef struct {
	X, Y      int
	TypeIndex int
	FlipX     bool
	FlipY     bool
}

// GridRect is an inclusive range of grid coordinates.
type GridRect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Ref identifies one cell of one layer; used as the owner tag on
// contacts produced by tile collision.
type Ref struct {
	Layer *Layer
	X, Y  int
}

// Layer is a fixed-size rectangular grid of tile cells positioned and
// rotated in world space. Position is the world-space center of the
// grid; Rotation is radians counter-clockwise about that center.
//
// A layer starts Unloaded: cells are described only by deferred
// CellDefs. Load allocates the cell array and resolves the defs,
// exactly once.
type Layer struct {
	Position common.Vec2
	Rotation float64

	width, height int
	tileW, tileH  float64

	cells   []uint32 // nil until Load; len == width*height, row-major
	types   []*Type
	typeIdx map[*Type]int
	pending []CellDef

	sceneLayer int
	visible    bool
	revision   uint64
}

// NewLayer creates an Unloaded layer with the given map size (cells)
// and per-tile world size.
func NewLayer(width, height int, tileW, tileH float64) (*Layer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("tile: layer map size %dx%d is not positive", width, height)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("tile: layer tile size %gx%g is not positive", tileW, tileH)
	}
	return &Layer{
		width:   width,
		height:  height,
		tileW:   tileW,
		tileH:   tileH,
		typeIdx: make(map[*Type]int),
		visible: true,
	}, nil
}

// MapSize returns the grid dimensions in cells.
func (l *Layer) MapSize() (w, h int) {
	return l.width, l.height
}

// TileSize returns the world size of one tile.
func (l *Layer) TileSize() (w, h float64) {
	return l.tileW, l.tileH
}

// Loaded reports whether the cell array has been allocated.
func (l *Layer) Loaded() bool {
	return l.cells != nil
}

// Revision increments on every cell mutation; callers caching derived
// geometry rebuild when it changes.
func (l *Layer) Revision() uint64 {
	return l.revision
}

// SetSceneLayer assigns the scene layer bit this layer occupies.
func (l *Layer) SetSceneLayer(layer int) {
	l.sceneLayer = layer
}

// SetVisible toggles the layer for scene queries.
func (l *Layer) SetVisible(v bool) {
	l.visible = v
}

// Layer returns the scene layer; part of the scene.Object capability.
func (l *Layer) Layer() int {
	return l.sceneLayer
}

// Visible is part of the scene.Object capability.
func (l *Layer) Visible() bool {
	return l.visible
}

// AddCellDef records a deferred cell while the layer is Unloaded.
// After Load, defs are rejected; use SetTile instead.
func (l *Layer) AddCellDef(def CellDef) error {
	if l.Loaded() {
		return fmt.Errorf("tile: layer already loaded, set cells with SetTile")
	}
	l.pending = append(l.pending, def)
	return nil
}

// Load allocates the cell array, registers types, and resolves every
// deferred CellDef against them. Calling Load on a loaded layer is a
// no-op; the Unloaded -> Loaded transition happens exactly once.
func (l *Layer) Load(types []*Type) error {
	if l.Loaded() {
		return nil
	}
	l.cells = make([]uint32, l.width*l.height)
	for _, t := range types {
		l.register(t)
	}
	for _, def := range l.pending {
		if def.TypeIndex < 0 || def.TypeIndex >= len(l.types) {
			l.cells = nil
			return fmt.Errorf("tile: cell def (%d,%d) references unknown type index %d", def.X, def.Y, def.TypeIndex)
		}
		x := common.ClampInt(def.X, 0, l.width-1)
		y := common.ClampInt(def.Y, 0, l.height-1)
		l.cells[y*l.width+x] = packCell(def.TypeIndex, def.FlipX, def.FlipY)
	}
	l.pending = nil
	l.revision++
	return nil
}

func (l *Layer) register(t *Type) int {
	if i, ok := l.typeIdx[t]; ok {
		return i
	}
	i := len(l.types)
	t.Index = i
	l.types = append(l.types, t)
	l.typeIdx[t] = i
	return i
}

// Types returns the layer's type registry.
func (l *Layer) Types() []*Type {
	return l.types
}

func packCell(typeIndex int, flipX, flipY bool) uint32 {
	v := uint32(typeIndex + 1)
	if flipX {
		v |= cellFlipX
	}
	if flipY {
		v |= cellFlipY
	}
	return v
}

// GetTile returns the tile at grid coordinates (x, y). Out-of-range
// coordinates and empty cells are misses, never errors.
func (l *Layer) GetTile(x, y int) (Tile, bool) {
	if !l.Loaded() || x < 0 || x >= l.width || y < 0 || y >= l.height {
		return Tile{}, false
	}
	cell := l.cells[y*l.width+x]
	if cell == 0 {
		return Tile{}, false
	}
	return Tile{
		Type:  l.types[int(cell&cellIndexMask)-1],
		FlipX: cell&cellFlipX != 0,
		FlipY: cell&cellFlipY != 0,
	}, true
}

// SetTile places t at grid coordinates (x, y), clamping the
// coordinates into the grid. A tile whose type carries no material or
// collision data cannot be placed. Newly seen types are registered.
func (l *Layer) SetTile(x, y int, t Tile) error {
	if !l.Loaded() {
		return fmt.Errorf("tile: layer not loaded")
	}
	if !t.Type.HasData() {
		return fmt.Errorf("tile: tile type carries no material or collision data")
	}
	idx := l.register(t.Type)
	x = common.ClampInt(x, 0, l.width-1)
	y = common.ClampInt(y, 0, l.height-1)
	l.cells[y*l.width+x] = packCell(idx, t.FlipX, t.FlipY)
	l.revision++
	return nil
}

// ClearTile empties the cell at (x, y). Out-of-range coordinates are
// a no-op.
func (l *Layer) ClearTile(x, y int) {
	if !l.Loaded() || x < 0 || x >= l.width || y < 0 || y >= l.height {
		return
	}
	if l.cells[y*l.width+x] != 0 {
		l.cells[y*l.width+x] = 0
		l.revision++
	}
}

func (l *Layer) halfExtents() (hw, hh float64) {
	return float64(l.width) * l.tileW / 2, float64(l.height) * l.tileH / 2
}

func (l *Layer) localCellCenter(gx, gy int) common.Vec2 {
	hw, hh := l.halfExtents()
	return common.Vec2{
		X: (float64(gx)+0.5)*l.tileW - hw,
		Y: (float64(gy)+0.5)*l.tileH - hh,
	}
}

// GridToWorld returns the world-space center of cell (gx, gy),
// accounting for the layer's position and rotation.
func (l *Layer) GridToWorld(gx, gy int) common.Vec2 {
	return l.Position.Add(l.localCellCenter(gx, gy).Rotate(l.Rotation))
}

func (l *Layer) worldToLocal(p common.Vec2) common.Vec2 {
	return p.Sub(l.Position).Rotate(-l.Rotation)
}

// PickTile maps a world position to the grid cell containing it.
func (l *Layer) PickTile(p common.Vec2) (gx, gy int, ok bool) {
	hw, hh := l.halfExtents()
	local := l.worldToLocal(p)
	gx = int(math.Floor((local.X + hw) / l.tileW))
	gy = int(math.Floor((local.Y + hh) / l.tileH))
	if gx < 0 || gx >= l.width || gy < 0 || gy >= l.height {
		return 0, 0, false
	}
	return gx, gy, true
}

// WorldToGrid maps a world rect to the inclusive range of cells that
// might overlap it. Under rotation the rect's corners are inverse
// rotated into layer-local space and their axis-aligned hull taken, so
// the range errs toward over-inclusion: false positives are filtered
// by the narrow phase, false negatives would be a correctness bug.
// padding widens the range by whole cells on every side. ok is false
// when the rect lies entirely outside the grid.
func (l *Layer) WorldToGrid(r common.Rect, padding int) (GridRect, bool) {
	corners := [4]common.Vec2{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
	local := l.worldToLocal(corners[0])
	lo, hi := local, local
	for _, c := range corners[1:] {
		p := l.worldToLocal(c)
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}

	hw, hh := l.halfExtents()
	gr := GridRect{
		MinX: int(math.Floor((lo.X+hw)/l.tileW)) - padding,
		MinY: int(math.Floor((lo.Y+hh)/l.tileH)) - padding,
		MaxX: int(math.Floor((hi.X+hw)/l.tileW)) + padding,
		MaxY: int(math.Floor((hi.Y+hh)/l.tileH)) + padding,
	}
	if gr.MaxX < 0 || gr.MaxY < 0 || gr.MinX >= l.width || gr.MinY >= l.height {
		return GridRect{}, false
	}
	gr.MinX = common.ClampInt(gr.MinX, 0, l.width-1)
	gr.MinY = common.ClampInt(gr.MinY, 0, l.height-1)
	gr.MaxX = common.ClampInt(gr.MaxX, 0, l.width-1)
	gr.MaxY = common.ClampInt(gr.MaxY, 0, l.height-1)
	return gr, true
}

// Bounds returns the world axis-aligned bounds of the whole rotated
// layer; part of the scene.Object capability.
func (l *Layer) Bounds() common.Rect {
	hw, hh := l.halfExtents()
	corners := [4]common.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	first := l.Position.Add(corners[0].Rotate(l.Rotation))
	out := common.Rect{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := l.Position.Add(c.Rotate(l.Rotation))
		out.Min.X = math.Min(out.Min.X, p.X)
		out.Min.Y = math.Min(out.Min.Y, p.Y)
		out.Max.X = math.Max(out.Max.X, p.X)
		out.Max.Y = math.Max(out.Max.Y, p.Y)
	}
	return out
}
