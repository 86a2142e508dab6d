package defs

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/scenegrid/common"
	"github.com/milk9111/scenegrid/tile"
)

// TileTypeSpec describes one reusable tile type in a tile set file.
type TileTypeSpec struct {
	Name     string `yaml:"name"`
	Material string `yaml:"material"`
	// Collision enables collision matching for tiles of this type.
	Collision bool   `yaml:"collision"`
	Mask      uint32 `yaml:"mask"`
	// Polygon is an optional list of [x, y] pairs in unit tile space.
	Polygon [][]float64 `yaml:"polygon"`
}

// TileSetSpec is a named list of tile types.
type TileSetSpec struct {
	Name  string         `yaml:"name"`
	Types []TileTypeSpec `yaml:"types"`
}

// LayerSpec describes one tile layer: its grid, placement, the tile
// set file it draws types from, and its cells as compact
// "x,y,typeIndex,flip" tokens.
type LayerSpec struct {
	Name       string  `yaml:"name"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	// Rotation is in degrees in authored files.
	Rotation   float64  `yaml:"rotation"`
	SceneLayer int      `yaml:"scene_layer"`
	TileSet    string   `yaml:"tile_set"`
	Cells      []string `yaml:"cells"`
}

// LoadSpec reads and unmarshals one YAML spec file.
func LoadSpec[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("defs: load %s: %w", path, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("defs: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

// ParseCellToken parses one compact cell token of the form
// "x,y,typeIndex,flip", where flip is 0..3 with bit 0 flipping X and
// bit 1 flipping Y. The flip field may be omitted.
func ParseCellToken(tok string) (tile.CellDef, error) {
	parts := strings.Split(strings.TrimSpace(tok), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return tile.CellDef{}, fmt.Errorf("defs: cell token %q: want x,y,typeIndex[,flip]", tok)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return tile.CellDef{}, fmt.Errorf("defs: cell token %q: %w", tok, err)
		}
		nums[i] = n
	}

	def := tile.CellDef{X: nums[0], Y: nums[1], TypeIndex: nums[2]}
	if len(nums) == 4 {
		if nums[3] < 0 || nums[3] > 3 {
			return tile.CellDef{}, fmt.Errorf("defs: cell token %q: flip %d out of range 0..3", tok, nums[3])
		}
		def.FlipX = nums[3]&1 != 0
		def.FlipY = nums[3]&2 != 0
	}
	return def, nil
}

// BuildTypes resolves a tile set spec into runtime tile types.
func BuildTypes(set TileSetSpec) ([]*tile.Type, error) {
	types := make([]*tile.Type, 0, len(set.Types))
	for i, ts := range set.Types {
		t := &tile.Type{
			Name:              ts.Name,
			Material:          ts.Material,
			CollisionsEnabled: ts.Collision,
			ObjectMask:        ts.Mask,
		}
		if len(ts.Polygon) > 0 {
			if len(ts.Polygon) < 3 {
				return nil, fmt.Errorf("defs: tile set %q type %d: polygon needs at least 3 vertices", set.Name, i)
			}
			t.Collision = make([]common.Vec2, len(ts.Polygon))
			for j, pair := range ts.Polygon {
				if len(pair) != 2 {
					return nil, fmt.Errorf("defs: tile set %q type %d: polygon vertex %d is not an [x, y] pair", set.Name, i, j)
				}
				t.Collision[j] = common.Vec2{X: pair[0], Y: pair[1]}
			}
		}
		types = append(types, t)
	}
	return types, nil
}

// BuildLayer resolves a layer spec plus its tile types into a loaded
// tile layer.
func BuildLayer(spec LayerSpec, types []*tile.Type) (*tile.Layer, error) {
	l, err := tile.NewLayer(spec.Width, spec.Height, spec.TileWidth, spec.TileHeight)
	if err != nil {
		return nil, fmt.Errorf("defs: layer %q: %w", spec.Name, err)
	}
	l.Position = common.Vec2{X: spec.X, Y: spec.Y}
	l.Rotation = spec.Rotation * math.Pi / 180
	l.SetSceneLayer(spec.SceneLayer)

	for _, tok := range spec.Cells {
		def, err := ParseCellToken(tok)
		if err != nil {
			return nil, fmt.Errorf("defs: layer %q: %w", spec.Name, err)
		}
		if err := l.AddCellDef(def); err != nil {
			return nil, fmt.Errorf("defs: layer %q: %w", spec.Name, err)
		}
	}
	if err := l.Load(types); err != nil {
		return nil, fmt.Errorf("defs: layer %q: %w", spec.Name, err)
	}
	return l, nil
}
