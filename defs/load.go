package defs

import (
	"fmt"
	"path/filepath"

	"github.com/milk9111/scenegrid/tile"
)

// LoadedLayer bundles a built layer with the specs it came from.
type LoadedLayer struct {
	Spec  LayerSpec
	Set   TileSetSpec
	Layer *tile.Layer
}

// LoadLayer loads a layer spec file, resolves its tile set reference
// relative to the spec's directory, and builds the loaded layer.
func LoadLayer(path string) (*LoadedLayer, error) {
	spec, err := LoadSpec[LayerSpec](path)
	if err != nil {
		return nil, err
	}
	if spec.TileSet == "" {
		return nil, fmt.Errorf("defs: layer %s names no tile set", path)
	}

	setPath := spec.TileSet
	if !filepath.IsAbs(setPath) {
		setPath = filepath.Join(filepath.Dir(path), setPath)
	}
	set, err := LoadSpec[TileSetSpec](setPath)
	if err != nil {
		return nil, err
	}

	types, err := BuildTypes(set)
	if err != nil {
		return nil, err
	}
	layer, err := BuildLayer(spec, types)
	if err != nil {
		return nil, err
	}
	return &LoadedLayer{Spec: spec, Set: set, Layer: layer}, nil
}
