package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	layerPath := flag.String("layer", "", "layer spec file (.yaml)")
	debug := flag.Bool("debug", false, "draw bin grid and query regions")
	flag.Parse()

	if *layerPath == "" {
		log.Fatal("viewer: -layer is required")
	}

	game, err := NewGame(*layerPath, *debug)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("scenegrid viewer")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
