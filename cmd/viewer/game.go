package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/scenegrid/collision"
	"github.com/milk9111/scenegrid/common"
	"github.com/milk9111/scenegrid/defs"
	"github.com/milk9111/scenegrid/scene"
	"github.com/milk9111/scenegrid/tile"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	playerSpeed = 220.0
	stepDT      = 1.0 / 60.0
)

// player is the moving probe: a box steered with the arrow keys whose
// movement is clipped by the first time of impact each frame.
type player struct {
	pos  common.Vec2
	half common.Vec2
	vel  common.Vec2
}

func (p *player) Bounds() common.Rect {
	return common.Rect{Min: p.pos.Sub(p.half), Max: p.pos.Add(p.half)}
}

func (p *player) Layer() int {
	return 1
}

func (p *player) Visible() bool {
	return true
}

func (p *player) CollisionSurface() collision.Surface {
	return collision.PolygonSurface(p, 0, scene.AllLayers, collision.RectPolygon(p.Bounds()))
}

type Game struct {
	frames int
	debug  bool

	layerPath string
	container *scene.Container
	layer     *tile.Layer
	player    *player
	watcher   *defs.Watcher

	contacts []collision.Contact
}

func NewGame(layerPath string, debug bool) (*Game, error) {
	loaded, err := defs.LoadLayer(layerPath)
	if err != nil {
		return nil, err
	}

	world := loaded.Layer.Bounds().Expand(common.Vec2{X: 256, Y: 256})
	container, err := scene.NewContainer(world, 16, 16)
	if err != nil {
		return nil, err
	}
	container.Insert(loaded.Layer)

	p := &player{
		pos:  loaded.Layer.Position.Sub(common.Vec2{Y: loaded.Layer.Bounds().Height()/2 + 64}),
		half: common.Vec2{X: 12, Y: 12},
	}
	container.Insert(p)

	watcher, err := defs.NewWatcher(filepath.Dir(layerPath))
	if err != nil {
		log.Printf("Game: spec watcher unavailable: %v", err)
		watcher = nil
	}

	return &Game{
		debug:     debug,
		layerPath: layerPath,
		container: container,
		layer:     loaded.Layer,
		player:    p,
		watcher:   watcher,
	}, nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	var dir common.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	g.player.vel = dir.Normalize().Scale(playerSpeed)

	g.contacts = g.container.TestMove(stepDT, g.player.vel, g.player, scene.AllLayers)
	frac := 1.0
	if len(g.contacts) > 0 {
		frac = g.contacts[0].Time
	}
	g.player.pos = g.player.pos.Add(g.player.vel.Scale(stepDT * frac))
	g.container.Move(g.player)

	return nil
}

// pollReload swaps in a freshly built layer when a spec file changes.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		log.Printf("Game: spec %s changed, reloading layer", path)
		loaded, err := defs.LoadLayer(g.layerPath)
		if err != nil {
			log.Printf("Game: reload failed: %v", err)
			return
		}
		g.container.Remove(g.layer)
		g.layer = loaded.Layer
		g.container.Insert(g.layer)
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("Game: spec watcher: %v", err)
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.debug {
		g.drawBins(screen)
	}
	g.drawLayer(screen)
	g.drawPlayer(screen)
	g.drawContacts(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  contacts: %d  revision: %d",
		ebiten.ActualFPS(), len(g.contacts), g.layer.Revision(),
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
