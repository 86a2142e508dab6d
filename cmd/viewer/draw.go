package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/scenegrid/collision"
	"github.com/milk9111/scenegrid/common"
	"github.com/milk9111/scenegrid/scene"
	"github.com/milk9111/scenegrid/tile"
)

var (
	binColor     = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	tileColor    = color.RGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}
	playerColor  = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	contactColor = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
)

// worldToScreen keeps the world origin at the screen center.
func worldToScreen(p common.Vec2) (float64, float64) {
	return p.X + baseWidth/2, p.Y + baseHeight/2
}

func drawWorldLine(screen *ebiten.Image, a, b common.Vec2, c color.Color) {
	ax, ay := worldToScreen(a)
	bx, by := worldToScreen(b)
	ebitenutil.DrawLine(screen, ax, ay, bx, by, c)
}

func drawWorldPoly(screen *ebiten.Image, poly collision.Polygon, c color.Color) {
	n := len(poly.Verts)
	for i := 0; i < n; i++ {
		drawWorldLine(screen, poly.Verts[i], poly.Verts[(i+1)%n], c)
	}
}

func (g *Game) drawBins(screen *ebiten.Image) {
	bx, by := g.container.Bins()
	for y := 0; y < by; y++ {
		for x := 0; x < bx; x++ {
			b := g.container.BinBounds(x, y)
			drawWorldLine(screen, b.Min, common.Vec2{X: b.Max.X, Y: b.Min.Y}, binColor)
			drawWorldLine(screen, b.Min, common.Vec2{X: b.Min.X, Y: b.Max.Y}, binColor)
		}
	}
}

// drawLayer outlines every collidable tile in view, reusing the same
// polygon synthesis the narrow phase runs on.
func (g *Game) drawLayer(screen *ebiten.Image) {
	view := common.NewRect(-baseWidth/2, -baseHeight/2, baseWidth, baseHeight)
	var arena collision.Arena
	g.layer.CollisionMatches(view.Min, view.Max, 0, scene.AllLayers, &arena, func(poly collision.Polygon, _ tile.Ref) bool {
		drawWorldPoly(screen, poly, tileColor)
		return true
	})
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	drawWorldPoly(screen, collision.RectPolygon(g.player.Bounds()), playerColor)
}

func (g *Game) drawContacts(screen *ebiten.Image) {
	for _, c := range g.contacts {
		from := g.player.pos
		drawWorldLine(screen, from, from.Add(c.Normal.Scale(24)), contactColor)
	}
}
