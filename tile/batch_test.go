package tile

import (
	"math"
	"testing"

	"github.com/milk9111/scenegrid/collision"
	"github.com/milk9111/scenegrid/common"
)

func TestCollisionMatchesFiltering(t *testing.T) {
	solid := solidType()
	decor := &Type{Name: "decor", Material: "grass"} // collisions disabled
	hazard := &Type{Name: "hazard", Material: "spikes", CollisionsEnabled: true, ObjectMask: 0x2}

	l := newLoadedLayer(t, 4, 1, solid, decor, hazard)
	mustSet := func(x int, ty *Type) {
		t.Helper()
		if err := l.SetTile(x, 0, Tile{Type: ty}); err != nil {
			t.Fatalf("SetTile(%d): %v", x, err)
		}
	}
	mustSet(0, solid)
	mustSet(1, decor)
	mustSet(2, hazard)
	// cell 3 left empty

	var arena collision.Arena
	var got []Ref
	b := l.Bounds()
	l.CollisionMatches(b.Min, b.Max, 0, 0x1, &arena, func(_ collision.Polygon, ref Ref) bool {
		got = append(got, ref)
		return true
	})

	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1 (solid only)", len(got))
	}
	if got[0].X != 0 || got[0].Y != 0 || got[0].Layer != l {
		t.Fatalf("unexpected match %+v", got[0])
	}
}

func TestCollisionMatchesRowMajorOrder(t *testing.T) {
	solid := solidType()
	l := newLoadedLayer(t, 2, 2, solid)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if err := l.SetTile(x, y, Tile{Type: solid}); err != nil {
				t.Fatalf("SetTile: %v", err)
			}
		}
	}

	var arena collision.Arena
	var got []Ref
	b := l.Bounds()
	l.CollisionMatches(b.Min, b.Max, 0, 1, &arena, func(_ collision.Polygon, ref Ref) bool {
		got = append(got, ref)
		return true
	})

	want := []Ref{
		{Layer: l, X: 0, Y: 0}, {Layer: l, X: 1, Y: 0},
		{Layer: l, X: 0, Y: 1}, {Layer: l, X: 1, Y: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match %d = %+v, want %+v (row-major)", i, got[i], want[i])
		}
	}
}

func TestSynthesizeDefaultTileBounds(t *testing.T) {
	solid := solidType()
	l := newLoadedLayer(t, 1, 1, solid)
	if err := l.SetTile(0, 0, Tile{Type: solid}); err != nil {
		t.Fatalf("SetTile: %v", err)
	}

	var arena collision.Arena
	var poly collision.Polygon
	b := l.Bounds()
	l.CollisionMatches(b.Min, b.Max, 0, 1, &arena, func(p collision.Polygon, _ Ref) bool {
		poly = collision.Polygon{Verts: append([]common.Vec2(nil), p.Verts...)}
		return true
	})

	if len(poly.Verts) != 4 {
		t.Fatalf("default tile polygon has %d verts, want 4", len(poly.Verts))
	}
	pb := poly.Bounds()
	want := common.NewRect(-16, -16, 32, 32)
	if pb != want {
		t.Fatalf("default tile polygon bounds = %v, want %v", pb, want)
	}
}

func TestSynthesizeFlipPreservesWinding(t *testing.T) {
	// Asymmetric triangle so flipping is observable.
	ramp := &Type{
		Name:              "ramp",
		Material:          "stone",
		CollisionsEnabled: true,
		ObjectMask:        1,
		Collision: []common.Vec2{
			{X: -0.5, Y: -0.5},
			{X: 0.5, Y: 0.5},
			{X: -0.5, Y: 0.5},
		},
	}
	l := newLoadedLayer(t, 1, 1, ramp)
	if err := l.SetTile(0, 0, Tile{Type: ramp, FlipX: true}); err != nil {
		t.Fatalf("SetTile: %v", err)
	}

	var arena collision.Arena
	var verts []common.Vec2
	b := l.Bounds()
	l.CollisionMatches(b.Min, b.Max, 0, 1, &arena, func(p collision.Polygon, _ Ref) bool {
		verts = append(verts, p.Verts...)
		return true
	})

	// Flip-X mirrors the verts and reverses their order to keep the
	// winding clockwise.
	want := []common.Vec2{
		{X: 16, Y: 16},
		{X: -16, Y: 16},
		{X: 16, Y: -16},
	}
	if len(verts) != len(want) {
		t.Fatalf("got %d verts, want %d", len(verts), len(want))
	}
	for i := range want {
		if math.Abs(verts[i].X-want[i].X) > 1e-9 || math.Abs(verts[i].Y-want[i].Y) > 1e-9 {
			t.Fatalf("vert %d = %v, want %v", i, verts[i], want[i])
		}
	}
}

func TestSynthesizeRotatedTile(t *testing.T) {
	solid := solidType()
	l := newLoadedLayer(t, 1, 1, solid)
	l.Rotation = math.Pi / 4
	if err := l.SetTile(0, 0, Tile{Type: solid}); err != nil {
		t.Fatalf("SetTile: %v", err)
	}

	var arena collision.Arena
	found := false
	b := l.Bounds()
	l.CollisionMatches(b.Min, b.Max, 0, 1, &arena, func(p collision.Polygon, _ Ref) bool {
		found = true
		// A 32-unit tile rotated 45 degrees spans 32*sqrt(2) on both
		// axes.
		pb := p.Bounds()
		span := 32 * math.Sqrt2
		if math.Abs(pb.Width()-span) > 1e-9 || math.Abs(pb.Height()-span) > 1e-9 {
			t.Fatalf("rotated tile bounds = %v, want %.4f span", pb, span)
		}
		return true
	})
	if !found {
		t.Fatal("rotated tile not matched")
	}
}

func TestLayerSurfaceAgainstMovingBox(t *testing.T) {
	solid := solidType()
	l := newLoadedLayer(t, 4, 1, solid)
	l.Position = common.Vec2{X: 0, Y: 100}
	for x := 0; x < 4; x++ {
		if err := l.SetTile(x, 0, Tile{Type: solid}); err != nil {
			t.Fatalf("SetTile: %v", err)
		}
	}

	owner := &struct{ name string }{name: "box"}
	mover := collision.PolygonSurface(owner, 0, 1, collision.RectPolygon(common.NewRect(-5, 50, 10, 10)))

	contacts := mover.TestMove(1, common.Vec2{Y: 40}, l.CollisionSurface())
	if len(contacts) != 2 {
		t.Fatalf("got %d contacts, want 2", len(contacts))
	}
	for _, c := range contacts {
		if math.Abs(c.Time-0.6) > 1e-9 {
			t.Errorf("Time = %v, want 0.6", c.Time)
		}
		if c.Mover != owner {
			t.Errorf("Mover = %v, want the box", c.Mover)
		}
		if _, ok := c.Target.(Ref); !ok {
			t.Errorf("Target = %T, want Ref", c.Target)
		}
	}
}
