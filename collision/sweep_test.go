package collision

import (
	"math"
	"testing"

	"github.com/milk9111/scenegrid/common"
)

func box(x, y, w, h float64) Polygon {
	return RectPolygon(common.NewRect(x, y, w, h))
}

func TestNewPolygonPrecondition(t *testing.T) {
	tests := []struct {
		name    string
		verts   []common.Vec2
		wantErr bool
	}{
		{"nil", nil, true},
		{"two_verts", []common.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, true},
		{"triangle", []common.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolygon(tt.verts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPolygon err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSweepPolygons(t *testing.T) {
	tests := []struct {
		name     string
		mover    Polygon
		vel      common.Vec2
		dt       float64
		target   Polygon
		wantHit  bool
		wantTime float64
	}{
		{
			// A box whose leading edge sits 5 units from the target,
			// moving 10 units over the step: impact halfway through.
			name:     "half_step_impact",
			mover:    box(-10, 0, 10, 10),
			vel:      common.Vec2{X: 10},
			dt:       1,
			target:   box(5, 0, 10, 10),
			wantHit:  true,
			wantTime: 0.5,
		},
		{
			name:     "immediate_contact",
			mover:    box(0, 0, 10, 10),
			vel:      common.Vec2{X: 1},
			dt:       1,
			target:   box(10, 0, 10, 10),
			wantHit:  true,
			wantTime: 0,
		},
		{
			name:    "moving_away",
			mover:   box(0, 0, 10, 10),
			vel:     common.Vec2{X: -50},
			dt:      1,
			target:  box(20, 0, 10, 10),
			wantHit: false,
		},
		{
			name:    "stops_short",
			mover:   box(0, 0, 10, 10),
			vel:     common.Vec2{X: 5},
			dt:      1,
			target:  box(20, 0, 10, 10),
			wantHit: false,
		},
		{
			name:    "passes_above",
			mover:   box(-20, -30, 10, 10),
			vel:     common.Vec2{X: 100},
			dt:      1,
			target:  box(0, 0, 10, 10),
			wantHit: false,
		},
		{
			name:     "diagonal_corner_hit",
			mover:    box(-20, -20, 10, 10),
			vel:      common.Vec2{X: 20, Y: 20},
			dt:       1,
			target:   box(0, 0, 10, 10),
			wantHit:  true,
			wantTime: 0.5,
		},
		{
			name:    "stationary_separated",
			mover:   box(0, 0, 10, 10),
			vel:     common.Vec2{},
			dt:      1,
			target:  box(50, 0, 10, 10),
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hit := SweepPolygons(tt.mover, tt.vel, tt.dt, tt.target)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if !hit {
				return
			}
			if math.Abs(c.Time-tt.wantTime) > 1e-9 {
				t.Errorf("Time = %v, want %v", c.Time, tt.wantTime)
			}
			if !common.ApproxEqual(c.Normal.Len(), 1) {
				t.Errorf("Normal %v is not unit length", c.Normal)
			}
			if d := tt.vel.Scale(tt.dt); c.Normal.Dot(d) > 0 {
				t.Errorf("Normal %v points along motion %v", c.Normal, d)
			}
		})
	}
}

func TestSweepPolygonsNormalDirection(t *testing.T) {
	c, hit := SweepPolygons(box(-10, 0, 10, 10), common.Vec2{X: 10}, 1, box(5, 0, 10, 10))
	if !hit {
		t.Fatal("expected hit")
	}
	want := common.Vec2{X: -1, Y: 0}
	if math.Abs(c.Normal.X-want.X) > 1e-9 || math.Abs(c.Normal.Y-want.Y) > 1e-9 {
		t.Errorf("Normal = %v, want %v", c.Normal, want)
	}
}

func TestSweepPolygonsOverlap(t *testing.T) {
	// 4 units of overlap on X, 6 on Y: minimum translation is on X,
	// pushing the mover away from the target.
	c, hit := SweepPolygons(box(0, 0, 10, 10), common.Vec2{}, 1, box(6, 2, 10, 6))
	if !hit {
		t.Fatal("expected overlap contact")
	}
	if c.Time != 0 {
		t.Errorf("Time = %v, want 0", c.Time)
	}
	if math.Abs(c.Penetration-4) > 1e-9 {
		t.Errorf("Penetration = %v, want 4", c.Penetration)
	}
	if c.Normal.X >= 0 {
		t.Errorf("Normal = %v, want to point away from target (negative X)", c.Normal)
	}
}

func TestSweepTriangleRamp(t *testing.T) {
	// A box dropping straight down onto the hypotenuse of a ramp.
	ramp := Polygon{Verts: []common.Vec2{
		{X: 0, Y: 10},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
	}}
	c, hit := SweepPolygons(box(0, -30, 10, 10), common.Vec2{Y: 40}, 1, ramp)
	if !hit {
		t.Fatal("expected hit")
	}
	if c.Time <= 0 || c.Time >= 1 {
		t.Errorf("Time = %v, want inside (0,1)", c.Time)
	}
	if c.Normal.Y >= 0 {
		t.Errorf("Normal = %v, want upward component against the drop", c.Normal)
	}
}
