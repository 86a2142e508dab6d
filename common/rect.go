package common

// Rect is an axis-aligned world-space rectangle. A Rect whose Max is
// not strictly greater than its Min on both axes is degenerate; it is
// representable and treated as a point or line, never an error.
type Rect struct {
	Min, Max Vec2
}

// NewRect builds a Rect from a top-left corner and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{
		Min: Vec2{X: x, Y: y},
		Max: Vec2{X: x + w, Y: y + h},
	}
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Center() Vec2 {
	return Vec2{
		X: (r.Min.X + r.Max.X) / 2,
		Y: (r.Min.Y + r.Max.Y) / 2,
	}
}

// Degenerate reports whether r has zero or negative area.
func (r Rect) Degenerate() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && r.Max.X > o.Min.X &&
		r.Min.Y < o.Max.Y && r.Max.Y > o.Min.Y
}

func (r Rect) Union(o Rect) Rect {
	out := r
	if o.Min.X < out.Min.X {
		out.Min.X = o.Min.X
	}
	if o.Min.Y < out.Min.Y {
		out.Min.Y = o.Min.Y
	}
	if o.Max.X > out.Max.X {
		out.Max.X = o.Max.X
	}
	if o.Max.Y > out.Max.Y {
		out.Max.Y = o.Max.Y
	}
	return out
}

// Expand grows the rect by by.X on both horizontal sides and by.Y on
// both vertical sides.
func (r Rect) Expand(by Vec2) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X - by.X, Y: r.Min.Y - by.Y},
		Max: Vec2{X: r.Max.X + by.X, Y: r.Max.Y + by.Y},
	}
}

// Translate shifts the rect by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Sweep returns the union of r and r translated by vel*dt: the region
// r passes through during one step.
func (r Rect) Sweep(vel Vec2, dt float64) Rect {
	return r.Union(r.Translate(vel.Scale(dt)))
}
