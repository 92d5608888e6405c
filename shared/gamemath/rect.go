package gamemath

import "math"

// Rect is an axis-aligned rectangle with its origin at the bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersects reports whether r and o share a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Touches reports whether r and o overlap or share an edge or corner.
func (r Rect) Touches(o Rect) bool {
	return r.MinX() <= o.MaxX() && o.MinX() <= r.MaxX() &&
		r.MinY() <= o.MaxY() && o.MinY() <= r.MaxY()
}

// Intersect returns the overlapping region of r and o. The returned rect has
// zero width or height when they only touch; ok is false when they are apart.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	if !r.Touches(o) {
		return Rect{}, false
	}
	x0 := math.Max(r.MinX(), o.MinX())
	y0 := math.Max(r.MinY(), o.MinY())
	x1 := math.Min(r.MaxX(), o.MaxX())
	y1 := math.Min(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.MinX(), o.MinX())
	y0 := math.Min(r.MinY(), o.MinY())
	x1 := math.Max(r.MaxX(), o.MaxX())
	y1 := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}
