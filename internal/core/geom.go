// Package core holds the platform types shared by every game: geometry,
// the screen buffer, input frames and the runtime contract. It has no
// terminal dependencies so game logic stays testable.
package core

// Rect is an axis-aligned box. Games use it in whatever unit they simulate in
// (terminal cells, fixed-point world units).
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports strict overlap. Touching edges do not overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether the point lies inside the half-open box.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the centre point, rounded down.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the box by dx on the left and right and dy on the top and
// bottom. Sizes never go below 1.
func (r Rect) Inset(dx, dy int) Rect {
	out := Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
	if out.W < 1 {
		out.W = 1
	}
	if out.H < 1 {
		out.H = 1
	}
	return out
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return max(lo, min(val, hi))
}
