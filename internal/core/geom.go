// Package core provides the geometry, input and screen primitives shared by
// the engine and the terminal platform. It has no external dependencies so
// the simulation stays pure and testable.
package core

import "math"

// Vec2 is a point or displacement in continuous arena coordinates.
type Vec2 struct {
	X, Y float64
}

// V constructs a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLen rescales v to length l, keeping its direction.
func (v Vec2) WithLen(l float64) Vec2 {
	return v.Normalize().Scale(l)
}

// Reflect mirrors v about the unit normal n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	d := v.Dot(n)
	return Vec2{v.X - 2*d*n.X, v.Y - 2*d*n.Y}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Box is an axis-aligned box described by its centre and half extents.
type Box struct {
	Center Vec2
	Half   Vec2
}

// Min returns the top-left corner.
func (b Box) Min() Vec2 { return b.Center.Sub(b.Half) }

// Max returns the bottom-right corner.
func (b Box) Max() Vec2 { return b.Center.Add(b.Half) }

// ClosestPoint returns the point of the box nearest to p.
// Points inside the box map to themselves.
func (b Box) ClosestPoint(p Vec2) Vec2 {
	lo, hi := b.Min(), b.Max()
	return Vec2{ClampF(p.X, lo.X, hi.X), ClampF(p.Y, lo.Y, hi.Y)}
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() int { return r.X + r.W }

func (r Rect) Bottom() int { return r.Y + r.H }

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: Max(0, r.W-2*n), H: Max(0, r.H-2*n)}
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0 or 1.
func Sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
