package pong

import (
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Direction is a paddle's intent along its edge: negative is up or left,
// positive is down or right.
type Direction int

const (
	DirNegative Direction = -1
	DirNone     Direction = 0
	DirPositive Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirNegative:
		return "neg"
	case DirPositive:
		return "pos"
	}
	return "none"
}

// Paddle is a rectangle sliding along one edge.
type Paddle struct {
	Owner      core.PlayerID
	Side       Side
	Pos        float64 // centre along the edge
	Face       float64 // fixed coordinate across the edge
	HalfLength float64
	Thickness  float64
	Speed      float64 // units per frame
	Dir        Direction
	Vel        float64 // signed units per frame applied on the last move
}

// NewPaddle creates a paddle centred on its edge, inset from the boundary.
func NewPaddle(owner core.PlayerID, side Side, a Arena, halfLength, thickness, speed, inset float64) *Paddle {
	lo, hi := a.Span(side)
	face := inset
	if side == SideRight || side == SideBottom {
		face = a.Line(side) - inset
	}
	return &Paddle{
		Owner:      owner,
		Side:       side,
		Pos:        (lo + hi) / 2,
		Face:       face,
		HalfLength: halfLength,
		Thickness:  thickness,
		Speed:      speed,
	}
}

// Limits returns the clamp range for Pos.
func (p *Paddle) Limits(a Arena) (lo, hi float64) {
	lo, hi = a.Span(p.Side)
	lo += p.HalfLength
	hi -= p.HalfLength
	if lo > hi {
		mid := (lo + hi) / 2
		return mid, mid
	}
	return lo, hi
}

// Move applies one tick of motion in dir and clamps to the edge.
func (p *Paddle) Move(dir Direction, dt float64, a Arena) {
	p.Dir = dir
	p.Vel = float64(dir) * p.Speed
	lo, hi := p.Limits(a)
	p.Pos = core.ClampF(p.Pos+p.Vel*dt, lo, hi)
}

// Box returns the paddle's collision rectangle.
func (p *Paddle) Box() core.Box {
	if p.Side.Vertical() {
		return core.Box{Center: core.V(p.Face, p.Pos), Half: core.V(p.Thickness/2, p.HalfLength)}
	}
	return core.Box{Center: core.V(p.Pos, p.Face), Half: core.V(p.HalfLength, p.Thickness/2)}
}

// Tangent is the unit vector along the paddle's direction of travel.
func (p *Paddle) Tangent() core.Vec2 {
	if p.Side.Vertical() {
		return core.V(0, 1)
	}
	return core.V(1, 0)
}

// Along projects a point onto the paddle's axis of travel.
func (p *Paddle) Along(v core.Vec2) float64 {
	if p.Side.Vertical() {
		return v.Y
	}
	return v.X
}

// Across projects a point onto the axis perpendicular to travel.
func (p *Paddle) Across(v core.Vec2) float64 {
	if p.Side.Vertical() {
		return v.X
	}
	return v.Y
}

// Reach returns the across-axis coordinate where the centre of a ball of the
// given radius touches the paddle's playing face.
func (p *Paddle) Reach(radius float64) float64 {
	return p.Face + p.Side.Inward().Dot(core.V(1, 1))*(p.Thickness/2+radius)
}
