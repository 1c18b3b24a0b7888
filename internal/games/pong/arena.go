package pong

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Side names an edge of the arena.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// Sides lists the four edges in seat order (P1 left, P2 right, P3 top, P4 bottom).
var Sides = [4]Side{SideLeft, SideRight, SideTop, SideBottom}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Vertical reports whether a paddle on this side moves along the y axis.
func (s Side) Vertical() bool {
	return s == SideLeft || s == SideRight
}

// Opposite returns the facing edge.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	}
	return SideTop
}

// Inward returns the unit normal pointing from the edge into the arena.
func (s Side) Inward() core.Vec2 {
	switch s {
	case SideLeft:
		return core.V(1, 0)
	case SideRight:
		return core.V(-1, 0)
	case SideTop:
		return core.V(0, 1)
	}
	return core.V(0, -1)
}

// EdgeKind says what happens when the ball reaches an edge.
type EdgeKind int

const (
	EdgeWall EdgeKind = iota
	EdgeGoal
)

// Arena is the rectangular playfield, origin at the top-left corner with y
// growing downwards.
type Arena struct {
	Width  float64
	Height float64
	Edges  [4]EdgeKind
}

// NewArena builds the playfield for a seat count: two seats get left/right
// goals with top/bottom walls, four seats get goals on every edge.
func NewArena(seats int, cfg config.ArenaConfig) Arena {
	if seats == 4 {
		return Arena{
			Width:  cfg.FourPaddle.Width,
			Height: cfg.FourPaddle.Height,
			Edges:  [4]EdgeKind{EdgeGoal, EdgeGoal, EdgeGoal, EdgeGoal},
		}
	}
	return Arena{
		Width:  cfg.TwoPaddle.Width,
		Height: cfg.TwoPaddle.Height,
		Edges:  [4]EdgeKind{EdgeGoal, EdgeGoal, EdgeWall, EdgeWall},
	}
}

// Center returns the middle of the playfield.
func (a Arena) Center() core.Vec2 {
	return core.V(a.Width/2, a.Height/2)
}

// Edge returns the kind of the given edge.
func (a Arena) Edge(s Side) EdgeKind {
	return a.Edges[s]
}

// Span returns the extent of the edge a paddle on side s slides along.
func (a Arena) Span(s Side) (lo, hi float64) {
	if s.Vertical() {
		return 0, a.Height
	}
	return 0, a.Width
}

// Line returns the coordinate of the edge across its own axis.
func (a Arena) Line(s Side) float64 {
	switch s {
	case SideRight:
		return a.Width
	case SideBottom:
		return a.Height
	}
	return 0
}

// Crossed reports the first edge the ball's leading boundary has passed.
func (a Arena) Crossed(pos core.Vec2, radius float64) (Side, bool) {
	switch {
	case pos.X-radius < 0:
		return SideLeft, true
	case pos.X+radius > a.Width:
		return SideRight, true
	case pos.Y-radius < 0:
		return SideTop, true
	case pos.Y+radius > a.Height:
		return SideBottom, true
	}
	return 0, false
}
