package pong

import (
	"github.com/vovakirdan/tui-pong/internal/core"
)

// ControlView is what a controller may look at when choosing a direction.
// Values are copies; controllers cannot mutate the session.
type ControlView struct {
	Clock     float64 // seconds of PLAYING time
	Arena     Arena
	Ball      Ball
	Paddle    Paddle
	Input     core.InputFrame
	RallyHits int
}

// PaddleController drives one paddle. It is asked once per PLAYING tick.
type PaddleController interface {
	Direction(v ControlView) Direction
}

// HumanController reads the sampled input frame of its seat.
type HumanController struct{}

func (HumanController) Direction(v ControlView) Direction {
	return Direction(v.Input.Axis())
}
