package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// SpeedFloorRatio is the fraction of the base speed the ball may drop to
// after wall friction before it is topped back up.
const SpeedFloorRatio = 0.95

// Ball is the single moving body in the arena.
type Ball struct {
	Pos    core.Vec2
	Vel    core.Vec2 // units per frame
	Radius float64
	Base   float64
	Max    float64
}

// Speed returns the current speed.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Floor returns the minimum speed allowed in play.
func (b *Ball) Floor() float64 {
	return b.Base * SpeedFloorRatio
}

// ClampSpeed keeps |Vel| within [Floor, Max]. A zero or non-finite velocity
// is replaced by a diagonal at the floor speed so play never stalls.
func (b *Ball) ClampSpeed() {
	speed := b.Vel.Len()
	if speed == 0 || !b.Vel.IsFinite() || math.IsNaN(speed) {
		b.Vel = core.V(math.Cos(math.Pi/6), math.Sin(math.Pi/6)).Scale(b.Floor())
		return
	}
	if speed < b.Floor() {
		b.Vel = b.Vel.WithLen(b.Floor())
	} else if speed > b.Max {
		b.Vel = b.Vel.WithLen(b.Max)
	}
}
