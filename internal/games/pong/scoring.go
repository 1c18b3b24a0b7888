package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// ScoringRule decides who is credited when the ball leaves the arena.
type ScoringRule interface {
	Name() string
	// Bounces reports whether side currently reflects the ball.
	Bounces(a Arena, side Side, lastHit core.PlayerID) bool
	// Scorer returns the credited seat for a crossing of side, or false when
	// the crossing should not score.
	Scorer(side Side, lastHit core.PlayerID, owners [4]core.PlayerID) (core.PlayerID, bool)
}

// TwoPaddleRule credits the paddle facing the goal that was crossed.
type TwoPaddleRule struct{}

func (TwoPaddleRule) Name() string { return "opposite-side" }

func (TwoPaddleRule) Bounces(a Arena, side Side, _ core.PlayerID) bool {
	return a.Edge(side) == EdgeWall
}

func (TwoPaddleRule) Scorer(side Side, _ core.PlayerID, owners [4]core.PlayerID) (core.PlayerID, bool) {
	scorer := owners[side.Opposite()]
	return scorer, scorer.Valid()
}

// LastHitRule credits whoever touched the ball last, whichever edge it
// leaves through. An untouched ball treats every edge as a wall.
type LastHitRule struct{}

func (LastHitRule) Name() string { return "last-hit" }

func (LastHitRule) Bounces(a Arena, side Side, lastHit core.PlayerID) bool {
	return a.Edge(side) == EdgeWall || !lastHit.Valid()
}

func (LastHitRule) Scorer(_ Side, lastHit core.PlayerID, _ [4]core.PlayerID) (core.PlayerID, bool) {
	return lastHit, lastHit.Valid()
}

// RuleFor returns the scoring strategy for a seat count.
func RuleFor(seats int) ScoringRule {
	if seats == 4 {
		return LastHitRule{}
	}
	return TwoPaddleRule{}
}

// ServeVelocity returns a serve heading toward side at the given speed. The
// heading deviates from the edge normal by an angle drawn from
// [minDeg, maxDeg] on a random side, so it is never axis-aligned.
func ServeVelocity(rng *rand.Rand, toward Side, speed, minDeg, maxDeg float64) core.Vec2 {
	deg := minDeg + rng.Float64()*(maxDeg-minDeg)
	if rng.Intn(2) == 0 {
		deg = -deg
	}
	rad := deg * math.Pi / 180

	axis := toward.Inward().Scale(-1)
	// rotate the outward normal by rad
	cos, sin := math.Cos(rad), math.Sin(rad)
	dir := core.V(axis.X*cos-axis.Y*sin, axis.X*sin+axis.Y*cos)
	return dir.Scale(speed)
}
