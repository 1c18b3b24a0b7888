package pong

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

const (
	// driftFrames is the horizon used when there is nothing to intercept.
	driftFrames = 30.0
	// missMultiplier scales the noise of a deliberate whiff.
	missMultiplier = 6.0
	// hysteresis band on the commanded velocity, as fractions of paddle speed
	enterRatio = 0.2
	exitRatio  = 0.08
	nearZero   = 1e-6
)

// AIController is the scripted opponent. It re-plans its aim on a fixed
// cadence and steers toward the held aim every tick, blending the velocity
// it needs with the one it commanded on the previous tick.
type AIController struct {
	profile config.DifficultyProfile
	rng     *rand.Rand

	nextThink float64
	plannedAt float64 // clock of the last think
	frames    float64 // frames to the intercept when planned
	vel       float64 // commanded velocity along the paddle axis
	aim       float64 // where the plan takes the paddle
	dir       Direction
	thinks    int
}

// NewAIController creates an opponent tuned by profile.
func NewAIController(profile config.DifficultyProfile, rng *rand.Rand) *AIController {
	return &AIController{profile: profile, rng: rng}
}

// Thinks returns how many times the controller has re-planned.
func (c *AIController) Thinks() int { return c.thinks }

// Direction implements PaddleController.
func (c *AIController) Direction(v ControlView) Direction {
	if v.Clock >= c.nextThink {
		c.think(v)
		c.nextThink = v.Clock + c.profile.ThinkInterval
	}
	c.steer(v)
	return c.dir
}

// think picks the aim: the folded intercept, or the middle of the reach
// when nothing is coming. Reaction noise is a velocity error held until the
// next think, so it shifts the aim by how far it would carry the paddle.
func (c *AIController) think(v ControlView) {
	c.thinks++
	p := v.Paddle
	lo, hi := p.Limits(v.Arena)

	target, frames, ok := c.predict(v)
	if !ok {
		target = (lo + hi) / 2
		frames = driftFrames
	}

	noise := (c.rng.Float64()*2 - 1) * c.profile.ReactionError * c.profile.SpeedFactor(v.RallyHits)
	if v.RallyHits >= c.profile.MissAfterHits && c.rng.Float64() < c.profile.UnforcedMiss {
		noise *= missMultiplier
	}

	aim := target + noise*frames
	if !isFinite(aim) {
		aim = p.Pos
	}
	c.aim = core.ClampF(aim, lo, hi)
	c.frames = frames
	c.plannedAt = v.Clock
}

// steer blends the velocity needed to reach the aim in the frames left with
// the previous tick's velocity. A low mix makes the paddle slow to react but
// it still travels all the way to the aim.
func (c *AIController) steer(v ControlView) {
	p := v.Paddle
	speed := c.profile.PaddleSpeed

	if math.Abs(c.aim-p.Pos) <= p.Speed/2 {
		c.vel *= 1 - c.profile.AIMix
		c.dir = DirNone
		return
	}

	left := max(c.frames-(v.Clock-c.plannedAt)*NominalRate, 1)
	required := (c.aim - p.Pos) / left
	vel := c.vel*(1-c.profile.AIMix) + required*c.profile.AIMix
	vel = core.ClampF(vel, -speed, speed)
	if !isFinite(vel) {
		vel = 0
	}

	c.vel = vel
	c.dir = c.threshold(vel, speed)
}

// predict folds the ball's straight-line path onto the paddle's reach line.
func (c *AIController) predict(v ControlView) (target, frames float64, ok bool) {
	p := v.Paddle
	lo, hi := v.Arena.Span(p.Side)
	r := v.Ball.Radius
	return Intercept(v.Ball.Pos, v.Ball.Vel, p.Reach(r), p.Side.Vertical(), lo+r, hi-r)
}

// threshold turns a commanded velocity into a direction with a hysteresis
// band, so a velocity hovering near zero does not make the paddle jitter.
func (c *AIController) threshold(vel, speed float64) Direction {
	enter, exit := enterRatio*speed, exitRatio*speed
	switch c.dir {
	case DirPositive:
		if vel < -enter {
			return DirNegative
		}
		if vel < exit {
			return DirNone
		}
		return DirPositive
	case DirNegative:
		if vel > enter {
			return DirPositive
		}
		if vel > -exit {
			return DirNone
		}
		return DirNegative
	}
	switch {
	case vel > enter:
		return DirPositive
	case vel < -enter:
		return DirNegative
	}
	return DirNone
}

// Intercept predicts where a ball at pos moving at vel meets the line
// across = reach, as a coordinate along the line folded into [lo, hi] to
// account for wall bounces. vertical selects a line of constant x. It fails
// when the ball is moving away from the line or parallel to it.
func Intercept(pos, vel core.Vec2, reach float64, vertical bool, lo, hi float64) (at, frames float64, ok bool) {
	across, along := pos.X, pos.Y
	vAcross, vAlong := vel.X, vel.Y
	if !vertical {
		across, along = pos.Y, pos.X
		vAcross, vAlong = vel.Y, vel.X
	}
	if math.Abs(vAcross) < nearZero {
		return 0, 0, false
	}
	frames = (reach - across) / vAcross
	if frames <= 0 || !isFinite(frames) {
		return 0, 0, false
	}
	raw := along + vAlong*frames
	if !isFinite(raw) {
		return 0, 0, false
	}
	return Fold(raw, lo, hi), frames, true
}

// Fold maps an unbounded coordinate into [lo, hi] as a triangle wave, which
// is where a point bouncing between two walls ends up.
func Fold(raw, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	period := 2 * span
	m := math.Mod(raw-lo, period)
	if m < 0 {
		m += period
	}
	if m > span {
		m = period - m
	}
	return lo + m
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
