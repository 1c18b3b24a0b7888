package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

const (
	minSubsteps = 2
	maxSubsteps = 6
	// substepSpan is the largest distance the ball should travel in one sub-step.
	substepSpan = 8.0
)

// Rally tracks who touched the ball since the last serve.
type Rally struct {
	LastHit  core.PlayerID
	Hits     int
	cooldown [core.MaxPlayers + 1]int
}

// Reset clears the rally after a goal or serve.
func (r *Rally) Reset() {
	*r = Rally{}
}

func (r *Rally) coolingDown(p core.PlayerID) bool {
	return p.Valid() && r.cooldown[p] > 0
}

func (r *Rally) tick() {
	for i := range r.cooldown {
		if r.cooldown[i] > 0 {
			r.cooldown[i]--
		}
	}
}

// Hit is a paddle contact resolved during a physics step.
type Hit struct {
	Paddle   core.PlayerID
	Previous core.PlayerID // LastHit before this contact
}

// Physics resolves ball motion against walls and paddles.
type Physics struct {
	cfg config.PhysicsConfig
}

// NewPhysics creates a resolver with the given tuning.
func NewPhysics(cfg config.PhysicsConfig) Physics {
	return Physics{cfg: cfg}
}

// ClampDelta sanitizes a frame delta: negative or NaN deltas become zero,
// long stalls are capped at MaxFrameDelta.
func (ph Physics) ClampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > ph.cfg.MaxFrameDelta {
		return ph.cfg.MaxFrameDelta
	}
	return dt
}

// Substeps returns how many sub-steps a tick covering distance needs.
func Substeps(distance float64) int {
	n := int(math.Ceil(distance / substepSpan))
	if n < minSubsteps || math.IsNaN(distance) {
		return minSubsteps
	}
	if n > maxSubsteps {
		return maxSubsteps
	}
	return n
}

// Step advances the ball by dt frames. walls reports whether an edge
// currently reflects. Paddles are resolved before walls inside every
// sub-step. The returned hits are in resolution order.
func (ph Physics) Step(dt float64, a Arena, b *Ball, paddles []*Paddle, r *Rally, walls func(Side) bool) []Hit {
	dt = ph.ClampDelta(dt)
	r.tick()
	if dt == 0 {
		return nil
	}

	var hits []Hit
	n := Substeps(b.Speed() * dt)
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		b.Pos = b.Pos.Add(b.Vel.Scale(h))

		for _, p := range paddles {
			if r.coolingDown(p.Owner) {
				continue
			}
			if !ph.collide(b, p) {
				continue
			}
			hits = append(hits, Hit{Paddle: p.Owner, Previous: r.LastHit})
			r.LastHit = p.Owner
			r.Hits++
			if p.Owner.Valid() {
				r.cooldown[p.Owner] = ph.cfg.CollisionCooldown
			}
		}

		ph.reflectWalls(a, b, walls)
	}
	return hits
}

// collide resolves overlap between the ball and one paddle. It reports a
// hit only when the ball was moving into the paddle.
func (ph Physics) collide(b *Ball, p *Paddle) bool {
	box := p.Box()
	closest := box.ClosestPoint(b.Pos)
	if d := b.Pos.Sub(closest); d.Dot(d) > b.Radius*b.Radius {
		return false
	}

	// push out along the axis of least penetration
	dx, dy := b.Pos.X-box.Center.X, b.Pos.Y-box.Center.Y
	overlapX := box.Half.X + b.Radius - math.Abs(dx)
	overlapY := box.Half.Y + b.Radius - math.Abs(dy)

	var n core.Vec2
	if overlapX < overlapY {
		n = core.V(pushSign(dx, -b.Vel.X), 0)
		b.Pos.X = box.Center.X + n.X*(box.Half.X+b.Radius)
	} else {
		n = core.V(0, pushSign(dy, -b.Vel.Y))
		b.Pos.Y = box.Center.Y + n.Y*(box.Half.Y+b.Radius)
	}

	speed := b.Speed()
	if b.Vel.Dot(n) >= 0 {
		return false
	}
	v := b.Vel.Reflect(n)

	if face := p.Side.Inward(); n == face || n == face.Scale(-1) {
		t := p.Tangent()
		offset := core.ClampF((p.Along(b.Pos)-p.Pos)/p.HalfLength, -1, 1)
		v = v.Add(t.Scale(offset * ph.cfg.SpinFactor * speed))
		v = v.Add(t.Scale(p.Vel * ph.cfg.InfluenceFactor))
		v = ph.keepNormal(v, n)
	}

	next := math.Min(speed+ph.cfg.SpeedIncrement, b.Max)
	b.Vel = v.WithLen(math.Max(next, b.Floor()))
	return true
}

// keepNormal stops spin from turning the ball nearly parallel to the paddle.
func (ph Physics) keepNormal(v, n core.Vec2) core.Vec2 {
	l := v.Len()
	if l == 0 {
		return n
	}
	vn := v.Dot(n)
	minN := ph.cfg.MinNormalRatio * l
	if vn >= minN {
		return v
	}
	tangential := v.Sub(n.Scale(vn))
	tl := math.Sqrt(math.Max(l*l-minN*minN, 0))
	return n.Scale(minN).Add(tangential.WithLen(tl))
}

// reflectWalls bounces the ball off every edge currently acting as a wall,
// damping the normal component by the wall friction.
func (ph Physics) reflectWalls(a Arena, b *Ball, walls func(Side) bool) {
	bounced := false
	for _, s := range Sides {
		if !walls(s) {
			continue
		}
		n := s.Inward()
		line := a.Line(s)
		// signed distance of the ball's leading edge past the line
		depth := (line - (b.Pos.X*math.Abs(n.X) + b.Pos.Y*math.Abs(n.Y))) * (n.X + n.Y)
		if depth+b.Radius <= 0 {
			continue
		}
		if n.X != 0 {
			b.Pos.X = line + n.X*b.Radius
		} else {
			b.Pos.Y = line + n.Y*b.Radius
		}
		if vn := b.Vel.Dot(n); vn < 0 {
			b.Vel = b.Vel.Sub(n.Scale(vn * (1 + ph.cfg.WallFriction)))
			bounced = true
		}
	}
	if bounced {
		b.ClampSpeed()
	}
}

// pushSign picks the side of the paddle to push the ball out to. A ball
// centred exactly on the axis is pushed against its direction of travel.
func pushSign(d, fallback float64) float64 {
	if s := core.Sign(d); s != 0 {
		return s
	}
	if s := core.Sign(fallback); s != 0 {
		return s
	}
	return 1
}
