package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ParseDifficulty maps a user supplied name to a preset.
// Unknown or empty values fall back to normal.
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyNormal
	}
}

// Profile returns the profile for a preset. A preset missing from the
// table resolves to normal, and a table without normal resolves to the
// built-in profile.
func (c PongConfig) Profile(preset DifficultyPreset) DifficultyProfile {
	if p, ok := c.Difficulty[ParseDifficulty(string(preset))]; ok {
		return p
	}
	if p, ok := c.Difficulty[DifficultyNormal]; ok {
		return p
	}
	return DefaultPongConfig().Difficulty[DifficultyNormal]
}

// SpeedFactor scales the opponent's reaction error with rally length.
// The ramp stops growing after RampCap hits.
func (p DifficultyProfile) SpeedFactor(rallyHits int) float64 {
	hits := rallyHits
	if p.RampCap > 0 && hits > p.RampCap {
		hits = p.RampCap
	}
	if hits < 0 {
		hits = 0
	}
	return 1 + float64(hits)*p.RallyRamp
}

// Validate rejects configurations the engine cannot run with.
func (c PongConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for _, s := range []Size{c.Arena.TwoPaddle, c.Arena.FourPaddle} {
		check(s.Width > 0 && s.Height > 0, "arena size %vx%v must be positive", s.Width, s.Height)
	}
	check(c.Physics.WallFriction > 0 && c.Physics.WallFriction < 1,
		"wall_friction %v must be in (0, 1)", c.Physics.WallFriction)
	check(c.Physics.MaxFrameDelta > 0, "max_frame_delta must be positive")
	check(c.Physics.BallRadius > 0, "ball_radius must be positive")
	check(c.Paddles.HalfLength > 0 && c.Paddles.FourPaddleHalfLength > 0, "paddle half lengths must be positive")
	check(c.Gameplay.WinScore > 0 && c.Gameplay.FourPaddleWinScore > 0, "win scores must be positive")
	check(c.Gameplay.ServeAngleMin > 0 && c.Gameplay.ServeAngleMax < 90 &&
		c.Gameplay.ServeAngleMin <= c.Gameplay.ServeAngleMax,
		"serve angles [%v, %v] must lie strictly inside (0, 90)", c.Gameplay.ServeAngleMin, c.Gameplay.ServeAngleMax)

	for name, p := range c.Difficulty {
		check(p.BallBaseSpeed > 0 && p.BallMaxSpeed >= p.BallBaseSpeed,
			"difficulty %s: ball speeds base=%v max=%v", name, p.BallBaseSpeed, p.BallMaxSpeed)
		check(p.PaddleSpeed > 0, "difficulty %s: paddle_speed must be positive", name)
		check(p.AIMix >= 0 && p.AIMix <= 1, "difficulty %s: ai_mix %v must be in [0, 1]", name, p.AIMix)
		check(p.ThinkInterval > 0 && !math.IsInf(p.ThinkInterval, 0), "difficulty %s: think_interval must be positive", name)
		check(p.UnforcedMiss >= 0 && p.UnforcedMiss <= 1, "difficulty %s: unforced_miss must be a probability", name)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
