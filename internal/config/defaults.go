package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the built-in configuration used when no YAML
// source is available. It mirrors defaults/pong.yaml.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Arena: ArenaConfig{
			TwoPaddle:  Size{Width: 800, Height: 500},
			FourPaddle: Size{Width: 600, Height: 600},
			Inset:      24,
		},
		Physics: PhysicsConfig{
			MaxFrameDelta:     3,
			WallFriction:      0.98,
			SpinFactor:        0.35,
			InfluenceFactor:   0.25,
			SpeedIncrement:    0.4,
			MinNormalRatio:    0.3,
			CollisionCooldown: 4,
			BallRadius:        8,
		},
		Paddles: PaddleConfig{
			HalfLength:           45,
			FourPaddleHalfLength: 50,
			Thickness:            12,
		},
		Gameplay: GameplayConfig{
			WinScore:           5,
			FourPaddleWinScore: 3,
			CountdownStepTicks: 45,
			ServeDelayTicks:    30,
			ServeAngleMin:      20,
			ServeAngleMax:      50,
		},
		Difficulty: map[DifficultyPreset]DifficultyProfile{
			DifficultyEasy: {
				BallBaseSpeed: 5,
				BallMaxSpeed:  12,
				PaddleSpeed:   6,
				AIMix:         0.35,
				ReactionError: 0.9,
				ThinkInterval: 1.2,
				UnforcedMiss:  0.25,
				MissAfterHits: 3,
				RallyRamp:     0.08,
				RampCap:       10,
			},
			DifficultyNormal: {
				BallBaseSpeed: 7,
				BallMaxSpeed:  15,
				PaddleSpeed:   8,
				AIMix:         0.55,
				ReactionError: 0.45,
				ThinkInterval: 1.0,
				UnforcedMiss:  0.12,
				MissAfterHits: 5,
				RallyRamp:     0.05,
				RampCap:       12,
			},
			DifficultyHard: {
				BallBaseSpeed: 9,
				BallMaxSpeed:  18,
				PaddleSpeed:   10,
				AIMix:         0.8,
				ReactionError: 0.15,
				ThinkInterval: 0.7,
				UnforcedMiss:  0.04,
				MissAfterHits: 8,
				RallyRamp:     0.03,
				RampCap:       15,
			},
		},
	}
}
