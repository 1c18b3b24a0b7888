// Package config provides YAML-based configuration for the pong engine:
// arena geometry, physics tuning, match rules and difficulty profiles.
package config

// PongConfig is the full tunable surface of the engine.
type PongConfig struct {
	Arena      ArenaConfig                            `yaml:"arena"`
	Physics    PhysicsConfig                          `yaml:"physics"`
	Paddles    PaddleConfig                           `yaml:"paddles"`
	Gameplay   GameplayConfig                         `yaml:"gameplay"`
	Difficulty map[DifficultyPreset]DifficultyProfile `yaml:"difficulty"`
}

// Size is a width/height pair in arena units.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArenaConfig defines the playfield for each layout.
type ArenaConfig struct {
	TwoPaddle  Size    `yaml:"two_paddle"`
	FourPaddle Size    `yaml:"four_paddle"`
	Inset      float64 `yaml:"paddle_inset"` // distance from edge to paddle face centre
}

// PhysicsConfig tunes the collision resolver. Velocities are in arena units
// per nominal frame.
type PhysicsConfig struct {
	MaxFrameDelta     float64 `yaml:"max_frame_delta"` // dt clamp, in frames
	WallFriction      float64 `yaml:"wall_friction"`
	SpinFactor        float64 `yaml:"spin_factor"`
	InfluenceFactor   float64 `yaml:"influence_factor"`
	SpeedIncrement    float64 `yaml:"speed_increment"`
	MinNormalRatio    float64 `yaml:"min_normal_ratio"`
	CollisionCooldown int     `yaml:"collision_cooldown_ticks"`
	BallRadius        float64 `yaml:"ball_radius"`
}

// PaddleConfig sizes the paddles.
type PaddleConfig struct {
	HalfLength           float64 `yaml:"half_length"`
	FourPaddleHalfLength float64 `yaml:"four_paddle_half_length"`
	Thickness            float64 `yaml:"thickness"`
}

// GameplayConfig holds match rules and pacing.
type GameplayConfig struct {
	WinScore           int     `yaml:"win_score"`
	FourPaddleWinScore int     `yaml:"four_paddle_win_score"`
	CountdownStepTicks int     `yaml:"countdown_step_ticks"`
	ServeDelayTicks    int     `yaml:"serve_delay_ticks"`
	ServeAngleMin      float64 `yaml:"serve_angle_min"` // degrees off the serve axis
	ServeAngleMax      float64 `yaml:"serve_angle_max"`
}

// DifficultyPreset names a difficulty profile.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// DifficultyProfile tunes ball pace and the scripted opponent for one preset.
type DifficultyProfile struct {
	BallBaseSpeed float64 `yaml:"ball_base_speed"`
	BallMaxSpeed  float64 `yaml:"ball_max_speed"`
	PaddleSpeed   float64 `yaml:"paddle_speed"`
	AIMix         float64 `yaml:"ai_mix"`
	ReactionError float64 `yaml:"reaction_error"`
	ThinkInterval float64 `yaml:"think_interval"` // seconds
	UnforcedMiss  float64 `yaml:"unforced_miss"`
	MissAfterHits int     `yaml:"miss_after_hits"`
	RallyRamp     float64 `yaml:"rally_ramp"` // noise growth per rally hit
	RampCap       int     `yaml:"ramp_cap"`
}
