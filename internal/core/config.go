package core

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Phase    string // match state name, e.g. "PLAYING"
	Scores   []int  // one entry per seat, in seat order
	Winner   PlayerID
	GameOver bool
	Paused   bool
}

// Score returns the best score of any seat.
func (s GameState) Score() int {
	best := 0
	for _, v := range s.Scores {
		if v > best {
			best = v
		}
	}
	return best
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
