package pong

import (
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// Snapshot is a read-only copy of a session after a tick. Renderers draw
// from it and never query the session back.
type Snapshot struct {
	SessionID string
	Tick      uint64
	Mode      multiplayer.MatchMode
	State     State
	Countdown string // "3", "2", "1", "GO" or ""
	Arena     Arena
	Ball      Ball
	Paddles   []Paddle
	Seats     []multiplayer.Seat
	Scores    []int
	WinTarget int
	Winner    core.PlayerID
	LastHit   core.PlayerID
	RallyHits int
	Posted    bool
	Final     bool
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Tick:      s.tick,
		Mode:      s.setup.Mode,
		State:     s.machine.State(),
		Countdown: s.machine.CountdownLabel(),
		Arena:     s.arena,
		Ball:      s.ball,
		Paddles:   s.Paddles(),
		Seats:     s.Seats(),
		Scores:    s.Scores(),
		WinTarget: s.winTarget,
		Winner:    s.winner,
		LastHit:   s.rally.LastHit,
		RallyHits: s.rally.Hits,
		Posted:    s.posted,
		Final:     s.setup.NoRestart,
	}
}

// WinnerName returns the winning seat's name, or "" while undecided.
func (s Snapshot) WinnerName() string {
	if !s.Winner.Valid() || int(s.Winner) > len(s.Seats) {
		return ""
	}
	return s.Seats[int(s.Winner)-1].Name
}
