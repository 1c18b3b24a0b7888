// Package multiplayer holds the match-level types shared by the engine,
// the persistence store and the HTTP API: match modes, seats and the
// finalized match record.
package multiplayer

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

const (
	Player1 = core.Player1
	Player2 = core.Player2
	Player3 = core.Player3
	Player4 = core.Player4
)

// MatchMode selects the arena layout and the seat count of a match.
type MatchMode string

const (
	// ModeAI is one human on the left against the scripted opponent.
	ModeAI MatchMode = "ai"
	// ModeVersus is two local humans.
	ModeVersus MatchMode = "1v1"
	// ModeFourPlayer is four paddles, one per edge, scored by last hit.
	ModeFourPlayer MatchMode = "4p"
)

// Modes lists every playable mode.
func Modes() []MatchMode {
	return []MatchMode{ModeAI, ModeVersus, ModeFourPlayer}
}

// ParseMode accepts a mode name as typed on the command line.
func ParseMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ai", "cpu", "vs-ai":
		return ModeAI, nil
	case "1v1", "versus", "pvp":
		return ModeVersus, nil
	case "4p", "four", "4-player":
		return ModeFourPlayer, nil
	}
	return "", fmt.Errorf("multiplayer: unknown mode %q", s)
}

// Seats returns how many paddles the mode puts in the arena.
func (m MatchMode) Seats() int {
	if m == ModeFourPlayer {
		return 4
	}
	return 2
}

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case ModeAI:
		return "vs AI"
	case ModeVersus:
		return "1 vs 1"
	case ModeFourPlayer:
		return "4 players"
	default:
		return "unknown"
	}
}

// Seat describes who occupies a paddle. UserID is zero for guests and bots.
type Seat struct {
	Name   string
	UserID int64
	Bot    bool
}

// Identified reports whether the seat maps to a persisted user.
func (s Seat) Identified() bool {
	return s.UserID > 0 && !s.Bot
}
