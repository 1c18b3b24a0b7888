package multiplayer

import (
	"context"
	"errors"
	"fmt"
)

// ResultSaver persists a finalized match. It is implemented by the local
// SQLite store and by the HTTP API client, so the engine never depends on
// either.
type ResultSaver interface {
	SaveMatchResult(ctx context.Context, rec MatchRecord) (int64, error)
}

// SaverFunc adapts a function to ResultSaver.
type SaverFunc func(ctx context.Context, rec MatchRecord) (int64, error)

func (f SaverFunc) SaveMatchResult(ctx context.Context, rec MatchRecord) (int64, error) {
	return f(ctx, rec)
}

// ErrInvalidRecord is returned when a record fails Validate.
var ErrInvalidRecord = errors.New("multiplayer: invalid match record")

// MatchRecord is the body of POST /matches. Player ids are nil for guests
// and bots.
type MatchRecord struct {
	Player1ID       *int64        `json:"player1_id"`
	Player2ID       *int64        `json:"player2_id"`
	ScoreP1         int           `json:"score_p1"`
	ScoreP2         int           `json:"score_p2"`
	WinnerID        *int64        `json:"winner_id"`
	DurationSeconds int           `json:"duration_seconds"`
	Details         *MatchDetails `json:"details,omitempty"`
}

// MatchDetails carries everything the two-player columns cannot express.
type MatchDetails struct {
	SessionID  string       `json:"session_id"`
	Mode       MatchMode    `json:"mode"`
	Difficulty string       `json:"difficulty,omitempty"`
	Players    []PlayerLine `json:"players"`
}

// PlayerLine is one seat's final line in a match.
type PlayerLine struct {
	Seat          int    `json:"seat"`
	Name          string `json:"name"`
	UserID        *int64 `json:"user_id,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
	Score         int    `json:"score"`
	Hits          int    `json:"hits"`
	Saves         int    `json:"saves"`
	ShotsOnTarget int    `json:"shots_on_target"`
	Winner        bool   `json:"winner,omitempty"`
}

// Validate checks the invariants every persisted match must satisfy. When
// details are sent they must agree with the columns: both player ids and
// the winner id appear among the lines, and no other line is flagged as
// the winner.
func (r MatchRecord) Validate() error {
	if r.ScoreP1 < 0 || r.ScoreP2 < 0 || r.DurationSeconds < 0 {
		return ErrInvalidRecord
	}
	if r.WinnerID != nil && !sameID(r.WinnerID, r.Player1ID) && !sameID(r.WinnerID, r.Player2ID) {
		return ErrInvalidRecord
	}
	if r.Details == nil || len(r.Details.Players) == 0 {
		return nil
	}

	winners := 0
	for _, l := range r.Details.Players {
		if l.Score < 0 {
			return ErrInvalidRecord
		}
		if !l.Winner {
			continue
		}
		winners++
		if r.WinnerID != nil && !sameID(l.UserID, r.WinnerID) {
			return fmt.Errorf("%w: details name another winner than winner_id", ErrInvalidRecord)
		}
	}
	if winners > 1 {
		return fmt.Errorf("%w: %d winners in details", ErrInvalidRecord, winners)
	}
	for _, id := range []*int64{r.Player1ID, r.Player2ID} {
		if id != nil && !r.hasLine(*id) {
			return fmt.Errorf("%w: user %d missing from details", ErrInvalidRecord, *id)
		}
	}
	return nil
}

func (r MatchRecord) hasLine(id int64) bool {
	for _, l := range r.Details.Players {
		if l.UserID != nil && *l.UserID == id {
			return true
		}
	}
	return false
}

// Lines returns the per-seat lines, synthesizing them from the two-player
// columns when no details were sent. A winner id decides the winner flags
// over the details; without one the details' flags stand, or the higher
// score wins, which covers guests beating identified players.
func (r MatchRecord) Lines() []PlayerLine {
	if r.Details != nil && len(r.Details.Players) > 0 {
		lines := append([]PlayerLine(nil), r.Details.Players...)
		if r.WinnerID != nil {
			for i := range lines {
				lines[i].Winner = sameID(lines[i].UserID, r.WinnerID)
			}
		}
		return lines
	}
	first, second := r.ScoreP1 > r.ScoreP2, r.ScoreP2 > r.ScoreP1
	if r.WinnerID != nil {
		first, second = sameID(r.WinnerID, r.Player1ID), sameID(r.WinnerID, r.Player2ID)
	}
	return []PlayerLine{
		{Seat: 1, UserID: r.Player1ID, Score: r.ScoreP1, Winner: first},
		{Seat: 2, UserID: r.Player2ID, Score: r.ScoreP2, Winner: second},
	}
}

// ID returns a pointer to id, or nil for zero.
func ID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
