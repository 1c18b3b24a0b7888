package pong

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// TournamentSize is the number of entrants in a bracket.
const TournamentSize = 4

var (
	// ErrTournamentPlayers rejects a bracket without exactly four distinct entrants.
	ErrTournamentPlayers = errors.New("pong: tournament needs 4 distinct players")
	// ErrTournamentOver is returned when recording past the final.
	ErrTournamentOver = errors.New("pong: tournament is over")
)

// Pairing is one bracket match. Winner is NoPlayer until it is played,
// then Player1 for Left or Player2 for Right.
type Pairing struct {
	Round  int
	Left   multiplayer.Seat
	Right  multiplayer.Seat
	Winner core.PlayerID
}

// WinnerSeat returns the seat that won, if decided.
func (p Pairing) WinnerSeat() (multiplayer.Seat, bool) {
	switch p.Winner {
	case core.Player1:
		return p.Left, true
	case core.Player2:
		return p.Right, true
	}
	return multiplayer.Seat{}, false
}

// Tournament is a single-elimination bracket: two semi-finals, then a final
// between their winners. Each match is a 1v1 session.
type Tournament struct {
	pairings []Pairing
	current  int
}

// NewTournament seeds the bracket as 1v2 and 3v4.
func NewTournament(players []multiplayer.Seat) (*Tournament, error) {
	if len(players) != TournamentSize {
		return nil, fmt.Errorf("%w: got %d", ErrTournamentPlayers, len(players))
	}
	seen := make(map[string]bool, len(players))
	for i, p := range players {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: seat %d", ErrMissingPlayer, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q entered twice", ErrTournamentPlayers, p.Name)
		}
		seen[name] = true
	}
	return &Tournament{pairings: []Pairing{
		{Round: 1, Left: players[0], Right: players[1]},
		{Round: 1, Left: players[2], Right: players[3]},
	}}, nil
}

// Current returns the next match to play.
func (t *Tournament) Current() (Pairing, bool) {
	if t.Done() {
		return Pairing{}, false
	}
	return t.pairings[t.current], true
}

// Setup builds the 1v1 session setup for the current pairing, using base for
// difficulty, config, tick rate and seed. A bracket match cannot be
// restarted, so its first result stands.
func (t *Tournament) Setup(base Setup) (Setup, error) {
	p, ok := t.Current()
	if !ok {
		return Setup{}, ErrTournamentOver
	}
	base.Mode = multiplayer.ModeVersus
	base.Seats = []multiplayer.Seat{p.Left, p.Right}
	base.NoRestart = true
	if base.Seed != 0 {
		base.Seed += int64(t.current)
	}
	return base, nil
}

// Record stores the current match's winner and schedules the final once both
// semi-finals are decided.
func (t *Tournament) Record(winner core.PlayerID) error {
	if t.Done() {
		return ErrTournamentOver
	}
	if winner != core.Player1 && winner != core.Player2 {
		return fmt.Errorf("pong: tournament winner must be seat 1 or 2, got %s", winner)
	}
	t.pairings[t.current].Winner = winner
	t.current++

	if t.current == 2 {
		a, _ := t.pairings[0].WinnerSeat()
		b, _ := t.pairings[1].WinnerSeat()
		t.pairings = append(t.pairings, Pairing{Round: 2, Left: a, Right: b})
	}
	return nil
}

// Done reports whether the final has been played.
func (t *Tournament) Done() bool {
	return t.current >= len(t.pairings)
}

// Champion returns the winner of the final.
func (t *Tournament) Champion() (multiplayer.Seat, bool) {
	if !t.Done() {
		return multiplayer.Seat{}, false
	}
	return t.pairings[len(t.pairings)-1].WinnerSeat()
}

// Pairings returns the bracket so far.
func (t *Tournament) Pairings() []Pairing {
	return append([]Pairing(nil), t.pairings...)
}
