package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// Match is a persisted match result.
type Match struct {
	ID int64 `json:"id"`
	multiplayer.MatchRecord
	CreatedAt time.Time `json:"created_at"`
}

const matchColumns = `id, player1_id, player2_id, score_p1, score_p2, winner_id,
	duration_seconds, details, created_at`

// SaveMatchResult stores a finished match and folds it into the stats of
// every identified player, in one transaction. It implements
// multiplayer.ResultSaver.
func (s *Store) SaveMatchResult(ctx context.Context, rec multiplayer.MatchRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	var details sql.NullString
	if rec.Details != nil {
		b, err := json.Marshal(rec.Details)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot encode match details: %w", err)
		}
		details = sql.NullString{String: string(b), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	deltas := statDeltas(rec)
	for _, id := range []*int64{rec.Player1ID, rec.Player2ID, rec.WinnerID} {
		if id != nil {
			deltas = append(deltas, UserStats{UserID: *id})
		}
	}
	for _, d := range deltas {
		if err := userExists(ctx, tx, d.UserID); err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO matches
		 (player1_id, player2_id, score_p1, score_p2, winner_id, duration_seconds, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Player1ID, rec.Player2ID, rec.ScoreP1, rec.ScoreP2, rec.WinnerID, rec.DurationSeconds, details,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, d := range deltas {
		if d.GamesPlayed == 0 {
			continue
		}
		if err := addStats(ctx, tx, d); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

// statDeltas turns a record into one stats increment per identified seat.
// Goals received are everything the other seats scored.
func statDeltas(rec multiplayer.MatchRecord) []UserStats {
	lines := rec.Lines()
	total, decided := 0, false
	for _, l := range lines {
		total += l.Score
		decided = decided || l.Winner
	}

	var out []UserStats
	for _, l := range lines {
		if l.UserID == nil {
			continue
		}
		d := UserStats{
			UserID:        *l.UserID,
			GamesPlayed:   1,
			GoalsScored:   l.Score,
			GoalsReceived: total - l.Score,
			ShotsOnTarget: l.ShotsOnTarget,
			Saves:         l.Saves,
		}
		switch {
		case l.Winner:
			d.Wins = 1
		case decided:
			d.Losses = 1
		}
		out = append(out, d)
	}
	return out
}

// Match retrieves a match by ID.
func (s *Store) Match(ctx context.Context, id int64) (Match, error) {
	m, err := scanMatch(s.db.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, ErrNotFound
	}
	if err != nil {
		return Match{}, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return m, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(ctx,
		"SELECT "+matchColumns+" FROM matches ORDER BY id DESC LIMIT ?", limit)
}

// UserMatches retrieves the matches a user played in any seat, newest first.
func (s *Store) UserMatches(ctx context.Context, userID int64, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE player1_id = ? OR player2_id = ?
		    OR EXISTS (
		       SELECT 1 FROM json_each(matches.details, '$.players') p
		       WHERE json_extract(p.value, '$.user_id') = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		userID, userID, userID, limit)
}

func (s *Store) queryMatches(ctx context.Context, query string, args ...any) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return matches, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (Match, error) {
	var m Match
	var p1, p2, winner sql.NullInt64
	var details sql.NullString
	var createdAt any

	if err := row.Scan(&m.ID, &p1, &p2, &m.ScoreP1, &m.ScoreP2, &winner,
		&m.DurationSeconds, &details, &createdAt); err != nil {
		return Match{}, err
	}

	m.Player1ID, m.Player2ID, m.WinnerID = nullID(p1), nullID(p2), nullID(winner)
	m.CreatedAt = parseTime(createdAt)
	if details.Valid && details.String != "" {
		var d multiplayer.MatchDetails
		if err := json.Unmarshal([]byte(details.String), &d); err != nil {
			return Match{}, fmt.Errorf("decode details of match %d: %w", m.ID, err)
		}
		m.Details = &d
	}
	return m, nil
}

func nullID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

// Ensure Store implements ResultSaver
var _ multiplayer.ResultSaver = (*Store)(nil)
