package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UserStats are the aggregate statistics of one user.
type UserStats struct {
	UserID        int64  `json:"user_id"`
	Nick          string `json:"nick,omitempty"`
	GamesPlayed   int    `json:"games_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	GoalsScored   int    `json:"goals_scored"`
	GoalsReceived int    `json:"goals_received"`
	ShotsOnTarget int    `json:"shots_on_target"`
	Saves         int    `json:"saves"`
	WinStreak     int    `json:"win_streak"`
	BestStreak    int    `json:"best_streak"`
}

// Validate rejects negative counters.
func (st UserStats) Validate() error {
	for _, v := range []int{st.GamesPlayed, st.Wins, st.Losses, st.GoalsScored, st.GoalsReceived,
		st.ShotsOnTarget, st.Saves, st.WinStreak, st.BestStreak} {
		if v < 0 {
			return fmt.Errorf("%w: negative stat", ErrInvalid)
		}
	}
	return nil
}

const statsColumns = `games_played, wins, losses, goals_scored, goals_received,
	shots_on_target, saves, win_streak, best_streak`

// Stats retrieves one user's statistics. A user who never played gets
// zeroed stats.
func (s *Store) Stats(ctx context.Context, userID int64) (UserStats, error) {
	u, err := s.User(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}

	st := UserStats{UserID: u.ID, Nick: u.Nick}
	err = s.db.QueryRowContext(ctx,
		"SELECT "+statsColumns+" FROM user_stats WHERE user_id = ?", userID,
	).Scan(st.counters()...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return UserStats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// AllStats retrieves every user's statistics as a leaderboard: most wins
// first, then best goal difference.
func (s *Store) AllStats(ctx context.Context) ([]UserStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.nick,
		        COALESCE(s.games_played, 0), COALESCE(s.wins, 0), COALESCE(s.losses, 0),
		        COALESCE(s.goals_scored, 0), COALESCE(s.goals_received, 0),
		        COALESCE(s.shots_on_target, 0), COALESCE(s.saves, 0),
		        COALESCE(s.win_streak, 0), COALESCE(s.best_streak, 0)
		 FROM users u
		 LEFT JOIN user_stats s ON s.user_id = u.id
		 ORDER BY COALESCE(s.wins, 0) DESC,
		          COALESCE(s.goals_scored, 0) - COALESCE(s.goals_received, 0) DESC,
		          u.nick COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	all := []UserStats{}
	for rows.Next() {
		var st UserStats
		if err := rows.Scan(append([]any{&st.UserID, &st.Nick}, st.counters()...)...); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		all = append(all, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}

// UpsertStats replaces a user's statistics.
func (s *Store) UpsertStats(ctx context.Context, st UserStats) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if err := userExists(ctx, s.db, st.UserID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_stats (user_id, `+statsColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   games_played = excluded.games_played,
		   wins = excluded.wins,
		   losses = excluded.losses,
		   goals_scored = excluded.goals_scored,
		   goals_received = excluded.goals_received,
		   shots_on_target = excluded.shots_on_target,
		   saves = excluded.saves,
		   win_streak = excluded.win_streak,
		   best_streak = excluded.best_streak`,
		st.UserID, st.GamesPlayed, st.Wins, st.Losses, st.GoalsScored, st.GoalsReceived,
		st.ShotsOnTarget, st.Saves, st.WinStreak, st.BestStreak,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// ResetStats clears a user's statistics.
func (s *Store) ResetStats(ctx context.Context, userID int64) error {
	if err := userExists(ctx, s.db, userID); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM user_stats WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("storage: cannot reset stats: %w", err)
	}
	return nil
}

func (st *UserStats) counters() []any {
	return []any{&st.GamesPlayed, &st.Wins, &st.Losses, &st.GoalsScored, &st.GoalsReceived,
		&st.ShotsOnTarget, &st.Saves, &st.WinStreak, &st.BestStreak}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// addStats adds one match worth of counters to a user's row. A win extends
// the streak, a loss breaks it.
func addStats(ctx context.Context, q querier, d UserStats) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO user_stats (user_id, `+statsColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   games_played = games_played + excluded.games_played,
		   wins = wins + excluded.wins,
		   losses = losses + excluded.losses,
		   goals_scored = goals_scored + excluded.goals_scored,
		   goals_received = goals_received + excluded.goals_received,
		   shots_on_target = shots_on_target + excluded.shots_on_target,
		   saves = saves + excluded.saves,
		   win_streak = CASE
		     WHEN excluded.wins > 0 THEN win_streak + 1
		     WHEN excluded.losses > 0 THEN 0
		     ELSE win_streak END,
		   best_streak = MAX(best_streak, CASE
		     WHEN excluded.wins > 0 THEN win_streak + 1
		     ELSE 0 END)`,
		d.UserID, d.GamesPlayed, d.Wins, d.Losses, d.GoalsScored, d.GoalsReceived,
		d.ShotsOnTarget, d.Saves, d.Wins, d.Wins,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update stats for user %d: %w", d.UserID, err)
	}
	return nil
}

func userExists(ctx context.Context, q querier, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot query user: %w", err)
	}
	return nil
}
