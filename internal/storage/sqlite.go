// Package storage provides SQLite-based persistence for users, match
// results and per-user statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned when a user or match does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrConflict is returned when a nick is already taken.
	ErrConflict = errors.New("storage: already exists")
	// ErrInvalid is returned for input the schema cannot accept.
	ErrInvalid = errors.New("storage: invalid input")
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// User is a registered player alias.
type User struct {
	ID        int64     `json:"id"`
	Nick      string    `json:"nick"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// foreign keys are per connection, so they go in the DSN
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nick TEXT NOT NULL UNIQUE COLLATE NOCASE,
			avatar TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player1_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
			player2_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
			score_p1 INTEGER NOT NULL DEFAULT 0,
			score_p2 INTEGER NOT NULL DEFAULT 0,
			winner_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			details TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches(player1_id);
		CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches(player2_id);

		CREATE TABLE IF NOT EXISTS user_stats (
			user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			games_played INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			goals_scored INTEGER NOT NULL DEFAULT 0,
			goals_received INTEGER NOT NULL DEFAULT 0,
			shots_on_target INTEGER NOT NULL DEFAULT 0,
			saves INTEGER NOT NULL DEFAULT 0,
			win_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateUser registers a nick. Nicks are unique regardless of case.
func (s *Store) CreateUser(ctx context.Context, nick, avatar string) (User, error) {
	nick = strings.TrimSpace(nick)
	if nick == "" {
		return User{}, fmt.Errorf("%w: nick required", ErrInvalid)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (nick, avatar) VALUES (?, ?)",
		nick, strings.TrimSpace(avatar),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, fmt.Errorf("%w: nick %q", ErrConflict, nick)
		}
		return User{}, fmt.Errorf("storage: cannot create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return s.User(ctx, id)
}

// User retrieves a user by ID.
func (s *Store) User(ctx context.Context, id int64) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, nick, avatar, created_at FROM users WHERE id = ?", id))
}

// UserByNick retrieves a user by nick, ignoring case.
func (s *Store) UserByNick(ctx context.Context, nick string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, nick, avatar, created_at FROM users WHERE nick = ?", strings.TrimSpace(nick)))
}

func (s *Store) scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt any
	err := row.Scan(&u.ID, &u.Nick, &u.Avatar, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// Users lists every user ordered by nick.
func (s *Store) Users(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, nick, avatar, created_at FROM users ORDER BY nick COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		var createdAt any
		if err := rows.Scan(&u.ID, &u.Nick, &u.Avatar, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		u.CreatedAt = parseTime(createdAt)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and their stats. Matches they played keep
// their scores with the player reference cleared.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
