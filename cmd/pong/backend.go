package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/api"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const backendTimeout = 5 * time.Second

// backend is where finished matches go: the local database, or the HTTP
// API when --api is set. Either may be missing, in which case matches are
// played but not saved.
type backend struct {
	store  *storage.Store
	client *api.Client
	logger *log.Logger
}

// openBackend prefers the API client when a URL is given.
func openBackend(apiURL string, logger *log.Logger) *backend {
	b := &backend{logger: logger}
	if apiURL != "" {
		b.client = api.NewClient(apiURL, backendTimeout)
		return b
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - matches still play
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		return b
	}
	b.store = store
	return b
}

// saver returns the result sink, or nil when nothing is configured.
func (b *backend) saver() multiplayer.ResultSaver {
	switch {
	case b.client != nil:
		return b.client
	case b.store != nil:
		return b.store
	}
	return nil
}

// stats returns the scoreboard source, or nil when nothing is configured.
func (b *backend) stats() tui.StatsSource {
	switch {
	case b.client != nil:
		return b.client
	case b.store != nil:
		return b.store
	}
	return nil
}

// seat resolves a nick to a registered player, registering it on first
// use. Without a backend, or when the backend fails, the player is a guest.
func (b *backend) seat(nick string) multiplayer.Seat {
	nick = strings.TrimSpace(nick)
	seat := multiplayer.Seat{Name: nick}
	if nick == "" {
		return seat
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
	defer cancel()

	var (
		user storage.User
		err  error
	)
	switch {
	case b.client != nil:
		user, err = b.client.EnsureUser(ctx, nick)
	case b.store != nil:
		user, err = b.store.CreateUser(ctx, nick, "")
		if errors.Is(err, storage.ErrConflict) {
			user, err = b.store.UserByNick(ctx, nick)
		}
	default:
		return seat
	}
	if err != nil {
		b.logger.Warn("playing as guest", "nick", nick, "error", err)
		return seat
	}
	seat.UserID = user.ID
	seat.Name = user.Nick
	return seat
}

// seats builds n seats from the given nicks. Missing nicks become numbered
// guests.
func (b *backend) seats(n int, nicks []string) []multiplayer.Seat {
	seats := make([]multiplayer.Seat, n)
	for i := 0; i < n; i++ {
		if i < len(nicks) && strings.TrimSpace(nicks[i]) != "" {
			seats[i] = b.seat(nicks[i])
			continue
		}
		seats[i] = multiplayer.Seat{Name: fmt.Sprintf("Player %d", i+1)}
	}
	return seats
}

// Close releases the database.
func (b *backend) Close() {
	if b.store != nil {
		b.store.Close()
	}
}
