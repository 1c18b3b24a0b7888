package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// DefaultClientTimeout bounds every request the client makes.
const DefaultClientTimeout = 5 * time.Second

// Client talks to a running API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// SaveMatchResult posts a finished match. It implements
// multiplayer.ResultSaver.
func (c *Client) SaveMatchResult(ctx context.Context, rec multiplayer.MatchRecord) (int64, error) {
	var resp createdResponse
	if err := c.do(ctx, http.MethodPost, "/matches", rec, &resp); err != nil {
		return 0, fmt.Errorf("api: cannot save match: %w", err)
	}
	return resp.ID, nil
}

// EnsureUser returns the user with the given nick, registering it first
// when it does not exist yet.
func (c *Client) EnsureUser(ctx context.Context, nick string) (storage.User, error) {
	var u storage.User
	err := c.do(ctx, http.MethodPost, "/users", createUserRequest{Nick: nick}, &u)
	if err == nil {
		return u, nil
	}

	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusConflict {
		return storage.User{}, fmt.Errorf("api: cannot register %q: %w", nick, err)
	}

	var users []storage.User
	if err := c.do(ctx, http.MethodGet, "/users?nick="+url.QueryEscape(nick), nil, &users); err != nil {
		return storage.User{}, fmt.Errorf("api: cannot look up %q: %w", nick, err)
	}
	if len(users) == 0 {
		return storage.User{}, fmt.Errorf("api: user %q vanished", nick)
	}
	return users[0], nil
}

// RecentMatches lists the newest matches on the server.
func (c *Client) RecentMatches(ctx context.Context, limit int) ([]storage.Match, error) {
	var matches []storage.Match
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/matches?limit=%d", limit), nil, &matches); err != nil {
		return nil, fmt.Errorf("api: cannot list matches: %w", err)
	}
	return matches, nil
}

// AllStats fetches the leaderboard.
func (c *Client) AllStats(ctx context.Context) ([]storage.UserStats, error) {
	var all []storage.UserStats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &all); err != nil {
		return nil, fmt.Errorf("api: cannot list stats: %w", err)
	}
	return all, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Ensure Client implements ResultSaver
var _ multiplayer.ResultSaver = (*Client)(nil)
