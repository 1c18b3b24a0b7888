package pong

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used by the driver and its reporter.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithResultSaver sets where finished matches are posted.
func WithResultSaver(s multiplayer.ResultSaver) Option {
	return func(d *Driver) { d.saver = s }
}

// WithClock replaces time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// Driver owns the current session and is its only writer. It is not safe
// for concurrent use: the program loop that renders the game also steps it.
// Pause and resume requests are queued and applied at the start of the next
// step.
type Driver struct {
	setup    Setup
	session  *Session
	reporter *Reporter
	saver    multiplayer.ResultSaver
	logger   *log.Logger
	now      func() time.Time
	requests []Request
}

// NewDriver validates setup and creates the first session in READY. A
// malformed setup is rejected before any session exists.
func NewDriver(setup Setup, opts ...Option) (*Driver, error) {
	d := &Driver{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}

	session, err := NewSession(setup)
	if err != nil {
		return nil, err
	}
	d.setup = session.setup
	d.session = session
	d.reporter = NewReporter(d.saver, d.logger)
	return d, nil
}

// Session returns the current session. Only the driving goroutine may use it.
func (d *Driver) Session() *Session {
	return d.session
}

// Start moves the current session from READY into its countdown.
func (d *Driver) Start() {
	if d.session.Start(d.now()) {
		d.logger.Debug("match started", "session", d.session.ID(), "mode", d.setup.Mode, "difficulty", d.setup.Difficulty)
	}
}

// Request queues a pause or resume for the next step.
func (d *Driver) Request(r Request) {
	d.requests = append(d.requests, r)
}

// SetVisible reports whether the player can see the game. Losing
// visibility pauses play.
func (d *Driver) SetVisible(visible bool) {
	if !visible {
		d.Request(RequestPause)
	}
}

// Step advances one tick with explicit input and frame delta. A restart
// key only counts once the match is over, and never when the setup says
// NoRestart.
func (d *Driver) Step(in core.MultiInputFrame, dt float64) Snapshot {
	now := d.now()

	requests := d.requests
	d.requests = nil

	restart := in.System.Has(core.ActionRestart) && !d.setup.NoRestart
	if restart && d.session.State() == StateGameOver {
		if err := d.Restart(); err != nil {
			d.logger.Error("restart failed", "error", err)
		}
		return d.session.Snapshot()
	}

	for _, r := range requests {
		d.session.Request(r)
	}
	if in.System.Has(core.ActionPause) {
		d.session.Request(RequestToggle)
	}

	d.session.Step(in, dt, now)
	if d.session.State() == StateGameOver {
		if d.reporter.Report(d.session, now) {
			d.logger.Info("match over", "session", d.session.ID(), "winner", d.session.Winner(), "scores", d.session.Scores())
		}
	}
	return d.session.Snapshot()
}

// Restart replaces the session with a fresh one built from the same setup
// and starts its countdown. A fixed seed is advanced so the rematch differs.
func (d *Driver) Restart() error {
	if d.setup.Seed != 0 {
		d.setup.Seed++
	}
	session, err := NewSession(d.setup)
	if err != nil {
		return err
	}
	d.session = session
	d.Start()
	return nil
}

// Wait blocks until pending result saves complete.
func (d *Driver) Wait() {
	d.reporter.Wait()
}
