// Package pong implements the match engine: arena, physics, scoring
// rules, the scripted opponent, the match state machine, the session
// driver and result reporting. It also registers the playable variants
// with the game registry.
package pong

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// Options configures a Game before Reset.
type Options struct {
	Config     config.PongConfig
	Difficulty config.DifficultyPreset
	Seats      []multiplayer.Seat
	Saver      multiplayer.ResultSaver
	Logger     *log.Logger
	NoRestart  bool
}

// Game adapts a Driver to the registry.Game interface for the terminal
// platform. Each tick is one nominal frame scaled by the runtime tick rate.
type Game struct {
	id       string
	title    string
	mode     multiplayer.MatchMode
	opts     Options
	driver   *Driver
	snap     Snapshot
	err      error
	tickRate int
}

// New creates an unconfigured game for a mode.
func New(mode multiplayer.MatchMode) *Game {
	g := &Game{mode: mode, opts: Options{Config: config.DefaultPongConfig()}}
	switch mode {
	case multiplayer.ModeVersus:
		g.id, g.title = "pong_1v1", "Pong: 1 vs 1"
	case multiplayer.ModeFourPlayer:
		g.id, g.title = "pong_4p", "Pong: 4 players"
	default:
		g.id, g.title = "pong", "Pong vs AI"
	}
	return g
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// Mode returns the match mode this game plays.
func (g *Game) Mode() multiplayer.MatchMode { return g.mode }

// Players returns the number of local keyboards: bots need none.
func (g *Game) Players() int {
	if g.mode == multiplayer.ModeAI {
		return 1
	}
	return g.mode.Seats()
}

// Configure replaces the options used by the next Reset.
func (g *Game) Configure(opts Options) {
	if opts.Config.Difficulty == nil {
		opts.Config = config.DefaultPongConfig()
	}
	g.opts = opts
}

// Reset builds a fresh driver and starts its countdown. A rejected setup
// is kept in Err and rendered instead of the arena.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.tickRate = rt.TickRate
	if g.tickRate <= 0 {
		g.tickRate = NominalRate
	}

	seats := g.opts.Seats
	if seats == nil {
		for i := 0; i < g.mode.Seats(); i++ {
			seats = append(seats, multiplayer.Seat{Name: fmt.Sprintf("Player %d", i+1)})
		}
	}

	logger := g.opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	driver, err := NewDriver(Setup{
		Mode:       g.mode,
		Difficulty: g.opts.Difficulty,
		Seats:      seats,
		Config:     g.opts.Config,
		TickRate:   g.tickRate,
		Seed:       rt.Seed,
		NoRestart:  g.opts.NoRestart,
	}, WithLogger(logger), WithResultSaver(g.opts.Saver))
	if err != nil {
		g.driver, g.err = nil, err
		logger.Warn("match rejected", "mode", g.mode, "error", err)
		return
	}
	g.driver, g.err = driver, nil
	driver.Start()
	g.snap = driver.Session().Snapshot()
}

// Err returns why the last Reset failed, if it did.
func (g *Game) Err() error { return g.err }

// Step advances one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.driver != nil {
		g.snap = g.driver.Step(in, float64(NominalRate)/float64(g.tickRate))
	}
	return core.StepResult{State: g.State()}
}

// SetVisible pauses play when the terminal loses focus.
func (g *Game) SetVisible(visible bool) {
	if g.driver != nil {
		g.driver.SetVisible(visible)
	}
}

// Snapshot returns the state after the last tick.
func (g *Game) Snapshot() Snapshot { return g.snap }

// Wait blocks until pending result saves complete.
func (g *Game) Wait() {
	if g.driver != nil {
		g.driver.Wait()
	}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	if g.driver == nil {
		return core.GameState{Phase: "REJECTED", GameOver: true}
	}
	return core.GameState{
		Phase:    g.snap.State.String(),
		Scores:   g.snap.Scores,
		Winner:   g.snap.Winner,
		GameOver: g.snap.State == StateGameOver,
		Paused:   g.snap.State == StatePaused,
	}
}

func init() {
	for _, mode := range multiplayer.Modes() {
		mode := mode
		registry.Register(New(mode).ID(), func() registry.Game { return New(mode) })
	}
}
