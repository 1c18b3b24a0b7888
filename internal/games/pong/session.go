package pong

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// NominalRate is the tick rate velocities are expressed against: a dt of 1
// is one frame at 60 Hz.
const NominalRate = 60

var (
	// ErrMissingPlayer rejects a start with an empty required seat.
	ErrMissingPlayer = errors.New("pong: missing player")
	// ErrUnknownMode rejects a setup with an unsupported mode.
	ErrUnknownMode = errors.New("pong: unknown mode")
)

// Setup is everything needed to create a match session.
type Setup struct {
	Mode       multiplayer.MatchMode
	Difficulty config.DifficultyPreset
	Seats      []multiplayer.Seat
	Config     config.PongConfig
	TickRate   int
	Seed       int64
	NoRestart  bool // game over is final; the restart key is ignored
}

// normalize fills defaults and validates the seats. In ai mode seat 2 is
// always the scripted opponent.
func (s Setup) normalize() (Setup, error) {
	switch s.Mode {
	case multiplayer.ModeAI, multiplayer.ModeVersus, multiplayer.ModeFourPlayer:
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownMode, s.Mode)
	}
	if s.Config.Difficulty == nil {
		s.Config = config.DefaultPongConfig()
	}
	if s.TickRate <= 0 {
		s.TickRate = NominalRate
	}
	s.Difficulty = config.ParseDifficulty(string(s.Difficulty))

	n := s.Mode.Seats()
	seats := make([]multiplayer.Seat, n)
	copy(seats, s.Seats)
	if s.Mode == multiplayer.ModeAI {
		seats[1] = multiplayer.Seat{Name: "CPU", Bot: true}
	}
	for i, seat := range seats {
		if seat.Bot {
			if seat.Name == "" {
				seats[i].Name = fmt.Sprintf("CPU %d", i+1)
			}
			continue
		}
		if seat.Name == "" {
			return s, fmt.Errorf("%w: seat %d", ErrMissingPlayer, i+1)
		}
	}
	s.Seats = seats
	return s, nil
}

// SeatStats are per-seat counters for one match.
type SeatStats struct {
	Hits          int
	Saves         int
	ShotsOnTarget int
}

// Session is one match from countdown to game over. A new session is
// created for every match; it is never revived after GAMEOVER.
type Session struct {
	id      string
	setup   Setup
	arena   Arena
	ball    Ball
	paddles []*Paddle
	control []PaddleController
	owners  [4]core.PlayerID
	rally   Rally
	scores  []int
	stats   []SeatStats
	machine *Machine
	rule    ScoringRule
	physics Physics
	rng     *rand.Rand

	winTarget int
	winner    core.PlayerID
	clock     float64
	tick      uint64
	startedAt time.Time
	endedAt   time.Time
	posted    bool
	frozen    *frozenWorld
}

type frozenWorld struct {
	ball    Ball
	paddles []Paddle
}

// NewSession validates setup and builds a session in READY.
func NewSession(setup Setup) (*Session, error) {
	setup, err := setup.normalize()
	if err != nil {
		return nil, err
	}
	cfg := setup.Config
	profile := cfg.Profile(setup.Difficulty)
	n := len(setup.Seats)

	seed := setup.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		id:      uuid.NewString(),
		setup:   setup,
		arena:   NewArena(n, cfg.Arena),
		scores:  make([]int, n),
		stats:   make([]SeatStats, n),
		machine: NewMachine(cfg.Gameplay.CountdownStepTicks, cfg.Gameplay.ServeDelayTicks),
		rule:    RuleFor(n),
		physics: NewPhysics(cfg.Physics),
		rng:     rand.New(rand.NewSource(seed)),
	}

	s.winTarget = cfg.Gameplay.WinScore
	halfLength := cfg.Paddles.HalfLength
	if n == 4 {
		s.winTarget = cfg.Gameplay.FourPaddleWinScore
		halfLength = cfg.Paddles.FourPaddleHalfLength
	}

	for i, seat := range setup.Seats {
		owner := core.PlayerID(i + 1)
		side := Sides[i]
		s.owners[side] = owner
		s.paddles = append(s.paddles, NewPaddle(owner, side, s.arena, halfLength, cfg.Paddles.Thickness, profile.PaddleSpeed, cfg.Arena.Inset))
		if seat.Bot {
			s.control = append(s.control, NewAIController(profile, rand.New(rand.NewSource(seed+int64(owner)))))
		} else {
			s.control = append(s.control, HumanController{})
		}
	}

	s.ball = Ball{
		Pos:    s.arena.Center(),
		Radius: cfg.Physics.BallRadius,
		Base:   profile.BallBaseSpeed,
		Max:    profile.BallMaxSpeed,
	}
	return s, nil
}

func (s *Session) ID() string { return s.id }
func (s *Session) Mode() multiplayer.MatchMode { return s.setup.Mode }
func (s *Session) Difficulty() config.DifficultyPreset { return s.setup.Difficulty }
func (s *Session) State() State { return s.machine.State() }
func (s *Session) Winner() core.PlayerID { return s.winner }
func (s *Session) WinTarget() int { return s.winTarget }
func (s *Session) Arena() Arena { return s.arena }
func (s *Session) Ball() Ball { return s.ball }
func (s *Session) LastHit() core.PlayerID { return s.rally.LastHit }
func (s *Session) ResultPosted() bool { return s.posted }
func (s *Session) Seats() []multiplayer.Seat { return append([]multiplayer.Seat(nil), s.setup.Seats...) }
func (s *Session) Scores() []int { return append([]int(nil), s.scores...) }
func (s *Session) Stats() []SeatStats { return append([]SeatStats(nil), s.stats...) }

// Paddles returns copies of the paddles in seat order.
func (s *Session) Paddles() []Paddle {
	out := make([]Paddle, len(s.paddles))
	for i, p := range s.paddles {
		out[i] = *p
	}
	return out
}

// Controller returns the controller driving a seat.
func (s *Session) Controller(p core.PlayerID) PaddleController {
	if i := int(p) - 1; i >= 0 && i < len(s.control) {
		return s.control[i]
	}
	return nil
}

// Duration returns the time between start and game over, or until now for
// a match still running.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.endedAt
	if end.IsZero() {
		end = now
	}
	return end.Sub(s.startedAt)
}

// Start leaves READY: scores are zeroed, the ball is centred and the first
// serve is prepared toward a random goal.
func (s *Session) Start(now time.Time) bool {
	if !s.machine.Start() {
		return false
	}
	s.startedAt = now
	for i := range s.scores {
		s.scores[i] = 0
		s.stats[i] = SeatStats{}
	}
	var goals []Side
	for _, side := range Sides {
		if s.arena.Edge(side) == EdgeGoal {
			goals = append(goals, side)
		}
	}
	s.serve(goals[s.rng.Intn(len(goals))])
	return true
}

// Request queues a pause or resume.
func (s *Session) Request(r Request) {
	s.machine.Request(r)
}

// Step runs one tick. Physics and scoring only run while PLAYING, and never
// on a tick that already changed state.
func (s *Session) Step(in core.MultiInputFrame, dt float64, now time.Time) {
	s.tick++
	m := s.machine
	m.BeginTick()

	before := m.State()
	m.Advance()
	if after := m.State(); after != before {
		s.entered(before, after)
	}
	if m.State() != StatePlaying || m.Changed() {
		return
	}

	dt = s.physics.ClampDelta(dt)
	s.clock += dt / NominalRate

	for i, p := range s.paddles {
		dir := s.control[i].Direction(ControlView{
			Clock:     s.clock,
			Arena:     s.arena,
			Ball:      s.ball,
			Paddle:    *p,
			Input:     in.Player(p.Owner),
			RallyHits: s.rally.Hits,
		})
		p.Move(dir, dt, s.arena)
	}

	hits := s.physics.Step(dt, s.arena, &s.ball, s.paddles, &s.rally, s.bounces)
	s.recordHits(hits)
	s.evaluate(now)
}

func (s *Session) bounces(side Side) bool {
	return s.rule.Bounces(s.arena, side, s.rally.LastHit)
}

func (s *Session) entered(from, to State) {
	switch {
	case to == StatePaused:
		s.freeze()
	case from == StatePaused && to == StatePlaying:
		s.thaw()
	}
}

func (s *Session) freeze() {
	f := &frozenWorld{ball: s.ball}
	for _, p := range s.paddles {
		f.paddles = append(f.paddles, *p)
	}
	s.frozen = f
}

func (s *Session) thaw() {
	if s.frozen == nil {
		return
	}
	s.ball = s.frozen.ball
	for i := range s.paddles {
		*s.paddles[i] = s.frozen.paddles[i]
	}
	s.frozen = nil
}

// recordHits credits saves and shots: returning a ball another seat struck
// is a save for the returner and a shot on target for the striker.
func (s *Session) recordHits(hits []Hit) {
	for _, h := range hits {
		s.stats[int(h.Paddle)-1].Hits++
		if h.Previous.Valid() && h.Previous != h.Paddle {
			s.stats[int(h.Paddle)-1].Saves++
			s.stats[int(h.Previous)-1].ShotsOnTarget++
		}
	}
}

// evaluate checks for a goal after physics. It returns true when a goal was
// scored.
func (s *Session) evaluate(now time.Time) bool {
	if s.machine.State() != StatePlaying {
		return false
	}
	side, crossed := s.arena.Crossed(s.ball.Pos, s.ball.Radius)
	if !crossed || s.bounces(side) {
		return false
	}
	scorer, ok := s.rule.Scorer(side, s.rally.LastHit, s.owners)
	if !ok {
		return false
	}

	i := int(scorer) - 1
	s.scores[i]++
	if s.rally.LastHit == scorer {
		s.stats[i].ShotsOnTarget++
	}
	s.rally.Reset()

	won := s.scores[i] >= s.winTarget
	if won {
		s.winner = scorer
		s.endedAt = now
	}
	s.machine.Goal(won)
	if !won {
		s.serve(side)
	}
	return true
}

// serve centres the ball and aims it at side at base speed.
func (s *Session) serve(toward Side) {
	g := s.setup.Config.Gameplay
	s.rally.Reset()
	s.ball.Pos = s.arena.Center()
	s.ball.Vel = ServeVelocity(s.rng, toward, s.ball.Base, g.ServeAngleMin, g.ServeAngleMax)
}

// markPosted sets the result-posted flag, reporting false if it was
// already set.
func (s *Session) markPosted() bool {
	if s.posted {
		return false
	}
	s.posted = true
	return true
}

// Record builds the finalized match record. Two-seat matches map seats 1
// and 2 to player1 and player2; four-seat matches report the winner and
// runner-up, with every seat in the details.
func (s *Session) Record(now time.Time) multiplayer.MatchRecord {
	lines := make([]multiplayer.PlayerLine, len(s.setup.Seats))
	for i, seat := range s.setup.Seats {
		var uid *int64
		if seat.Identified() {
			uid = multiplayer.ID(seat.UserID)
		}
		lines[i] = multiplayer.PlayerLine{
			Seat:          i + 1,
			Name:          seat.Name,
			UserID:        uid,
			Bot:           seat.Bot,
			Score:         s.scores[i],
			Hits:          s.stats[i].Hits,
			Saves:         s.stats[i].Saves,
			ShotsOnTarget: s.stats[i].ShotsOnTarget,
			Winner:        core.PlayerID(i+1) == s.winner,
		}
	}

	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	if len(order) > 2 {
		sort.SliceStable(order, func(a, b int) bool {
			return lines[order[a]].Score > lines[order[b]].Score
		})
	}
	first, second := lines[order[0]], lines[order[1]]

	rec := multiplayer.MatchRecord{
		Player1ID:       first.UserID,
		Player2ID:       second.UserID,
		ScoreP1:         first.Score,
		ScoreP2:         second.Score,
		DurationSeconds: int(math.Round(s.Duration(now).Seconds())),
		Details: &multiplayer.MatchDetails{
			SessionID:  s.id,
			Mode:       s.setup.Mode,
			Difficulty: string(s.setup.Difficulty),
			Players:    lines,
		},
	}
	if s.winner.Valid() {
		rec.WinnerID = lines[int(s.winner)-1].UserID
	}
	return rec
}
