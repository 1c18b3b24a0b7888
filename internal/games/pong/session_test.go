package pong

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func versusSetup() Setup {
	return Setup{
		Mode:  multiplayer.ModeVersus,
		Seats: []multiplayer.Seat{{Name: "ann", UserID: 11}, {Name: "bob", UserID: 12}},
		Seed:  7,
	}
}

func fourPlayerSetup() Setup {
	return Setup{
		Mode: multiplayer.ModeFourPlayer,
		Seats: []multiplayer.Seat{
			{Name: "ann", UserID: 11},
			{Name: "bob", UserID: 12},
			{Name: "cat", UserID: 13},
			{Name: "dan", UserID: 14},
		},
		Seed: 7,
	}
}

func newSession(t *testing.T, setup Setup) *Session {
	t.Helper()
	s, err := NewSession(setup)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// playingSession returns a started session that has just entered PLAYING.
func playingSession(t *testing.T, setup Setup) *Session {
	t.Helper()
	s := newSession(t, setup)
	s.Start(testNow)
	stepUntil(t, s, StatePlaying)
	return s
}

func stepUntil(t *testing.T, s *Session, want State) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if s.State() == want {
			return
		}
		s.Step(core.NewMultiInputFrame(), 1, testNow)
	}
	t.Fatalf("session stuck in %s, expected %s", s.State(), want)
}

func idle(s *Session, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step(core.NewMultiInputFrame(), 1, testNow)
	}
}

func TestNewSessionRejectsMalformedSetup(t *testing.T) {
	tests := []struct {
		name  string
		setup Setup
		err   error
	}{
		{"missing second seat", Setup{Mode: multiplayer.ModeVersus, Seats: []multiplayer.Seat{{Name: "ann"}}}, ErrMissingPlayer},
		{"blank name", Setup{Mode: multiplayer.ModeVersus, Seats: []multiplayer.Seat{{Name: "ann"}, {}}}, ErrMissingPlayer},
		{"three of four", Setup{Mode: multiplayer.ModeFourPlayer, Seats: []multiplayer.Seat{{Name: "a"}, {Name: "b"}, {Name: "c"}}}, ErrMissingPlayer},
		{"ai without player", Setup{Mode: multiplayer.ModeAI}, ErrMissingPlayer},
		{"unknown mode", Setup{Mode: "squash", Seats: []multiplayer.Seat{{Name: "ann"}}}, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.setup); !errors.Is(err, tt.err) {
				t.Errorf("NewSession() error = %v, expected %v", err, tt.err)
			}
		})
	}
}

func TestNewSessionAIMode(t *testing.T) {
	s := newSession(t, Setup{Mode: multiplayer.ModeAI, Seats: []multiplayer.Seat{{Name: "ann"}}, Difficulty: "insane"})

	seats := s.Seats()
	if len(seats) != 2 || !seats[1].Bot || seats[1].Name != "CPU" {
		t.Fatalf("Seats() = %+v, expected ann vs CPU", seats)
	}
	if _, ok := s.Controller(core.Player2).(*AIController); !ok {
		t.Errorf("Controller(P2) = %T, expected *AIController", s.Controller(core.Player2))
	}
	if _, ok := s.Controller(core.Player1).(HumanController); !ok {
		t.Errorf("Controller(P1) = %T, expected HumanController", s.Controller(core.Player1))
	}
	if s.Difficulty() != config.DifficultyNormal {
		t.Errorf("Difficulty() = %s, expected unknown preset to fall back to normal", s.Difficulty())
	}
	if s.State() != StateReady {
		t.Errorf("State() = %s, expected READY", s.State())
	}
	if s.WinTarget() != 5 {
		t.Errorf("WinTarget() = %d, expected 5", s.WinTarget())
	}
}

func TestNewSessionBotFill(t *testing.T) {
	setup := fourPlayerSetup()
	setup.Seats[3] = multiplayer.Seat{Bot: true}
	s := newSession(t, setup)

	if got := s.Seats()[3].Name; got != "CPU 4" {
		t.Errorf("bot seat name = %q, expected %q", got, "CPU 4")
	}
	if s.WinTarget() != 3 {
		t.Errorf("WinTarget() = %d, expected 3", s.WinTarget())
	}
}

func TestSessionStartServesFromCentre(t *testing.T) {
	s := newSession(t, versusSetup())
	if !s.Start(testNow) {
		t.Fatal("Start() = false, expected true")
	}
	if s.Start(testNow) {
		t.Error("second Start() = true, expected false")
	}

	b := s.Ball()
	if b.Pos != s.Arena().Center() {
		t.Errorf("ball at %v, expected centre", b.Pos)
	}
	if !near(b.Speed(), b.Base) {
		t.Errorf("serve speed = %v, expected base %v", b.Speed(), b.Base)
	}

	// countdown: the ball does not move
	idle(s, 10)
	if s.State() != StateCountdown || s.Ball().Pos != b.Pos {
		t.Errorf("state %s ball %v, expected frozen countdown", s.State(), s.Ball().Pos)
	}
}

func TestSessionTwoPaddleGoal(t *testing.T) {
	s := playingSession(t, versusSetup())
	s.ball.Pos, s.ball.Vel = core.V(3, 100), core.V(-7, 1)

	s.Step(core.NewMultiInputFrame(), 1, testNow)

	if got := s.Scores(); got[0] != 0 || got[1] != 1 {
		t.Fatalf("Scores() = %v, expected [0 1]", got)
	}
	if s.State() != StateServe {
		t.Errorf("State() = %s, expected SERVE", s.State())
	}
	if s.LastHit().Valid() {
		t.Errorf("LastHit() = %v, expected rally reset", s.LastHit())
	}
	b := s.Ball()
	if b.Pos != s.Arena().Center() || b.Vel.X >= 0 {
		t.Errorf("ball = %+v, expected re-serve from centre toward the left", b)
	}

	// serve delay, then countdown, then play resumes
	idle(s, 5)
	if s.Ball().Pos != b.Pos {
		t.Error("ball moved during SERVE")
	}
	stepUntil(t, s, StatePlaying)
}

func TestSessionWinningGoalEndsMatchSameTick(t *testing.T) {
	s := playingSession(t, versusSetup())
	s.scores[1] = s.WinTarget() - 1
	s.ball.Pos, s.ball.Vel = core.V(3, 100), core.V(-7, 1)

	s.Step(core.NewMultiInputFrame(), 1, testNow.Add(time.Minute))

	if s.State() != StateGameOver {
		t.Fatalf("State() = %s, expected GAMEOVER on the winning tick", s.State())
	}
	if s.Winner() != core.Player2 {
		t.Errorf("Winner() = %v, expected P2", s.Winner())
	}
	if d := s.Duration(testNow.Add(time.Hour)); d != time.Minute {
		t.Errorf("Duration() = %v, expected %v", d, time.Minute)
	}

	before := s.Ball()
	idle(s, 20)
	if s.State() != StateGameOver || s.Ball() != before {
		t.Error("session changed after GAMEOVER")
	}
}

func TestSessionFourPaddleUntouchedBallBounces(t *testing.T) {
	s := playingSession(t, fourPlayerSetup())
	s.rally.Reset()
	s.ball.Pos, s.ball.Vel = core.V(100, 9), core.V(1, -7)

	s.Step(core.NewMultiInputFrame(), 1, testNow)

	for i, sc := range s.Scores() {
		if sc != 0 {
			t.Errorf("Scores()[%d] = %d, expected no goal from an untouched ball", i, sc)
		}
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %s, expected PLAYING", s.State())
	}
	if s.Ball().Vel.Y <= 0 {
		t.Errorf("Vel.Y = %v, expected bounce off the top edge", s.Ball().Vel.Y)
	}
}

func TestSessionFourPaddleLastHitScores(t *testing.T) {
	s := playingSession(t, fourPlayerSetup())
	s.rally.Reset()
	s.rally.LastHit = core.Player2
	s.ball.Pos, s.ball.Vel = core.V(100, 5), core.V(1, -7)

	s.Step(core.NewMultiInputFrame(), 1, testNow)

	want := []int{0, 1, 0, 0}
	got := s.Scores()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Scores() = %v, expected %v", got, want)
		}
	}
	if s.Stats()[1].ShotsOnTarget != 1 {
		t.Errorf("Stats()[1].ShotsOnTarget = %d, expected 1", s.Stats()[1].ShotsOnTarget)
	}
	if s.State() != StateServe {
		t.Errorf("State() = %s, expected SERVE", s.State())
	}
}

func TestSessionRecordHits(t *testing.T) {
	s := newSession(t, versusSetup())
	s.recordHits([]Hit{
		{Paddle: core.Player1, Previous: core.NoPlayer},
		{Paddle: core.Player2, Previous: core.Player1},
		{Paddle: core.Player2, Previous: core.Player2},
	})

	want := []SeatStats{
		{Hits: 1, ShotsOnTarget: 1},
		{Hits: 2, Saves: 1},
	}
	for i, st := range s.Stats() {
		if st != want[i] {
			t.Errorf("Stats()[%d] = %+v, expected %+v", i, st, want[i])
		}
	}
}

func TestSessionPauseFreezesWorld(t *testing.T) {
	s := playingSession(t, versusSetup())
	idle(s, 5)
	ball := s.Ball()
	paddles := s.Paddles()

	s.Request(RequestPause)
	idle(s, 1)
	if s.State() != StatePaused {
		t.Fatalf("State() = %s, expected PAUSED", s.State())
	}

	in := core.NewMultiInputFrame()
	in.Press(core.Player1, core.ActionUp)
	for i := 0; i < 30; i++ {
		s.Step(in, 1, testNow)
	}
	if s.Ball() != ball || s.Paddles()[0] != paddles[0] {
		t.Fatal("world changed while paused")
	}

	s.Request(RequestResume)
	idle(s, 1)
	if s.State() != StatePlaying {
		t.Fatalf("State() = %s, expected PLAYING", s.State())
	}
	if s.Ball() != ball {
		t.Errorf("ball after resume = %+v, expected %+v", s.Ball(), ball)
	}

	idle(s, 1)
	if s.Ball().Pos == ball.Pos {
		t.Error("ball did not move after resume")
	}
}

func TestSessionPauseQueuedDuringCountdown(t *testing.T) {
	s := newSession(t, versusSetup())
	s.Start(testNow)
	s.Request(RequestPause)

	stepUntil(t, s, StatePlaying)
	idle(s, 1)
	if s.State() != StatePaused {
		t.Errorf("State() = %s, expected queued pause applied once playing", s.State())
	}
}

func TestSessionBoundsInvariant(t *testing.T) {
	tests := []struct {
		name  string
		setup Setup
	}{
		{"two bots", Setup{Mode: multiplayer.ModeVersus, Seats: []multiplayer.Seat{{Bot: true}, {Bot: true}}, Seed: 3, Difficulty: config.DifficultyHard}},
		{"four bots", Setup{Mode: multiplayer.ModeFourPlayer, Seats: []multiplayer.Seat{{Bot: true}, {Bot: true}, {Bot: true}, {Bot: true}}, Seed: 5, Difficulty: config.DifficultyEasy}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, tt.setup)
			s.Start(testNow)
			a := s.Arena()

			for i := 0; i < 20000 && s.State() != StateGameOver; i++ {
				s.Step(core.NewMultiInputFrame(), 1, testNow)

				b := s.Ball()
				if b.Pos.X < 0 || b.Pos.X > a.Width || b.Pos.Y < 0 || b.Pos.Y > a.Height {
					t.Fatalf("tick %d: ball at %v outside the arena", i, b.Pos)
				}
				if sp := b.Speed(); sp < b.Floor()-1e-6 || sp > b.Max+1e-6 {
					t.Fatalf("tick %d: speed %v outside [%v, %v]", i, sp, b.Floor(), b.Max)
				}
				for _, p := range s.Paddles() {
					lo, hi := p.Limits(a)
					if p.Pos < lo || p.Pos > hi {
						t.Fatalf("tick %d: %v paddle at %v outside [%v, %v]", i, p.Owner, p.Pos, lo, hi)
					}
				}
				for _, sc := range s.Scores() {
					if sc > s.WinTarget() {
						t.Fatalf("tick %d: score %d past target %d", i, sc, s.WinTarget())
					}
				}
			}
		})
	}
}

func TestSessionDeterminism(t *testing.T) {
	setup := Setup{Mode: multiplayer.ModeAI, Seats: []multiplayer.Seat{{Name: "ann"}}, Seed: 99}
	run := func() Snapshot {
		s := newSession(t, setup)
		s.Start(testNow)
		for i := 0; i < 2000; i++ {
			in := core.NewMultiInputFrame()
			if i%40 < 20 {
				in.Press(core.Player1, core.ActionUp)
			} else {
				in.Press(core.Player1, core.ActionDown)
			}
			s.Step(in, 1, testNow)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Ball != b.Ball || a.Tick != b.Tick || a.State != b.State {
		t.Errorf("runs diverged: %+v vs %+v", a.Ball, b.Ball)
	}
	for i := range a.Scores {
		if a.Scores[i] != b.Scores[i] {
			t.Errorf("Scores diverged: %v vs %v", a.Scores, b.Scores)
		}
	}
}

func TestSessionRecordTwoPlayer(t *testing.T) {
	s := newSession(t, Setup{Mode: multiplayer.ModeAI, Seats: []multiplayer.Seat{{Name: "ann", UserID: 5}}})
	s.Start(testNow)
	s.scores[0], s.scores[1] = 5, 3
	s.winner = core.Player1
	s.endedAt = testNow.Add(90 * time.Second)

	rec := s.Record(testNow)
	if rec.Player1ID == nil || *rec.Player1ID != 5 {
		t.Errorf("Player1ID = %v, expected 5", rec.Player1ID)
	}
	if rec.Player2ID != nil {
		t.Errorf("Player2ID = %v, expected nil for the CPU", *rec.Player2ID)
	}
	if rec.WinnerID == nil || *rec.WinnerID != 5 {
		t.Errorf("WinnerID = %v, expected 5", rec.WinnerID)
	}
	if rec.ScoreP1 != 5 || rec.ScoreP2 != 3 || rec.DurationSeconds != 90 {
		t.Errorf("record = %+v, expected 5-3 in 90s", rec)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
	if rec.Details == nil || rec.Details.SessionID != s.ID() || rec.Details.Mode != multiplayer.ModeAI {
		t.Errorf("Details = %+v, expected session and mode", rec.Details)
	}
}

func TestSessionRecordFourPlayer(t *testing.T) {
	s := newSession(t, fourPlayerSetup())
	s.Start(testNow)
	copy(s.scores, []int{1, 3, 0, 2})
	s.winner = core.Player2

	rec := s.Record(testNow)
	if *rec.Player1ID != 12 || *rec.Player2ID != 14 {
		t.Errorf("players = (%d, %d), expected winner 12 and runner-up 14", *rec.Player1ID, *rec.Player2ID)
	}
	if rec.ScoreP1 != 3 || rec.ScoreP2 != 2 {
		t.Errorf("scores = (%d, %d), expected (3, 2)", rec.ScoreP1, rec.ScoreP2)
	}
	if rec.WinnerID == nil || *rec.WinnerID != 12 {
		t.Errorf("WinnerID = %v, expected 12", rec.WinnerID)
	}
	if len(rec.Details.Players) != 4 || !rec.Details.Players[1].Winner {
		t.Errorf("Details.Players = %+v, expected four lines with seat 2 winning", rec.Details.Players)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}
