package pong

import "testing"

// tick runs one machine tick.
func tick(m *Machine) {
	m.BeginTick()
	m.Advance()
}

// toPlaying ticks a machine until it enters PLAYING.
func toPlaying(t *testing.T, m *Machine) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if m.State() == StatePlaying {
			return
		}
		tick(m)
	}
	t.Fatalf("machine stuck in %s", m.State())
}

func TestMachineCountdown(t *testing.T) {
	m := NewMachine(2, 3)
	if m.State() != StateReady {
		t.Fatalf("NewMachine() state = %s, expected READY", m.State())
	}
	if !m.Start() || m.State() != StateCountdown {
		t.Fatalf("Start() state = %s, expected COUNTDOWN", m.State())
	}
	if m.Start() {
		t.Error("second Start() = true, expected false")
	}

	var labels []string
	last := ""
	ticks := 0
	for m.State() == StateCountdown {
		if l := m.CountdownLabel(); l != "" && l != last {
			labels = append(labels, l)
			last = l
		}
		tick(m)
		ticks++
	}

	if m.State() != StatePlaying {
		t.Errorf("state after countdown = %s, expected PLAYING", m.State())
	}
	if ticks != countdownSteps*2 {
		t.Errorf("countdown took %d ticks, expected %d", ticks, countdownSteps*2)
	}
	want := []string{"3", "2", "1", "GO"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, expected %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, expected %q", i, labels[i], want[i])
		}
	}
}

func TestMachineServeDelay(t *testing.T) {
	m := NewMachine(2, 3)
	m.Start()
	toPlaying(t, m)

	m.BeginTick()
	if !m.Goal(false) || m.State() != StateServe {
		t.Fatalf("Goal(false) state = %s, expected SERVE", m.State())
	}

	quiet := 0
	for m.CountdownLabel() == "" {
		tick(m)
		quiet++
	}
	if quiet != 3 {
		t.Errorf("serve delay = %d ticks, expected 3", quiet)
	}
	toPlaying(t, m)
}

func TestMachineOneTransitionPerTick(t *testing.T) {
	m := NewMachine(1, 0)
	m.Start()
	for m.State() == StateCountdown {
		tick(m)
	}
	// this tick already went COUNTDOWN -> PLAYING
	if m.Goal(true) {
		t.Error("Goal() on the transition tick = true, expected refused")
	}
	if m.State() != StatePlaying {
		t.Errorf("state = %s, expected PLAYING", m.State())
	}

	m.BeginTick()
	if !m.Goal(true) || m.State() != StateGameOver {
		t.Errorf("Goal(true) state = %s, expected GAMEOVER", m.State())
	}
}

func TestMachinePauseQueuedDuringCountdown(t *testing.T) {
	m := NewMachine(2, 0)
	m.Start()
	m.Request(RequestPause)

	toPlaying(t, m)
	if m.Pending() != RequestPause {
		t.Fatalf("Pending() = %v, expected queued pause", m.Pending())
	}

	tick(m)
	if m.State() != StatePaused {
		t.Errorf("state = %s, expected PAUSED on the first playing tick", m.State())
	}
	if m.Pending() != RequestNone {
		t.Errorf("Pending() = %v, expected cleared", m.Pending())
	}
}

func TestMachineLatestRequestWins(t *testing.T) {
	m := NewMachine(1, 0)
	m.Start()
	m.Request(RequestPause)
	m.Request(RequestResume)
	toPlaying(t, m)

	tick(m)
	if m.State() != StatePlaying {
		t.Errorf("state = %s, expected PLAYING after pause then resume", m.State())
	}
}

func TestMachineToggle(t *testing.T) {
	m := NewMachine(1, 0)
	m.Start()
	toPlaying(t, m)

	tests := []struct {
		req  Request
		want State
	}{
		{RequestToggle, StatePaused},
		{RequestPause, StatePaused},
		{RequestToggle, StatePlaying},
		{RequestResume, StatePlaying},
		{RequestPause, StatePaused},
		{RequestResume, StatePlaying},
	}
	for i, tt := range tests {
		m.Request(tt.req)
		tick(m)
		if m.State() != tt.want {
			t.Errorf("step %d: state = %s, expected %s", i, m.State(), tt.want)
		}
	}
}

func TestMachineGameOverIsFinal(t *testing.T) {
	m := NewMachine(1, 0)
	m.Start()
	toPlaying(t, m)
	m.BeginTick()
	m.Goal(true)

	m.Request(RequestResume)
	if m.Pending() != RequestNone {
		t.Errorf("Pending() = %v, expected requests ignored in GAMEOVER", m.Pending())
	}
	for i := 0; i < 10; i++ {
		tick(m)
	}
	if m.State() != StateGameOver {
		t.Errorf("state = %s, expected GAMEOVER", m.State())
	}
	if m.Goal(false) {
		t.Error("Goal() in GAMEOVER = true, expected false")
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateReady:     "READY",
		StateCountdown: "COUNTDOWN",
		StateServe:     "SERVE",
		StatePlaying:   "PLAYING",
		StatePaused:    "PAUSED",
		StateGameOver:  "GAMEOVER",
		State(99):      "UNKNOWN",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, expected %q", int(s), got, want)
		}
	}
}
