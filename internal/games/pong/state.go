package pong

// State is a phase of the match lifecycle.
type State int

const (
	StateReady State = iota
	StateCountdown
	StateServe
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateCountdown:
		return "COUNTDOWN"
	case StateServe:
		return "SERVE"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateGameOver:
		return "GAMEOVER"
	}
	return "UNKNOWN"
}

// Request is an asynchronous ask to pause or resume.
type Request int

const (
	RequestNone Request = iota
	RequestPause
	RequestResume
	RequestToggle
)

// countdownSteps is 3, 2, 1, GO.
const countdownSteps = 4

var countdownLabels = [countdownSteps]string{"GO", "1", "2", "3"}

// Machine is the match state machine. It allows at most one transition per
// tick; BeginTick opens a new tick.
type Machine struct {
	state      State
	timer      int
	stepTicks  int
	serveDelay int
	pending    Request
	changed    bool
}

// NewMachine creates a machine in READY. stepTicks is the length of each
// countdown step, serveDelay the pause after a goal before the countdown.
func NewMachine(stepTicks, serveDelay int) *Machine {
	if stepTicks < 1 {
		stepTicks = 1
	}
	if serveDelay < 0 {
		serveDelay = 0
	}
	return &Machine{stepTicks: stepTicks, serveDelay: serveDelay}
}

// State returns the active state.
func (m *Machine) State() State { return m.state }

// Changed reports whether a transition already happened this tick.
func (m *Machine) Changed() bool { return m.changed }

// BeginTick opens a new tick.
func (m *Machine) BeginTick() { m.changed = false }

func (m *Machine) enter(s State) bool {
	if m.changed {
		return false
	}
	m.state = s
	m.changed = true
	switch s {
	case StateCountdown:
		m.timer = countdownSteps * m.stepTicks
	case StateServe:
		m.timer = m.serveDelay + countdownSteps*m.stepTicks
	default:
		m.timer = 0
	}
	return true
}

// Start moves READY to COUNTDOWN.
func (m *Machine) Start() bool {
	if m.state != StateReady {
		return false
	}
	return m.enter(StateCountdown)
}

// Request records a pause or resume ask. Only the latest ask is kept, and it
// is only acted on once the match is PLAYING or PAUSED.
func (m *Machine) Request(r Request) {
	if m.state == StateGameOver {
		return
	}
	m.pending = r
}

// Pending returns the queued request.
func (m *Machine) Pending() Request { return m.pending }

// Advance runs the timed transitions and applies a queued request.
func (m *Machine) Advance() {
	switch m.state {
	case StateCountdown, StateServe:
		m.timer--
		if m.timer <= 0 {
			m.enter(StatePlaying)
		}
	case StatePlaying:
		if m.pending == RequestPause || m.pending == RequestToggle {
			m.pending = RequestNone
			m.enter(StatePaused)
		} else if m.pending == RequestResume {
			m.pending = RequestNone
		}
	case StatePaused:
		if m.pending == RequestResume || m.pending == RequestToggle {
			m.pending = RequestNone
			m.enter(StatePlaying)
		} else if m.pending == RequestPause {
			m.pending = RequestNone
		}
	}
}

// Goal records a goal scored while PLAYING: SERVE when the match goes on,
// GAMEOVER when won. It is a no-op in any other state.
func (m *Machine) Goal(won bool) bool {
	if m.state != StatePlaying {
		return false
	}
	if won {
		m.pending = RequestNone
		return m.enter(StateGameOver)
	}
	return m.enter(StateServe)
}

// CountdownLabel returns "3", "2", "1" or "GO" while a countdown runs and
// "" otherwise, including the quiet delay at the start of SERVE.
func (m *Machine) CountdownLabel() string {
	if m.state != StateCountdown && m.state != StateServe {
		return ""
	}
	if m.timer > countdownSteps*m.stepTicks || m.timer <= 0 {
		return ""
	}
	step := (m.timer - 1) / m.stepTicks
	return countdownLabels[step]
}
