package core

import "fmt"

// PlayerID identifies a seat in a match. Zero means "nobody".
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
	Player3
	Player4
)

// MaxPlayers is the largest seat count any arena uses.
const MaxPlayers = 4

func (p PlayerID) String() string {
	if p == NoPlayer {
		return "none"
	}
	return fmt.Sprintf("P%d", int(p))
}

// Valid reports whether p is one of the four seats.
func (p PlayerID) Valid() bool {
	return p >= Player1 && p <= Player4
}

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // negative direction on a vertical paddle
	ActionDown           // positive direction on a vertical paddle
	ActionLeft           // negative direction on a horizontal paddle
	ActionRight          // positive direction on a horizontal paddle
	ActionConfirm        // Enter
	ActionBack           // B - back to menu
	ActionRestart        // R - new match after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Space - toggle pause
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active for one seat during a tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as active.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether an action is active.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Axis folds the directional actions into -1, 0 or +1.
// Opposing directions cancel out.
func (f InputFrame) Axis() int {
	axis := 0
	if f.Has(ActionUp) || f.Has(ActionLeft) {
		axis--
	}
	if f.Has(ActionDown) || f.Has(ActionRight) {
		axis++
	}
	return axis
}

// Clone returns a copy that shares no state with f.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// MultiInputFrame carries the input of every local seat for one tick.
// System actions (pause, restart) are stored on the frame itself rather
// than a seat.
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
	System   InputFrame
}

// NewMultiInputFrame creates an empty multi-seat frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
		System:   NewInputFrame(),
	}
}

// Player returns the frame for one seat, empty if the seat sent nothing.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// Press marks an action as active for a seat.
func (m *MultiInputFrame) Press(id PlayerID, a Action) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	frame := m.ByPlayer[id]
	frame.Set(a)
	m.ByPlayer[id] = frame
}

// Clone creates a deep copy.
func (m MultiInputFrame) Clone() MultiInputFrame {
	clone := NewMultiInputFrame()
	for id, frame := range m.ByPlayer {
		clone.ByPlayer[id] = frame.Clone()
	}
	clone.System = m.System.Clone()
	return clone
}
