package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// DefaultHoldTicks is how long a key press keeps a paddle moving.
// Terminals report presses and auto-repeat, never releases, so a direction
// stays held until the repeat stops arriving.
const DefaultHoldTicks = 8

// seatBinding is a key that drives one seat in one direction.
type seatBinding struct {
	seat   core.PlayerID
	action core.Action
}

// seatKeys covers the four local seats: P1 left (w/s), P2 right
// (arrows), P3 top (c/v), P4 bottom (left/right arrows).
var seatKeys = map[string]seatBinding{
	"w":     {core.Player1, core.ActionUp},
	"s":     {core.Player1, core.ActionDown},
	"up":    {core.Player2, core.ActionUp},
	"down":  {core.Player2, core.ActionDown},
	"c":     {core.Player3, core.ActionLeft},
	"v":     {core.Player3, core.ActionRight},
	"left":  {core.Player4, core.ActionLeft},
	"right": {core.Player4, core.ActionRight},
}

type heldKey struct {
	action core.Action
	ticks  int
}

// KeyMapper translates Bubble Tea key messages to per-seat input frames.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	players   int
	holdTicks int
	held      map[core.PlayerID]heldKey
	system    core.InputFrame
}

// NewKeyMapper creates a key mapper for a number of local keyboards.
// With a single player both key sets drive P1.
func NewKeyMapper(players, holdTicks int) *KeyMapper {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &KeyMapper{
		players:   players,
		holdTicks: holdTicks,
		held:      make(map[core.PlayerID]heldKey),
		system:    core.NewInputFrame(),
	}
}

// MapKey classifies a key. Seat is NoPlayer for system actions.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (seat core.PlayerID, action core.Action) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.NoPlayer, core.ActionQuit
	case "p", " ":
		return core.NoPlayer, core.ActionPause
	case "r":
		return core.NoPlayer, core.ActionRestart
	case "b", "esc":
		return core.NoPlayer, core.ActionBack
	case "enter":
		return core.NoPlayer, core.ActionConfirm
	}

	b, ok := seatKeys[key]
	if !ok {
		return core.NoPlayer, core.ActionNone
	}
	switch {
	case km.players <= 1:
		if b.seat != core.Player1 && b.seat != core.Player2 {
			return core.NoPlayer, core.ActionNone
		}
		b.seat = core.Player1
	case int(b.seat) > km.players:
		return core.NoPlayer, core.ActionNone
	}
	return b.seat, b.action
}

// Press records a key. Directions are held for holdTicks frames; pause and
// restart are latched until the next Frame. Returns the action for keys the
// caller handles itself (quit, back, confirm).
func (km *KeyMapper) Press(msg tea.KeyMsg) core.Action {
	seat, action := km.MapKey(msg)
	switch action {
	case core.ActionNone:
		return core.ActionNone
	case core.ActionPause, core.ActionRestart:
		km.system.Set(action)
		return core.ActionNone
	case core.ActionQuit, core.ActionBack, core.ActionConfirm:
		return action
	}
	km.held[seat] = heldKey{action: action, ticks: km.holdTicks}
	return core.ActionNone
}

// Frame returns the input for the next tick and ages the held keys.
func (km *KeyMapper) Frame() core.MultiInputFrame {
	frame := core.NewMultiInputFrame()
	for seat, h := range km.held {
		frame.Press(seat, h.action)
		h.ticks--
		if h.ticks <= 0 {
			delete(km.held, seat)
		} else {
			km.held[seat] = h
		}
	}
	frame.System = km.system
	km.system = core.NewInputFrame()
	return frame
}

// Release drops every held direction, e.g. when the terminal loses focus.
func (km *KeyMapper) Release() {
	clear(km.held)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
