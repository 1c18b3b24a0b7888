package pong

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// Visual characters for rendering
const (
	PaddleChar    = '█'
	BallChar      = '●'
	NetChar       = '┆'
	GoalCharV     = '┊'
	GoalCharH     = '┄'
	hudRows       = 1
	hintRows      = 1
	minFieldCells = 3
)

// Render draws the last snapshot.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.driver == nil {
		msg := "cannot start match"
		if g.err != nil {
			msg = g.err.Error()
		}
		drawCenteredMessage(dst, "MATCH REJECTED", msg, core.ColorBrightRed)
		return
	}
	RenderSnapshot(dst, g.snap)
}

// RenderSnapshot draws a snapshot scaled to the screen.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	field := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows-hintRows)
	if field.W < minFieldCells+2 || field.H < minFieldCells+2 {
		dst.DrawTextCentered(dst.Height()/2, "terminal too small", core.ColorBrightRed)
		return
	}
	v := viewport{arena: snap.Arena, inner: field.Inset(1)}

	drawField(dst, field, v, snap)
	for _, p := range snap.Paddles {
		drawPaddle(dst, v, p)
	}
	if !(snap.State == StateServe && snap.Countdown == "" && (snap.Tick/10)%2 == 1) {
		x, y := v.cell(snap.Ball.Pos)
		dst.SetColored(x, y, BallChar, ballColor(snap))
	}

	drawHUD(dst, snap)
	drawHints(dst, snap)

	switch snap.State {
	case StateCountdown, StateServe:
		if snap.Countdown != "" {
			drawCenteredMessage(dst, snap.Countdown, fmt.Sprintf("first to %d", snap.WinTarget), core.ColorBrightYellow)
		}
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "P to resume", core.ColorBrightWhite)
	case StateGameOver:
		keys := "R restart  B menu"
		if snap.Final {
			keys = "B continue"
		}
		drawCenteredMessage(dst, strings.ToUpper(snap.WinnerName())+" WINS!",
			scoreLine(snap)+"  |  "+keys, core.SeatColor(snap.Winner))
	}
}

// viewport maps arena coordinates onto the cells inside the field border.
type viewport struct {
	arena Arena
	inner core.Rect
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := v.inner.X + int(p.X/v.arena.Width*float64(v.inner.W))
	y := v.inner.Y + int(p.Y/v.arena.Height*float64(v.inner.H))
	return core.Clamp(x, v.inner.X, v.inner.Right()-1), core.Clamp(y, v.inner.Y, v.inner.Bottom()-1)
}

func drawField(dst *core.Screen, field core.Rect, v viewport, snap Snapshot) {
	dst.DrawBox(field, core.ColorGray)

	owners := map[Side]core.PlayerID{}
	for _, p := range snap.Paddles {
		owners[p.Side] = p.Owner
	}
	for _, side := range Sides {
		if snap.Arena.Edge(side) != EdgeGoal {
			continue
		}
		c := core.SeatColor(owners[side])
		switch side {
		case SideLeft:
			dst.DrawVLine(field.X, field.Y+1, field.H-2, GoalCharV, c)
		case SideRight:
			dst.DrawVLine(field.Right()-1, field.Y+1, field.H-2, GoalCharV, c)
		case SideTop:
			dst.DrawHLine(field.X+1, field.Y, field.W-2, GoalCharH, c)
		case SideBottom:
			dst.DrawHLine(field.X+1, field.Bottom()-1, field.W-2, GoalCharH, c)
		}
	}

	if len(snap.Paddles) == 2 {
		x, _ := v.cell(snap.Arena.Center())
		for y := v.inner.Y; y < v.inner.Bottom(); y += 2 {
			dst.SetColored(x, y, NetChar, core.ColorGray)
		}
	}
}

func drawPaddle(dst *core.Screen, v viewport, p Paddle) {
	c := core.SeatColor(p.Owner)
	box := p.Box()
	x0, y0 := v.cell(box.Min())
	x1, y1 := v.cell(box.Max())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, PaddleChar, c)
		}
	}
}

func ballColor(snap Snapshot) core.Color {
	if snap.LastHit.Valid() {
		return core.SeatColor(snap.LastHit)
	}
	return core.ColorBrightWhite
}

// drawHUD spreads the seats' names and scores across the top row.
func drawHUD(dst *core.Screen, snap Snapshot) {
	n := len(snap.Seats)
	if n == 0 {
		return
	}
	slot := dst.Width() / n
	for i, seat := range snap.Seats {
		text := fmt.Sprintf("%s %d", seat.Name, snap.Scores[i])
		x := i*slot + (slot-utf8.RuneCountInString(text))/2
		dst.DrawText(core.Max(x, i*slot), 0, text, core.SeatColor(core.PlayerID(i+1)))
	}
}

func drawHints(dst *core.Screen, snap Snapshot) {
	var hint string
	switch snap.Mode {
	case multiplayer.ModeAI:
		hint = "W/S or ↑/↓ move"
	case multiplayer.ModeVersus:
		hint = "P1 W/S  P2 ↑/↓"
	case multiplayer.ModeFourPlayer:
		hint = "P1 W/S  P2 ↑/↓  P3 C/V  P4 ←/→"
	}
	hint += "  P pause  Q quit"
	dst.DrawTextCentered(dst.Height()-1, hint, core.ColorGray)
}

func scoreLine(snap Snapshot) string {
	parts := make([]string, len(snap.Scores))
	for i, s := range snap.Scores {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, " - ")
}

// drawCenteredMessage draws a boxed two-line message in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	tw, sw := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	boxW := core.Min(core.Max(tw, sw)+4, dst.Width())
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawText(box.X+(boxW-tw)/2, box.Y+1, title, c)
	dst.DrawText(box.X+(boxW-sw)/2, box.Y+3, subtitle, core.ColorWhite)
}
