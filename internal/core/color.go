package core

// Color is a foreground colour for a screen cell. The platform maps it to
// an ANSI 256-colour code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var seatColors = [...]Color{
	Player1: ColorBrightCyan,
	Player2: ColorBrightMagenta,
	Player3: ColorBrightGreen,
	Player4: ColorOrange,
}

// SeatColor returns the colour used for a seat's paddle and score.
func SeatColor(p PlayerID) Color {
	if !p.Valid() {
		return ColorWhite
	}
	return seatColors[p]
}
