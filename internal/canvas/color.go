package canvas

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
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

// heatRamp runs from cold to hot.
var heatRamp = []Color{
	ColorBlue,
	ColorCyan,
	ColorGreen,
	ColorYellow,
	ColorOrange,
	ColorBrightRed,
}

// Heat maps v in [1, max] onto the heat ramp. Non-positive values are gray.
func Heat(v, max int) Color {
	if v <= 0 || max <= 0 {
		return ColorGray
	}
	if v >= max {
		return heatRamp[len(heatRamp)-1]
	}
	idx := (v - 1) * len(heatRamp) / max
	return heatRamp[Clamp(idx, 0, len(heatRamp)-1)]
}
