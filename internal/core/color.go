package core

// Color is a foreground color for a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Palette. ColorDefault leaves the terminal foreground alone.
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
	ColorGold
	ColorSilver
)

var colorNames = map[string]Color{
	"default": ColorDefault,
	"red":     ColorBrightRed,
	"green":   ColorBrightGreen,
	"blue":    ColorBrightBlue,
	"orange":  ColorOrange,
	"gold":    ColorGold,
	"silver":  ColorSilver,
}

// ColorByName resolves a cosmetic color name such as "gold".
func ColorByName(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}
