package domain

// Color is one of the fixed pastel palette values.
type Color string

const (
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
)

// DefaultColor is used when the caller supplies no color or an unknown one.
const DefaultColor = ColorPink

var palette = map[Color]struct{}{
	ColorPink:   {},
	ColorPurple: {},
	ColorBlue:   {},
	ColorGreen:  {},
	ColorYellow: {},
}

// ValidColor reports whether c is in the palette.
func ValidColor(c Color) bool {
	_, ok := palette[c]
	return ok
}

// NormalizeColor returns c if it is in the palette, DefaultColor otherwise.
func NormalizeColor(c Color) Color {
	if ValidColor(c) {
		return c
	}
	return DefaultColor
}
