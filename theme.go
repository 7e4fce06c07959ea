package joystick

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
)

const (
	defaultRepeatInterval = 16 * time.Millisecond
	defaultBorderWidth    = 1.0
	thumbRadiusDivisor    = 4 // derived thumb radius is radius/4
)

// Theme holds the colors and stroke used to draw a Joystick.
type Theme struct {
	MainStart       Color   // base disc gradient color at the center
	MainEnd         Color   // base disc gradient color at the rim
	Border          Color   // base disc outline color
	BorderThickness float64 // outline width in pixels; <= 0 disables the outline
	ThumbStart      Color   // thumb gradient color at its center
	ThumbEnd        Color   // thumb gradient color at its rim
}

// DefaultTheme returns a translucent white-smoke theme with a 1px border.
func DefaultTheme() Theme {
	smoke := FromColor(colornames.Whitesmoke)
	return Theme{
		MainStart:       smoke.WithAlpha(0.5),
		MainEnd:         smoke,
		Border:          smoke,
		BorderThickness: defaultBorderWidth,
		ThumbStart:      smoke.WithAlpha(0.5),
		ThumbEnd:        smoke,
	}
}

// Config configures a Joystick. Zero values select defaults.
type Config struct {
	Theme   Theme
	Padding Padding

	// ThumbRadius overrides the thumb radius in pixels. Zero, negative or NaN
	// derives it as a quarter of the base radius.
	ThumbRadius float64

	// RepeatInterval is the hold repeater cadence. Defaults to 16ms.
	RepeatInterval time.Duration

	// ReturnDuration is how long, in seconds, the drawn thumb takes to ease
	// back to the center after release. Zero snaps immediately.
	ReturnDuration float32

	// Dispatcher receives hold repeater emissions. Defaults to direct
	// delivery on the repeater goroutine.
	Dispatcher Dispatcher
}

// FromColor converts a standard library color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or an SVG color name
// such as "whitesmoke". Names are matched case-insensitively.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return Color{}, fmt.Errorf("parse color %q: unknown name: %w", s, ErrInvalidColor)
		}
		return FromColor(c), nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: bad length: %w", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	return FromColor(color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), nil
}
