package joystick

import (
	"errors"
	"math"
)

var (
	// ErrRepeaterRunning is returned by Start when the hold repeater is already running.
	ErrRepeaterRunning = errors.New("joystick: repeater already running")
	// ErrClosed is returned by operations on a joystick after Close.
	ErrClosed = errors.New("joystick: closed")
	// ErrInvalidInterval is returned when the repeat interval is not positive.
	ErrInvalidInterval = errors.New("joystick: repeat interval must be positive")
	// ErrInvalidColor is returned by ParseColor for unrecognized input.
	ErrInvalidColor = errors.New("joystick: invalid color")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Vec2 is a 2D vector used for points, offsets and directions.
// The coordinate system has its origin at the top-left, Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Padding is the inset between the widget bounds and its base disc.
type Padding struct {
	Left, Top, Right, Bottom float64
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() float64 { return p.Top + p.Bottom }

// UniformPadding returns a Padding with the same inset on every side.
func UniformPadding(v float64) Padding {
	return Padding{Left: v, Top: v, Right: v, Bottom: v}
}

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// TouchPhase identifies the stage of a touch gesture.
type TouchPhase uint8

const (
	TouchDown TouchPhase = iota // finger or button pressed
	TouchMove                   // pressed pointer moved
	TouchUp                     // finger lifted or button released
)

// String returns the phase name.
func (p TouchPhase) String() string {
	switch p {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	default:
		return "unknown"
	}
}

// TouchEvent is a single pointer sample delivered to a Joystick.
// Pos is in the joystick's local coordinates (origin at its top-left).
type TouchEvent struct {
	Phase TouchPhase
	Pos   Vec2
}

// MoveEvent is the direction-changed notification. X and Y are in [-1, 1].
// Repeat is true for re-emissions from the hold repeater.
type MoveEvent struct {
	X, Y   float64
	Repeat bool
}
