package joystick

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// holdState is the snapshot shared with the hold repeater.
type holdState struct {
	active bool
	dir    Vec2
}

var releasedState = &holdState{}

// Joystick is an on-screen thumbstick. It maps touches inside its base disc
// to a direction vector and notifies listeners on every change, and
// periodically while held once its repeater is running.
//
// Layout, input, theme and draw methods belong to the UI goroutine.
// Direction, Active, LastEvent and the repeater lifecycle methods are safe
// to call from any goroutine.
type Joystick struct {
	Name string

	bounds        Rect
	theme         Theme
	padding       Padding
	thumbOverride float64

	geometryValid bool
	center        Vec2
	radius        float64
	thumbRadius   float64

	thumb     Vec2
	dir       Vec2
	active    bool
	lastTouch Vec2
	dirty     bool

	returnDuration float32
	ret            *returnTween
	display        Vec2

	state atomic.Pointer[holdState]
	debug atomic.Bool

	handlers handlerRegistry
	emitMu   sync.Mutex // serializes notifications; never held by getters or setters
	last     atomic.Pointer[MoveEvent]

	consumerMu sync.Mutex // guards command and sink
	command    Command
	sink       EventSink

	interval   time.Duration
	dispatcher Dispatcher
	rep        repeaterState
}

// New creates a Joystick with the given configuration. Zero values in cfg
// select defaults; a zero Theme selects DefaultTheme.
func New(name string, cfg Config) *Joystick {
	j := &Joystick{
		Name:           name,
		theme:          cfg.Theme,
		padding:        cfg.Padding,
		thumbOverride:  cfg.ThumbRadius,
		returnDuration: cfg.ReturnDuration,
		interval:       cfg.RepeatInterval,
		dispatcher:     cfg.Dispatcher,
		dirty:          true,
	}
	if j.theme == (Theme{}) {
		j.theme = DefaultTheme()
	}
	if j.interval <= 0 {
		j.interval = defaultRepeatInterval
	}
	if j.dispatcher == nil {
		j.dispatcher = directDispatcher{}
	}
	j.state.Store(releasedState)
	j.last.Store(&MoveEvent{})
	return j
}

// --- Layout ---

// SetBounds places the joystick on screen. A change of size invalidates the
// center and radius, which are recomputed from the new size.
func (j *Joystick) SetBounds(r Rect) {
	sizeChanged := r.Width != j.bounds.Width || r.Height != j.bounds.Height
	j.bounds = r
	j.dirty = true
	if sizeChanged {
		j.geometryValid = false
		j.debugf("%s: size %.0fx%.0f", j.Name, r.Width, r.Height)
	}
}

// Bounds returns the joystick's screen rectangle.
func (j *Joystick) Bounds() Rect {
	return j.bounds
}

// ensureGeometry recomputes center, radius and thumb radius when they are
// stale. A held thumb is re-mapped from its last touch so it stays inside
// the new travel disc.
func (j *Joystick) ensureGeometry() {
	if j.geometryValid {
		return
	}
	j.geometryValid = true

	w, h := j.bounds.Width, j.bounds.Height
	j.center = Vec2{w / 2, h / 2}
	j.radius = math.Max(0, math.Min(w-j.padding.Horizontal(), h-j.padding.Vertical())/2)
	j.thumbRadius = j.thumbOverride
	if j.thumbRadius <= 0 || math.IsNaN(j.thumbRadius) {
		j.thumbRadius = j.radius / thumbRadiusDivisor
	}

	j.ret = nil
	if j.active {
		j.thumb, j.dir = MapTouch(j.center, j.radius, j.thumbRadius, j.lastTouch)
		j.state.Store(&holdState{active: true, dir: j.dir})
	} else {
		j.thumb = j.center
	}
	j.display = j.thumb
}

// Center returns the base disc center in local coordinates.
func (j *Joystick) Center() Vec2 {
	j.ensureGeometry()
	return j.center
}

// Radius returns the base disc radius.
func (j *Joystick) Radius() float64 {
	j.ensureGeometry()
	return j.radius
}

// ThumbRadius returns the effective thumb radius.
func (j *Joystick) ThumbRadius() float64 {
	j.ensureGeometry()
	return j.thumbRadius
}

// Travel returns how far the thumb center may move from the base center.
// It is never negative.
func (j *Joystick) Travel() float64 {
	j.ensureGeometry()
	return math.Max(0, j.radius-j.thumbRadius)
}

// ThumbPosition returns the logical thumb center in local coordinates.
func (j *Joystick) ThumbPosition() Vec2 {
	j.ensureGeometry()
	return j.thumb
}

// HitTest reports whether the screen point (x, y) lies within the
// joystick's bounds. A press anywhere in the bounds captures the pointer and
// is clamped onto the travel disc.
func (j *Joystick) HitTest(x, y float64) bool {
	if j.bounds.Width <= 0 || j.bounds.Height <= 0 {
		return false
	}
	return j.bounds.Contains(x, y)
}

// --- Configuration ---

// Theme returns the current theme.
func (j *Joystick) Theme() Theme {
	return j.theme
}

// SetTheme replaces the theme and schedules a redraw.
func (j *Joystick) SetTheme(t Theme) {
	j.theme = t
	j.dirty = true
}

// SetPadding changes the inset around the base disc.
func (j *Joystick) SetPadding(p Padding) {
	j.padding = p
	j.geometryValid = false
	j.dirty = true
}

// SetThumbRadius overrides the thumb radius. Zero, negative or NaN restores
// the derived radius.
func (j *Joystick) SetThumbRadius(r float64) {
	j.thumbOverride = r
	j.geometryValid = false
	j.dirty = true
}

// SetReturnDuration sets how long the drawn thumb eases back to center after
// release, in seconds.
func (j *Joystick) SetReturnDuration(seconds float32) {
	j.returnDuration = seconds
}

// SetDispatcher changes where hold repeater emissions run. Nil restores
// direct delivery. Takes effect for repeaters started afterwards.
func (j *Joystick) SetDispatcher(d Dispatcher) {
	if d == nil {
		d = directDispatcher{}
	}
	j.rep.mu.Lock()
	j.dispatcher = d
	j.rep.mu.Unlock()
}

// SetDebugMode enables per-event diagnostics on stderr.
func (j *Joystick) SetDebugMode(enabled bool) {
	j.debug.Store(enabled)
}

// NeedsRedraw reports whether state, theme or layout changed since the last Draw.
func (j *Joystick) NeedsRedraw() bool {
	return j.dirty || j.ret != nil
}

// --- Input ---

// HandleTouch applies a touch sample and emits exactly one MoveEvent.
// Pos is in local coordinates. Handlers must not call HandleTouch.
func (j *Joystick) HandleTouch(e TouchEvent) {
	j.ensureGeometry()

	switch e.Phase {
	case TouchDown, TouchMove:
		j.active = true
		j.lastTouch = e.Pos
		j.thumb, j.dir = MapTouch(j.center, j.radius, j.thumbRadius, e.Pos)
		j.ret = nil
		j.display = j.thumb
	case TouchUp:
		j.active = false
		j.thumb = j.center
		j.dir = Vec2{}
		j.startReturn()
	default:
		return
	}
	j.dirty = true

	j.emitMu.Lock()
	defer j.emitMu.Unlock()
	if j.active {
		j.state.Store(&holdState{active: true, dir: j.dir})
	} else {
		j.state.Store(releasedState)
	}
	j.debugf("%s: touch %s (%.1f, %.1f) -> dir (%.3f, %.3f)",
		j.Name, e.Phase, e.Pos.X, e.Pos.Y, j.dir.X, j.dir.Y)
	j.emitLocked(MoveEvent{X: j.dir.X, Y: j.dir.Y})
}

// Direction returns the current direction vector. Safe for concurrent use.
func (j *Joystick) Direction() Vec2 {
	return j.state.Load().dir
}

// Active reports whether a touch is currently held. Safe for concurrent use.
func (j *Joystick) Active() bool {
	return j.state.Load().active
}

// --- Notifications ---

// OnMove registers a callback for direction changes and hold repeats.
func (j *Joystick) OnMove(fn func(MoveEvent)) CallbackHandle {
	return j.handlers.add(fn)
}

// SetCommand sets the command executed after OnMove handlers. Nil clears it.
// Safe to call from a handler or from the command itself; the change applies
// from the next event.
func (j *Joystick) SetCommand(c Command) {
	j.consumerMu.Lock()
	defer j.consumerMu.Unlock()
	j.command = c
}

// SetEventSink sets the optional ECS bridge. Nil clears it.
func (j *Joystick) SetEventSink(s EventSink) {
	j.consumerMu.Lock()
	defer j.consumerMu.Unlock()
	j.sink = s
}

// LastEvent returns the most recently emitted event. Inside a handler or
// command it is the event being delivered.
func (j *Joystick) LastEvent() MoveEvent {
	return *j.last.Load()
}

// emitLocked delivers e to handlers, the command and the sink, in that
// order. The caller holds emitMu.
func (j *Joystick) emitLocked(e MoveEvent) {
	j.last.Store(&e)

	j.consumerMu.Lock()
	cmd, sink := j.command, j.sink
	j.consumerMu.Unlock()

	for _, h := range j.handlers.snapshot() {
		h.fn(e)
	}
	if cmd != nil && cmd.CanExecute(e) {
		cmd.Execute(e)
	}
	if sink != nil {
		sink.EmitMove(e)
	}
}

// reemit repeats the current direction if a touch is still held. The
// snapshot is read under emitMu so a repeat never follows the release
// notification.
func (j *Joystick) reemit() {
	j.emitMu.Lock()
	defer j.emitMu.Unlock()
	st := j.state.Load()
	if !st.active {
		return
	}
	j.emitLocked(MoveEvent{X: st.dir.X, Y: st.dir.Y, Repeat: true})
}
