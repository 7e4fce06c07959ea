package joystick

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// pointerSource reads raw pointer state once per frame.
type pointerSource interface {
	cursor() (x, y float64, pressed bool)
	appendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	touchPosition(id ebiten.TouchID) (x, y float64)
}

// ebitenSource reads pointers from the running ebiten game.
type ebitenSource struct{}

func (ebitenSource) cursor() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenSource) appendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenSource) touchPosition(id ebiten.TouchID) (float64, float64) {
	x, y := ebiten.TouchPosition(id)
	return float64(x), float64(y)
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	captive *Joystick // joystick that captured this pointer on press
}

// Input routes mouse and touch pointers to joysticks. A press inside a
// joystick's bounds captures that pointer for the joystick until release;
// a captured joystick ignores every other pointer.
type Input struct {
	src      pointerSource
	sticks   []*Joystick
	pointers [maxPointers]pointerState

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
	injectHeld  bool // an injected press is down; the real mouse is ignored
}

// NewInput creates an Input reading from ebiten's mouse and touch state.
func NewInput() *Input {
	return &Input{src: ebitenSource{}}
}

// Add registers a joystick for hit testing. Later joysticks are on top.
func (in *Input) Add(j *Joystick) {
	for _, s := range in.sticks {
		if s == j {
			return
		}
	}
	in.sticks = append(in.sticks, j)
}

// Remove unregisters a joystick. A pointer it captured is released and the
// joystick receives TouchUp.
func (in *Input) Remove(j *Joystick) {
	for i := range in.pointers {
		ps := &in.pointers[i]
		if ps.captive == j {
			j.HandleTouch(TouchEvent{Phase: TouchUp, Pos: in.local(j, ps.lastX, ps.lastY)})
			ps.captive = nil
		}
	}
	for i, s := range in.sticks {
		if s == j {
			in.sticks = append(in.sticks[:i], in.sticks[i+1:]...)
			return
		}
	}
}

// Captured reports whether some pointer is currently held on j.
func (in *Input) Captured(j *Joystick) bool {
	return in.capturedBy(j) >= 0
}

func (in *Input) capturedBy(j *Joystick) int {
	for i := range in.pointers {
		if in.pointers[i].captive == j {
			return i
		}
	}
	return -1
}

// Update reads pointers and delivers touch events. Call once per frame from
// the game's Update. Injected events replace the mouse from an injected
// press until its release.
func (in *Input) Update() {
	if !in.processInjectedInput() && !in.injectHeld {
		x, y, pressed := in.src.cursor()
		in.processPointer(0, x, y, pressed)
	}
	in.processTouchPointers()
}

// processTouchPointers handles touch input (pointers 1-9).
func (in *Input) processTouchPointers() {
	touchIDs := in.src.appendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := in.src.touchPosition(tid)
		in.processPointer(slot, tx, ty, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				in.processPointer(i, ps.lastX, ps.lastY, false)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// hitTest finds the topmost free joystick whose bounds contain (x, y).
func (in *Input) hitTest(x, y float64) *Joystick {
	for i := len(in.sticks) - 1; i >= 0; i-- {
		j := in.sticks[i]
		if in.Captured(j) {
			continue
		}
		if j.HitTest(x, y) {
			return j
		}
	}
	return nil
}

func (in *Input) local(j *Joystick, x, y float64) Vec2 {
	b := j.Bounds()
	return Vec2{x - b.X, y - b.Y}
}

// processPointer runs the press/move/release state machine for one pointer.
func (in *Input) processPointer(id int, x, y float64, pressed bool) {
	ps := &in.pointers[id]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		ps.captive = in.hitTest(x, y)
		if ps.captive != nil {
			ps.captive.HandleTouch(TouchEvent{Phase: TouchDown, Pos: in.local(ps.captive, x, y)})
		}
	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		ps.lastX, ps.lastY = x, y
		if ps.captive != nil {
			ps.captive.HandleTouch(TouchEvent{Phase: TouchMove, Pos: in.local(ps.captive, x, y)})
		}
	case !pressed && ps.down:
		ps.down = false
		ps.lastX, ps.lastY = x, y
		if j := ps.captive; j != nil {
			ps.captive = nil
			j.HandleTouch(TouchEvent{Phase: TouchUp, Pos: in.local(j, x, y)})
		}
	default:
		ps.lastX, ps.lastY = x, y
	}
}
