package joystick

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestHost(t *testing.T) (*Host, *fakeSource) {
	t.Helper()
	h := NewHost()
	src := &fakeSource{touches: map[ebiten.TouchID]Vec2{}}
	h.input.src = src
	t.Cleanup(func() { _ = h.Close() })
	return h, src
}

func hostStick(name string, x float64) *Joystick {
	j := New(name, Config{RepeatInterval: testInterval})
	j.SetBounds(Rect{X: x, Width: 100, Height: 100})
	return j
}

func TestHostAttachStartsRepeater(t *testing.T) {
	h, _ := newTestHost(t)
	j := hostStick("a", 0)

	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !j.Running() {
		t.Error("repeater not running after Attach")
	}
	if got := h.Joysticks(); len(got) != 1 || got[0] != j {
		t.Errorf("Joysticks = %v, want [a]", got)
	}

	if err := h.Attach(j); err == nil {
		t.Error("duplicate Attach succeeded")
	}
}

func TestHostAttachRunningStick(t *testing.T) {
	h, _ := newTestHost(t)
	j := hostStick("a", 0)
	if err := j.Start(t.Context()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer j.Stop()

	if err := h.Attach(j); !errors.Is(err, ErrRepeaterRunning) {
		t.Errorf("Attach = %v, want ErrRepeaterRunning", err)
	}
	if len(h.Joysticks()) != 0 {
		t.Error("failed Attach left the stick attached")
	}

	// The running repeater keeps delivering directly, not into the host queue.
	ch := make(chan MoveEvent, 256)
	j.OnMove(func(e MoveEvent) {
		select {
		case ch <- e:
		default:
		}
	})
	j.HandleTouch(down(50, 87.5))
	expectRepeat(t, ch)
	if h.queue.Len() != 0 {
		t.Errorf("failed Attach routed %d repeats to the host queue", h.queue.Len())
	}
}

func TestHostDetachStopsRepeater(t *testing.T) {
	h, src := newTestHost(t)
	j := hostStick("a", 0)
	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	src.mouse(50, 50, true)
	if err := h.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !j.Active() {
		t.Fatal("press did not reach the attached stick")
	}

	h.Detach(j)
	if j.Running() {
		t.Error("repeater still running after Detach")
	}
	if j.Active() {
		t.Error("Detach did not release the held pointer")
	}
	if len(h.Joysticks()) != 0 {
		t.Error("stick still listed after Detach")
	}

	// Detached sticks can be attached again.
	if err := h.Attach(j); err != nil {
		t.Errorf("re-Attach: %v", err)
	}
}

func TestHostCloseStopsAll(t *testing.T) {
	h, _ := newTestHost(t)
	a, b := hostStick("a", 0), hostStick("b", 200)
	for _, j := range []*Joystick{a, b} {
		if err := h.Attach(j); err != nil {
			t.Fatalf("Attach %s: %v", j.Name, err)
		}
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if a.Running() || b.Running() {
		t.Error("repeaters still running after Close")
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := h.Attach(hostStick("c", 0)); !errors.Is(err, ErrClosed) {
		t.Errorf("Attach after Close = %v, want ErrClosed", err)
	}

	// Sticks outlive the host and deliver repeats directly again.
	ch := make(chan MoveEvent, 256)
	a.OnMove(func(e MoveEvent) {
		select {
		case ch <- e:
		default:
		}
	})
	if err := a.Start(t.Context()); err != nil {
		t.Fatalf("Start after host Close: %v", err)
	}
	defer a.Stop()
	a.HandleTouch(down(50, 87.5))
	expectRepeat(t, ch)
}

// expectRepeat waits for a repeat event on ch, skipping touch events.
func expectRepeat(t *testing.T, ch <-chan MoveEvent) {
	t.Helper()
	for {
		if e := recv(t, ch); e.Repeat {
			if !near(e.Y, 1) {
				t.Errorf("repeat = %+v, want (0, 1)", e)
			}
			return
		}
	}
}

func TestHostDetachRestoresDirectDelivery(t *testing.T) {
	h, _ := newTestHost(t)
	j := hostStick("a", 0)
	ch := make(chan MoveEvent, 256)
	j.OnMove(func(e MoveEvent) {
		select {
		case ch <- e:
		default:
		}
	})
	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	h.Detach(j)

	if err := j.Start(t.Context()); err != nil {
		t.Fatalf("Start after Detach: %v", err)
	}
	defer j.Stop()
	j.HandleTouch(down(50, 87.5))
	expectRepeat(t, ch)
	if h.queue.Len() != 0 {
		t.Errorf("detached stick posted %d repeats to the host queue", h.queue.Len())
	}
}

func TestHostAttachClosedStick(t *testing.T) {
	h, _ := newTestHost(t)
	j := hostStick("a", 0)
	_ = j.Close()
	if err := h.Attach(j); !errors.Is(err, ErrClosed) {
		t.Errorf("Attach = %v, want ErrClosed", err)
	}
}

func TestHostUpdateDeliversRepeats(t *testing.T) {
	h, src := newTestHost(t)
	j := hostStick("a", 0)
	events := collect(j)
	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	src.mouse(50, 87.5, true)
	_ = h.Update()
	if len(*events) == 0 || (*events)[0].Repeat {
		t.Fatalf("events after press = %+v, want the touch first", *events)
	}

	waitFor(t, func() bool { return h.queue.Len() > 0 })
	n := len(*events)
	_ = h.Update()

	if len(*events) <= n {
		t.Fatal("Update did not deliver queued repeats")
	}
	for _, e := range (*events)[1:] {
		if !e.Repeat || !near(e.Y, 1) {
			t.Errorf("repeat = %+v, want (0, 1) repeat", e)
		}
	}
}

func TestHostInjectedReleaseDropsQueuedRepeats(t *testing.T) {
	h, _ := newTestHost(t)
	j := hostStick("a", 0)
	events := collect(j)
	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	h.Input().InjectPress(50, 10)
	_ = h.Update()
	waitFor(t, func() bool { return h.queue.Len() > 0 })

	// Release is applied before the queue drains in the same Update.
	h.Input().InjectRelease(50, 10)
	_ = h.Update()

	last := (*events)[len(*events)-1]
	if last != (MoveEvent{}) {
		t.Errorf("last event = %+v, want release", last)
	}
	if j.Active() {
		t.Error("still active after release")
	}
}

func TestHostLayout(t *testing.T) {
	h, _ := newTestHost(t)
	var calls [][2]int
	h.OnLayout = func(w, hgt int) { calls = append(calls, [2]int{w, hgt}) }

	if w, hgt := h.Layout(640, 480); w != 640 || hgt != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, hgt)
	}
	h.Layout(640, 480)
	h.Layout(800, 600)

	if len(calls) != 2 || calls[0] != [2]int{640, 480} || calls[1] != [2]int{800, 600} {
		t.Errorf("OnLayout calls = %v, want size changes only", calls)
	}
}

func TestHostDrawClearsRedraw(t *testing.T) {
	h, _ := newTestHost(t)
	h.ClearColor = Color{0.1, 0.1, 0.1, 1}
	j := hostStick("a", 0)
	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	h.Draw(ebiten.NewImage(320, 120))
	if j.NeedsRedraw() {
		t.Error("NeedsRedraw after Host.Draw")
	}
}

func TestHostSetDebugModePropagates(t *testing.T) {
	h, _ := newTestHost(t)
	a := hostStick("a", 0)
	if err := h.Attach(a); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	h.SetDebugMode(true)
	b := hostStick("b", 200)
	if err := h.Attach(b); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if !a.debug.Load() || !b.debug.Load() {
		t.Error("debug mode not applied to every stick")
	}
	h.SetDebugMode(false)
	if a.debug.Load() || b.debug.Load() {
		t.Error("debug mode not cleared")
	}
}

func TestHostRunsTestRunner(t *testing.T) {
	h, _ := newTestHost(t)
	j := hostStick("a", 0)
	events := collect(j)
	if err := h.Attach(j); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 50, "fromY": 50, "toX": 87.5, "toY": 50, "frames": 3}
	]}`))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	h.SetTestRunner(r)

	for i := 0; i < 10 && !r.Done(); i++ {
		_ = h.Update()
	}
	if !r.Done() {
		t.Fatal("runner not done")
	}
	if j.Active() {
		t.Error("stick still held after drag")
	}

	var touches int
	for _, e := range *events {
		if !e.Repeat {
			touches++
		}
	}
	if touches != 3 {
		t.Errorf("got %d touch events, want 3 (press, move, release)", touches)
	}
}
