package joystick

import (
	"math"
	"testing"
)

func TestReturnTweenEasesToCenter(t *testing.T) {
	j := New("ret", Config{ReturnDuration: 1.0})
	j.SetBounds(Rect{Width: 200, Height: 200})

	j.HandleTouch(down(250, 100))
	j.HandleTouch(up(250, 100))

	// Logical state snaps immediately; only the drawn thumb animates.
	if j.ThumbPosition() != j.Center() {
		t.Errorf("ThumbPosition = %v, want center", j.ThumbPosition())
	}
	if !j.Returning() {
		t.Fatal("expected return animation to start")
	}
	if got := j.DisplayThumb(); !vecNear(got, Vec2{175, 100}) {
		t.Errorf("DisplayThumb at release = %v, want (175, 100)", got)
	}

	j.Update(0.5)
	mid := j.DisplayThumb()
	if mid.X <= 100 || mid.X >= 175 {
		t.Errorf("DisplayThumb mid-return = %v, want between center and release", mid)
	}
	if !j.NeedsRedraw() {
		t.Error("animation frame should request a redraw")
	}

	// Exact halves avoid float32 accumulation drift.
	j.Update(0.5)
	if j.Returning() {
		t.Error("expected animation to finish after full duration")
	}
	if got := j.DisplayThumb(); got != j.Center() {
		t.Errorf("DisplayThumb after return = %v, want center", got)
	}
}

func TestReturnSnapsWithoutDuration(t *testing.T) {
	j := newTestStick()
	j.HandleTouch(down(150, 150))
	j.HandleTouch(up(150, 150))

	if j.Returning() {
		t.Error("zero duration should not animate")
	}
	if j.DisplayThumb() != j.Center() {
		t.Errorf("DisplayThumb = %v, want center", j.DisplayThumb())
	}
}

func TestReturnSkippedWhenCentered(t *testing.T) {
	j := New("ret", Config{ReturnDuration: 0.5})
	j.SetBounds(Rect{Width: 200, Height: 200})
	j.HandleTouch(down(100, 100))
	j.HandleTouch(up(100, 100))

	if j.Returning() {
		t.Error("release at center should not animate")
	}
}

func TestTouchCancelsReturn(t *testing.T) {
	j := New("ret", Config{ReturnDuration: 1.0})
	j.SetBounds(Rect{Width: 200, Height: 200})
	j.HandleTouch(down(100, 25))
	j.HandleTouch(up(100, 25))
	j.Update(0.25)

	j.HandleTouch(down(40, 100))
	if j.Returning() {
		t.Error("new touch should cancel the return animation")
	}
	if got := j.DisplayThumb(); got != j.ThumbPosition() {
		t.Errorf("DisplayThumb = %v, want touch position %v", got, j.ThumbPosition())
	}
}

func TestSetReturnDuration(t *testing.T) {
	j := newTestStick()
	j.SetReturnDuration(0.2)
	j.HandleTouch(down(100, 0))
	j.HandleTouch(up(100, 0))
	if !j.Returning() {
		t.Fatal("expected return animation")
	}
	for i := 0; i < 4; i++ {
		j.Update(0.05)
	}
	if d := j.DisplayThumb().Sub(j.Center()).Len(); math.Abs(d) > 0.5 {
		t.Errorf("thumb %v from center after return, want ~0", d)
	}
}
