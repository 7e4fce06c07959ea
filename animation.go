package joystick

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// returnTween eases the drawn thumb from its release point back to center.
type returnTween struct {
	x, y *gween.Tween
}

// startReturn begins easing the drawn thumb back to the center. With a zero
// return duration, or when it is already centered, the thumb snaps.
func (j *Joystick) startReturn() {
	from := j.display
	j.display = j.center
	j.ret = nil
	if j.returnDuration <= 0 || from == j.center {
		return
	}
	j.ret = &returnTween{
		x: gween.New(float32(from.X), float32(j.center.X), j.returnDuration, ease.OutQuad),
		y: gween.New(float32(from.Y), float32(j.center.Y), j.returnDuration, ease.OutQuad),
	}
	j.display = from
}

// Update advances the return animation by dt seconds. Call once per frame.
func (j *Joystick) Update(dt float32) {
	if j.ret == nil {
		return
	}
	x, doneX := j.ret.x.Update(dt)
	y, doneY := j.ret.y.Update(dt)
	j.display = Vec2{float64(x), float64(y)}
	if doneX && doneY {
		j.ret = nil
		j.display = j.center
	}
	j.dirty = true
}

// Returning reports whether the drawn thumb is still easing back to center.
func (j *Joystick) Returning() bool {
	return j.ret != nil
}

// DisplayThumb returns where the thumb is drawn. It equals ThumbPosition
// except while the release animation runs.
func (j *Joystick) DisplayThumb() Vec2 {
	j.ensureGeometry()
	return j.display
}
