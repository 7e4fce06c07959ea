package joystick

import (
	"encoding/json"
	"fmt"
)

// Script actions.
const (
	actionPress   = "press"
	actionMove    = "move"
	actionRelease = "release"
	actionDrag    = "drag"
	actionHold    = "hold"
	actionWait    = "wait"
)

// scriptStep is one scripted action. Coordinates are screen space unless
// Stick names an attached joystick, in which case they are offsets from
// that joystick's base center.
type scriptStep struct {
	Action string  `json:"action"`
	Stick  string  `json:"stick,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// TestRunner replays a scripted pointer sequence, one step per frame, through
// a Host's Input. Attach it with Host.SetTestRunner.
type TestRunner struct {
	steps []scriptStep
	next  int
	idle  int // frames left before the next step
	done  bool
}

// LoadTestScript parses a JSON script:
//
//	{"steps": [
//	  {"action": "press", "stick": "move"},
//	  {"action": "move", "stick": "move", "x": 60, "y": 0},
//	  {"action": "wait", "frames": 30},
//	  {"action": "release", "stick": "move", "x": 60, "y": 0}
//	]}
//
// "hold" presses and keeps the pointer down for frames frames; "drag"
// interpolates from (fromX, fromY) to (toX, toY) over frames frames and
// releases.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("load test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("load test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case actionPress, actionMove, actionRelease, actionDrag, actionHold, actionWait:
		default:
			return nil, fmt.Errorf("load test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has been replayed and its injected
// events consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the script by one frame. Host.Update calls it before
// reading input. Injected events are drained before the next step runs.
func (r *TestRunner) step(in *Input) {
	if r.done || in.Pending() > 0 {
		return
	}
	if r.idle > 0 {
		r.idle--
		return
	}
	if r.next == len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	origin := r.origin(in, st.Stick)

	switch st.Action {
	case actionPress:
		in.InjectPress(origin.X+st.X, origin.Y+st.Y)
	case actionMove:
		in.InjectMove(origin.X+st.X, origin.Y+st.Y)
	case actionRelease:
		in.InjectRelease(origin.X+st.X, origin.Y+st.Y)
	case actionDrag:
		in.InjectDrag(origin.X+st.FromX, origin.Y+st.FromY, origin.X+st.ToX, origin.Y+st.ToY, st.Frames)
	case actionHold:
		in.InjectPress(origin.X+st.X, origin.Y+st.Y)
		r.idle = max(st.Frames-1, 0)
	case actionWait:
		// The current frame is the first one waited.
		r.idle = max(st.Frames-1, 0)
	}

	if r.next == len(r.steps) && r.idle == 0 && in.Pending() == 0 {
		r.done = true
	}
}

// origin returns the screen position of the named joystick's base center,
// or the screen origin when name is empty or unknown.
func (r *TestRunner) origin(in *Input, name string) Vec2 {
	if name == "" {
		return Vec2{}
	}
	for _, j := range in.sticks {
		if j.Name == name {
			b := j.Bounds()
			return Vec2{b.X, b.Y}.Add(j.Center())
		}
	}
	return Vec2{}
}
