package joystick

import "sync"

// --- Handler registry ---

type moveHandler struct {
	id uint32
	fn func(MoveEvent)
}

type handlerRegistry struct {
	mu     sync.Mutex
	move   []moveHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
// Safe to call more than once and from inside a handler.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.mu.Lock()
	defer h.reg.mu.Unlock()
	h.reg.move = removeMoveHandler(h.reg.move, h.id)
}

func removeMoveHandler(s []moveHandler, id uint32) []moveHandler {
	for i := range s {
		if s[i].id == id {
			// Copy-on-write: emit may be iterating the old backing array.
			out := make([]moveHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func (r *handlerRegistry) add(fn func(MoveEvent)) CallbackHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.move = append(r.move, moveHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r}
}

func (r *handlerRegistry) snapshot() []moveHandler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.move[:len(r.move):len(r.move)]
}

// --- Consumers ---

// Command is an action executed on every direction change when CanExecute
// reports true. It runs after the OnMove handlers.
type Command interface {
	CanExecute(e MoveEvent) bool
	Execute(e MoveEvent)
}

// CommandFunc adapts a plain function to a Command that can always execute.
type CommandFunc func(MoveEvent)

// CanExecute always reports true.
func (f CommandFunc) CanExecute(MoveEvent) bool { return true }

// Execute calls f(e).
func (f CommandFunc) Execute(e MoveEvent) { f(e) }

// EventSink is the interface for optional ECS integration.
// When set on a Joystick, every MoveEvent is forwarded to the sink.
type EventSink interface {
	EmitMove(event MoveEvent)
}

// --- Dispatch ---

// Dispatcher decides where hold-repeater emissions run. Post must not block.
type Dispatcher interface {
	Post(fn func())
}

// directDispatcher runs fn on the calling goroutine.
type directDispatcher struct{}

func (directDispatcher) Post(fn func()) { fn() }

const defaultQueueCap = 64

// Queue is a Dispatcher that buffers posted functions until Drain is called,
// typically once per frame from the UI goroutine. Posts made while the
// buffer is full are dropped; the next repeater tick re-posts current state.
type Queue struct {
	ch chan func()
}

// NewQueue creates a Queue holding up to capacity pending functions.
// A non-positive capacity selects the default.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = defaultQueueCap
	}
	return &Queue{ch: make(chan func(), capacity)}
}

// Post enqueues fn without blocking, dropping it when the queue is full.
func (q *Queue) Post(fn func()) {
	q.TryPost(fn)
}

// TryPost enqueues fn without blocking and reports whether it was accepted.
func (q *Queue) TryPost(fn func()) bool {
	select {
	case q.ch <- fn:
		return true
	default:
		return false
	}
}

// Drain runs every function queued at the time of the call and returns how
// many ran. Functions posted during Drain wait for the next call.
func (q *Queue) Drain() int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		fn := <-q.ch
		fn()
	}
	return n
}

// Len returns the number of pending functions.
func (q *Queue) Len() int { return len(q.ch) }
