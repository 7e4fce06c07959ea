package joystick

import (
	"context"
	"sync"
	"time"
)

type repeaterState struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// Start launches the hold repeater on its own goroutine. While a touch is
// held it re-emits the current direction every repeat interval. The
// repeater runs until ctx is cancelled, Stop or Close is called.
func (j *Joystick) Start(ctx context.Context) error {
	ctx, d, interval, err := j.beginRepeat(ctx, nil)
	if err != nil {
		return err
	}
	go j.repeat(ctx, d, interval)
	return nil
}

// Run is the blocking form of Start. It returns nil once ctx is cancelled
// or Stop is called, so it can be handed to an errgroup.
func (j *Joystick) Run(ctx context.Context) error {
	ctx, d, interval, err := j.beginRepeat(ctx, nil)
	if err != nil {
		return err
	}
	j.repeat(ctx, d, interval)
	return nil
}

// Stop cancels the repeater and waits for its goroutine to exit. It is a
// no-op when the repeater is not running. Must not be called from a handler
// running on the repeater goroutine.
func (j *Joystick) Stop() {
	j.rep.mu.Lock()
	cancel, done := j.rep.cancel, j.rep.done
	j.rep.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the repeater goroutine is active.
func (j *Joystick) Running() bool {
	j.rep.mu.Lock()
	defer j.rep.mu.Unlock()
	return j.rep.cancel != nil
}

// Close stops the repeater and disposes the joystick. Later calls to Start
// or Run return ErrClosed. Close is idempotent.
func (j *Joystick) Close() error {
	j.rep.mu.Lock()
	j.rep.closed = true
	j.rep.mu.Unlock()
	j.Stop()
	return nil
}

// SetRepeatInterval changes the hold repeater cadence. A running repeater
// picks up the new interval after a restart.
func (j *Joystick) SetRepeatInterval(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}
	j.rep.mu.Lock()
	j.interval = d
	j.rep.mu.Unlock()
	return nil
}

// RepeatInterval returns the hold repeater cadence.
func (j *Joystick) RepeatInterval() time.Duration {
	j.rep.mu.Lock()
	defer j.rep.mu.Unlock()
	return j.interval
}

// beginRepeat claims the repeater slot. A nil d selects the joystick's own
// dispatcher; a non-nil d is used for this run only.
func (j *Joystick) beginRepeat(parent context.Context, d Dispatcher) (context.Context, Dispatcher, time.Duration, error) {
	j.rep.mu.Lock()
	defer j.rep.mu.Unlock()
	if j.rep.closed {
		return nil, nil, 0, ErrClosed
	}
	if j.rep.cancel != nil {
		return nil, nil, 0, ErrRepeaterRunning
	}
	ctx, cancel := context.WithCancel(parent)
	j.rep.cancel = cancel
	j.rep.done = make(chan struct{})
	if d == nil {
		d = j.dispatcher
	}
	return ctx, d, j.interval, nil
}

func (j *Joystick) repeat(ctx context.Context, d Dispatcher, interval time.Duration) {
	j.debugf("%s: repeater started (%v)", j.Name, interval)
	defer func() {
		j.rep.mu.Lock()
		j.rep.cancel()
		close(j.rep.done)
		j.rep.cancel = nil
		j.rep.done = nil
		j.rep.mu.Unlock()
		j.debugf("%s: repeater stopped", j.Name)
	}()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if j.Active() {
				d.Post(j.reemit)
			}
		}
	}
}
