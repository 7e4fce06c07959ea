package joystick

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// Host is an ebiten.Game that owns a set of joysticks, routes pointer input
// to them and runs their hold repeaters for as long as they are attached.
// Repeater emissions are queued and delivered from Update, so every
// handler runs on the game goroutine.
type Host struct {
	// ClearColor fills the screen before joysticks are drawn. A zero value
	// leaves the screen untouched.
	ClearColor Color

	// OnLayout, if set, is called from Layout whenever the outside size changes.
	OnLayout func(width, height int)

	sticks []*Joystick
	input  *Input
	queue  *Queue

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	closed bool

	width, height int
	testRunner    *TestRunner
	debug         bool
	overlay       debugOverlay
}

// NewHost creates a Host with no joysticks.
func NewHost() *Host {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	return &Host{
		input:  NewInput(),
		queue:  NewQueue(0),
		ctx:    ctx,
		cancel: cancel,
		group:  g,
	}
}

// Input returns the host's pointer router, e.g. for injecting events.
func (h *Host) Input() *Input {
	return h.input
}

// Joysticks returns the attached joysticks. The returned slice MUST NOT be mutated.
func (h *Host) Joysticks() []*Joystick {
	return h.sticks
}

// Attach adds j to the host: it receives pointer input, is drawn each frame
// and its hold repeater starts, delivering through the host's queue. The
// joystick's own dispatcher is left untouched for use after Detach.
func (h *Host) Attach(j *Joystick) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for _, s := range h.sticks {
		if s == j {
			return fmt.Errorf("attach %q: already attached", j.Name)
		}
	}

	ctx, d, interval, err := j.beginRepeat(h.ctx, h.queue)
	if err != nil {
		return fmt.Errorf("attach %q: %w", j.Name, err)
	}
	h.group.Go(func() error {
		j.repeat(ctx, d, interval)
		return nil
	})

	j.SetDebugMode(h.debug)
	h.sticks = append(h.sticks, j)
	h.input.Add(j)
	return nil
}

// Detach removes j from the host and stops its repeater, waiting for the
// repeater goroutine to exit. A held pointer on j is released first.
func (h *Host) Detach(j *Joystick) {
	h.mu.Lock()
	for i, s := range h.sticks {
		if s == j {
			h.sticks = append(h.sticks[:i], h.sticks[i+1:]...)
			break
		}
	}
	h.mu.Unlock()

	h.input.Remove(j)
	j.Stop()
}

// Close stops every repeater and waits for them to exit. Attached joysticks
// are not closed and may be attached to another host. Close is idempotent.
func (h *Host) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.cancel()
	return h.group.Wait()
}

// SetTestRunner attaches a TestRunner stepped once per Update before input.
func (h *Host) SetTestRunner(r *TestRunner) {
	h.testRunner = r
}

// SetDebugMode enables the FPS/direction overlay and per-event stderr
// diagnostics on every attached joystick.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
	for _, j := range h.sticks {
		j.SetDebugMode(enabled)
	}
}

// Update processes input, delivers queued repeats and advances animations.
func (h *Host) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if h.testRunner != nil {
		h.testRunner.step(h.input)
	}
	h.input.Update()
	h.queue.Drain()
	for _, j := range h.sticks {
		j.Update(dt)
	}
	if h.debug {
		h.overlay.update(float64(dt), h.sticks)
	}
	return nil
}

// Draw clears the screen and draws every attached joystick in attach order.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.ClearColor != (Color{}) {
		screen.Fill(h.ClearColor.toRGBA())
	}
	for _, j := range h.sticks {
		j.Draw(screen)
	}
	if h.debug {
		h.overlay.draw(screen)
	}
}

// Layout reports the outside size as the logical screen size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		if h.OnLayout != nil {
			h.OnLayout(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool // enables the debug overlay
}

// Run opens a window and runs h until the window closes, then closes h.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.ShowFPS {
		h.SetDebugMode(true)
	}

	runErr := ebiten.RunGame(h)
	closeErr := h.Close()
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	return closeErr
}

var _ ebiten.Game = (*Host)(nil)

