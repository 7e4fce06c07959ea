package joystick

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugf prints a diagnostic line to stderr when debug mode is on.
func (j *Joystick) debugf(format string, args ...any) {
	if !j.debug.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[joystick] "+format+"\n", args...)
}

const overlayRefresh = 0.5 // seconds between overlay text refreshes

// debugOverlay shows FPS/TPS and each joystick's direction in the top-left
// corner. The text is rebuilt every ~0.5 seconds.
type debugOverlay struct {
	img        *ebiten.Image
	text       string
	sinceFlush float64
}

func (o *debugOverlay) update(dt float64, sticks []*Joystick) {
	o.sinceFlush += dt
	if o.text != "" && o.sinceFlush < overlayRefresh {
		return
	}
	o.sinceFlush = 0

	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	for _, j := range sticks {
		d := j.Direction()
		fmt.Fprintf(&b, "%s: %+.2f %+.2f\n", j.Name, d.X, d.Y)
	}
	o.text = b.String()
}

func (o *debugOverlay) draw(screen *ebiten.Image) {
	lines := strings.Count(o.text, "\n") + 1
	h := lines * 16
	if o.img == nil || o.img.Bounds().Dy() != h {
		o.img = ebiten.NewImage(160, h)
	}
	o.img.Clear()
	// Semi-transparent background for readability.
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
