package marionette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	overlayWidth   = 260 // wide enough for "running: category/name"
	overlayHeight  = 72  // four lines of debug text
	overlayRefresh = 30  // frames between text refreshes, ~0.5s at 60 FPS
)

// statusOverlay draws a compact engine status readout in the top-left
// corner of the screen. The text is re-rendered a few times per second;
// in between, the cached image is reused.
type statusOverlay struct {
	img   *ebiten.Image
	since int
}

func (o *statusOverlay) draw(screen *ebiten.Image, e *Engine) {
	if o.img == nil {
		o.img = ebiten.NewImage(overlayWidth, overlayHeight)
		o.since = overlayRefresh
	}
	o.since++
	if o.since >= overlayRefresh {
		o.since = 0
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, overlayText(e))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	screen.DrawImage(o.img, op)
}

func overlayText(e *Engine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\n", ebiten.ActualFPS())
	fmt.Fprintf(&b, "frame: %d\n", e.Frame())
	if e.cur != nil {
		fmt.Fprintf(&b, "running: %s\n", e.cur.test.Key())
	} else {
		b.WriteString("running: -\n")
	}
	s := e.ResultSummary()
	fmt.Fprintf(&b, "tested: %d  ok: %d  queued: %d", s.Tested, s.Success, s.InQueue)
	return b.String()
}
