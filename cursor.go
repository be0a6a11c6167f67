package marionette

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Frame counts for pointer glides at each run speed. Fast does not glide
// at all; it teleports in a single move event.
const (
	normalMoveFrames    = 8
	cinematicMoveFrames = 24
)

// pointerGlide animates the cursor's X and Y toward a target across a fixed
// number of frames. Call Update once per frame until Done.
type pointerGlide struct {
	tweens [2]*gween.Tween
	frames int
	step   int
	Done   bool
}

// newPointerGlide creates a glide from (fromX, fromY) to (toX, toY) taking
// the given number of frames, eased by fn.
func newPointerGlide(fromX, fromY, toX, toY float64, frames int, fn ease.TweenFunc) *pointerGlide {
	if frames < 1 {
		frames = 1
	}
	g := &pointerGlide{frames: frames}
	g.tweens[0] = gween.New(float32(fromX), float32(toX), float32(frames), fn)
	g.tweens[1] = gween.New(float32(fromY), float32(toY), float32(frames), fn)
	return g
}

// Update advances the glide by one frame and returns the new cursor
// position. After the final frame the position is exactly the target and
// Done is set.
func (g *pointerGlide) Update() (x, y float64) {
	if g.Done {
		x32, _ := g.tweens[0].Set(float32(g.frames))
		y32, _ := g.tweens[1].Set(float32(g.frames))
		return float64(x32), float64(y32)
	}
	g.step++
	x32, finishedX := g.tweens[0].Update(1)
	y32, finishedY := g.tweens[1].Update(1)
	g.Done = finishedX && finishedY || g.step >= g.frames
	return float64(x32), float64(y32)
}

// glideFor returns the frame count and easing for a run speed, or ok=false
// when the speed teleports instead of gliding.
func glideFor(speed RunSpeed) (frames int, fn ease.TweenFunc, ok bool) {
	switch speed {
	case RunSpeedNormal:
		return normalMoveFrames, ease.Linear, true
	case RunSpeedCinematic:
		return cinematicMoveFrames, ease.InOutQuad, true
	default:
		return 0, nil, false
	}
}
