package marionette

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the windowed harness started by [Run].
type RunConfig struct {
	// Title and window size. Width and Height default to 1280x720.
	Title  string
	Width  int
	Height int

	// ShowStatus draws the engine status overlay in the corner of the
	// screen.
	ShowStatus bool

	// ExitWhenDone stops the game once no test is queued or running.
	// Queue tests before calling Run, or the harness exits on its first
	// frame.
	ExitWhenDone bool
}

// harnessGame interleaves the engine's frame pump with the game under
// test: the game updates first, then the engine resumes the running test,
// so every command observes the UI state of a fully stepped frame.
type harnessGame struct {
	inner   ebiten.Game
	eng     *Engine
	cfg     RunConfig
	overlay statusOverlay
}

func (g *harnessGame) Update() error {
	if err := g.inner.Update(); err != nil {
		return err
	}
	g.eng.PostFrame()
	if g.cfg.ExitWhenDone && g.eng.QueueEmpty() {
		return ebiten.Termination
	}
	return nil
}

func (g *harnessGame) Draw(screen *ebiten.Image) {
	g.inner.Draw(screen)
	if g.cfg.ShowStatus {
		g.overlay.draw(screen, g.eng)
	}
	g.eng.flushCaptures(screen)
}

func (g *harnessGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.inner.Layout(outsideWidth, outsideHeight)
}

// Run starts the engine and drives it and the game together under ebiten.
// It blocks until the game exits and returns any error from the game loop.
// The caller still owns the engine and should shut it down afterwards.
func Run(game ebiten.Game, eng *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "marionette"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	eng.Start()
	if err := ebiten.RunGame(&harnessGame{inner: game, eng: eng, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
