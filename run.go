package globe

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	ShowFPS bool
	// Resizable lets the user resize the window. The backing buffer stays at
	// twice the configured page size and is scaled to fit.
	Resizable bool
}

// Run opens a transparent window of the configured page size and runs g until
// the window closes. Update runs once per display refresh so that every tick
// is followed by exactly one Draw.
func Run(g *Globe, rc RunConfig) error {
	title := rc.Title
	if title == "" {
		title = "globe"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.cfg.PageWidth, g.cfg.PageHeight)
	if rc.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetScreenClearedEveryFrame(false)
	g.ShowFPS = rc.ShowFPS

	if err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true}); err != nil {
		return fmt.Errorf("globe: run: %w", err)
	}
	return nil
}
