package globe

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshFrames is how often the overlay text is redrawn.
const fpsRefreshFrames = 30

// fpsOverlay displays the current FPS and TPS. The text is redrawn into its
// own image every fpsRefreshFrames frames and composited every frame.
type fpsOverlay struct {
	img       *ebiten.Image
	lastFrame uint64
	drawn     bool
	op        ebiten.DrawImageOptions
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0".
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

func (o *fpsOverlay) draw(screen *ebiten.Image, frame uint64) {
	if !o.drawn || frame-o.lastFrame >= fpsRefreshFrames {
		o.drawn = true
		o.lastFrame = frame
		o.img.Clear()
		// Semi-transparent background for readability.
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	o.op.GeoM.Reset()
	o.op.GeoM.Scale(2, 2)
	o.op.GeoM.Translate(8, 8)
	screen.DrawImage(o.img, &o.op)
}

func (o *fpsOverlay) dispose() {
	o.img.Deallocate()
}
