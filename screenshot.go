package globe

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a PNG of the next composited frame, written to
// ScreenshotDir as <label>_<frame>.png. The first frame is drawn without the
// glow composers and is never captured, so a request made before it waits one
// more frame.
func (g *Globe) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots writes one file per queued label from a single read of
// the composited screen.
func (g *Globe) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	labels := g.screenshotQueue
	g.screenshotQueue = nil

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[globe] screenshot: %v\n", err)
		return
	}
	img := g.readFrame(screen)
	for _, label := range labels {
		path := filepath.Join(g.ScreenshotDir, screenshotName(label, g.frame))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[globe] screenshot: %v\n", err)
		}
	}
}

// readScreen copies the screen into an image.RGBA. Ebitengine pixels are
// premultiplied, which is the layout image.RGBA expects; png.Encode writes
// them back out as straight alpha.
func readScreen(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, screen.Bounds().Dx(), screen.Bounds().Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

func screenshotName(label string, frame uint64) string {
	return fmt.Sprintf("%s_%06d.png", sanitizeLabel(label), frame)
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', maps everything
// else to '_', and names blank labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
