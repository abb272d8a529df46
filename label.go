package globe

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// labelFaceSource is parsed once on first use (no sync.Once; globe is
// single-threaded).
var labelFaceSource *text.GoTextFaceSource

func ensureLabelFaceSource() (*text.GoTextFaceSource, error) {
	if labelFaceSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("globe: failed to parse label font: %w", err)
		}
		labelFaceSource = src
	}
	return labelFaceSource, nil
}

// labelPadding is the transparent border around label text in pixels.
const labelPadding = 2

// newLabelImage renders s into a tightly sized image using the embedded Go
// Regular font at the given pixel size.
func newLabelImage(s string, size float64, c Color) (*ebiten.Image, error) {
	src, err := ensureLabelFaceSource()
	if err != nil {
		return nil, err
	}
	face := &text.GoTextFace{Source: src, Size: size}
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	tw, th := text.Measure(s, face, lh)
	w := int(math.Ceil(tw)) + 2*labelPadding
	h := int(math.Ceil(th)) + 2*labelPadding
	img := ebiten.NewImage(max(w, 1), max(h, 1))

	op := &text.DrawOptions{}
	op.GeoM.Translate(labelPadding, labelPadding)
	op.LineSpacing = lh
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(img, s, face, op)
	return img, nil
}
