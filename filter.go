package globe

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is an image-to-image effect used by composer passes.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Dispose releases any intermediate images the filter holds.
	Dispose()
}

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// Bilinear filtering during DrawImage does the work; no shader is needed.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius in pixels.
// Negative radii are treated as zero.
func NewBlurFilter(radius int) *BlurFilter {
	return &BlurFilter{Radius: max(radius, 0)}
}

// passes returns the number of half-size steps for the radius: log2(radius),
// minimum 1. Zero means a plain copy.
func (f *BlurFilter) passes() int {
	if f.Radius <= 0 {
		return 0
	}
	return max(int(math.Ceil(math.Log2(float64(f.Radius)))), 1)
}

// Apply renders a Kawase blur of src into dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	passes := f.passes()
	if passes == 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	// Drop temps left over from a larger radius.
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()

	// Downscale chain: each step halves the size.
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	// Upscale back through the chain, reusing the downscale images.
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	f.scaleInto(dst, current)
}

func (f *BlurFilter) scaleInto(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Dispose deallocates the intermediate images.
func (f *BlurFilter) Dispose() {
	for i, img := range f.temps {
		if img != nil {
			img.Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:0]
}
