package globe

import "github.com/hajimehoshi/ebiten/v2"

// RenderTarget is an owned offscreen image that composers render into. It is
// never recycled and must be released with Dispose.
type RenderTarget struct {
	image *ebiten.Image
	w, h  int
}

// NewRenderTarget creates an offscreen target of the given size. Sizes below
// one pixel are raised to one.
func NewRenderTarget(w, h int) *RenderTarget {
	w, h = max(w, 1), max(h, 1)
	return &RenderTarget{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying image, or nil after Dispose.
func (rt *RenderTarget) Image() *ebiten.Image {
	return rt.image
}

// Width returns the target width in pixels.
func (rt *RenderTarget) Width() int {
	return rt.w
}

// Height returns the target height in pixels.
func (rt *RenderTarget) Height() int {
	return rt.h
}

// Clear fills the target with transparent black.
func (rt *RenderTarget) Clear() {
	if rt.image != nil {
		rt.image.Clear()
	}
}

// Resize replaces the image when the size changes. Contents are discarded.
func (rt *RenderTarget) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if rt.image != nil && rt.w == w && rt.h == h {
		return
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(w, h)
	rt.w = w
	rt.h = h
}

// Dispose deallocates the image. The target must not be used afterwards.
func (rt *RenderTarget) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}

// IsDisposed reports whether Dispose has been called.
func (rt *RenderTarget) IsDisposed() bool {
	return rt.image == nil
}
