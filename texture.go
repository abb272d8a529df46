package globe

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/hajimehoshi/ebiten/v2"
)

// Procedural textures. Nothing is loaded from disk: the earth, cloud, marker
// and glow images are generated from seeded value noise and radial ramps.

const (
	earthSeed = 0x9e3779b9
	cloudSeed = 0x85ebca6b
)

// hash2 returns a deterministic pseudo-random value in [0, 1] for a lattice
// point.
func hash2(x, y int, seed uint32) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + seed
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h&0xffffff) / float64(0xffffff)
}

// valueNoise samples smoothed lattice noise at (x, y). The lattice wraps every
// period cells along x so longitude has no seam.
func valueNoise(x, y float64, period int, seed uint32) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)

	wx0 := ((x0 % period) + period) % period
	wx1 := (wx0 + 1) % period

	a := hash2(wx0, y0, seed)
	b := hash2(wx1, y0, seed)
	c := hash2(wx0, y0+1, seed)
	d := hash2(wx1, y0+1, seed)
	top := a + (b-a)*fx
	bottom := c + (d-c)*fx
	return top + (bottom-top)*fy
}

// fbm sums octaves of valueNoise at doubling frequency and halving amplitude.
// u and v are normalized texture coordinates.
func fbm(u, v float64, baseCells, octaves int, seed uint32) float64 {
	sum, amp, norm := 0.0, 1.0, 0.0
	cells := baseCells
	for o := 0; o < octaves; o++ {
		sum += amp * valueNoise(u*float64(cells), v*float64(cells)/2, cells, seed+uint32(o)*1013)
		norm += amp
		amp *= 0.5
		cells *= 2
	}
	return sum / norm
}

// putPremul writes a straight-alpha color into a premultiplied RGBA buffer.
func putPremul(img *image.RGBA, x, y int, r, g, b, a float64) {
	a = clamp01(a)
	off := img.PixOffset(x, y)
	img.Pix[off+0] = uint8(clamp01(r)*a*255 + 0.5)
	img.Pix[off+1] = uint8(clamp01(g)*a*255 + 0.5)
	img.Pix[off+2] = uint8(clamp01(b)*a*255 + 0.5)
	img.Pix[off+3] = uint8(a*255 + 0.5)
}

// earthPixels generates an equirectangular w×h earth image.
func earthPixels(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		lat := 90 - v*180
		ice := smoothstep(68, 78, math.Abs(lat))
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			n := fbm(u, v, 6, 5, earthSeed)

			var r, g, b float64
			if n > 0.55 {
				// Land: green lowlands shading to brown highlands.
				t := smoothstep(0.55, 0.8, n)
				r = 0.18 + 0.35*t
				g = 0.42 + 0.05*t
				b = 0.16 + 0.08*t
			} else {
				// Ocean: deeper water is darker.
				t := smoothstep(0.2, 0.55, n)
				r = 0.02 + 0.04*t
				g = 0.12 + 0.18*t
				b = 0.35 + 0.3*t
			}
			r += (0.95 - r) * ice
			g += (0.97 - g) * ice
			b += (1.0 - b) * ice
			putPremul(img, x, y, r, g, b, 1)
		}
	}
	return img
}

// cloudPixels generates a w×h white cloud layer with noise-driven alpha,
// softened by a Gaussian blur.
func cloudPixels(w, h int, coverage float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	lo := 1 - coverage
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			n := fbm(u, v, 8, 4, cloudSeed)
			putPremul(img, x, y, 1, 1, 1, smoothstep(lo, lo+0.25, n)*0.9)
		}
	}
	return blur.Gaussian(img, 1.5)
}

// markerPixels generates a size×size dot with a bright core and a soft ring.
func markerPixels(size int, c Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			d := math.Sqrt(dx*dx+dy*dy) / radius

			core := 1 - smoothstep(0.35, 0.45, d)
			ring := smoothstep(0.6, 0.7, d) * (1 - smoothstep(0.85, 1, d))
			a := math.Max(core, ring*0.8)
			putPremul(img, x, y, c.R, c.G, c.B, a*c.A)
		}
	}
	return img
}

// glowPixels generates a size×size halo that peaks at inner (a fraction of the
// half-size) and fades to zero at the edge. The disc inside inner stays dark
// so the additive blend only brightens the limb.
func glowPixels(size int, inner float64, c Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			d := math.Sqrt(dx*dx+dy*dy) / radius

			var a float64
			if d < inner {
				a = smoothstep(inner*0.9, inner, d)
			} else {
				t := clamp01((d - inner) / (1 - inner))
				a = (1 - t) * (1 - t)
			}
			putPremul(img, x, y, c.R, c.G, c.B, a*c.A)
		}
	}
	return blur.Gaussian(img, float64(size)/128)
}

// newImageFromPixels uploads a generated buffer as an ebiten image.
func newImageFromPixels(img *image.RGBA) *ebiten.Image {
	return ebiten.NewImageFromImage(img)
}
