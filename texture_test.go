package globe

import "testing"

func TestHash2Range(t *testing.T) {
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			v := hash2(x, y, earthSeed)
			if v < 0 || v > 1 {
				t.Fatalf("hash2(%d, %d) = %v outside [0, 1]", x, y, v)
			}
		}
	}
	if hash2(3, 4, 1) != hash2(3, 4, 1) {
		t.Error("hash2 should be deterministic")
	}
}

func TestValueNoiseWrapsLongitude(t *testing.T) {
	const period = 8
	for _, x := range []float64{0.1, 2.5, 7.9} {
		a := valueNoise(x, 1.3, period, cloudSeed)
		b := valueNoise(x+period, 1.3, period, cloudSeed)
		if !approxEqual(a, b, 1e-9) {
			t.Errorf("valueNoise(%v) = %v, +period = %v", x, a, b)
		}
	}
}

func TestEarthPixelsOpaque(t *testing.T) {
	img := earthPixels(32, 16)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("bounds = %v", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, img.Pix[i])
		}
	}
}

func TestEarthPixelsPolesIcy(t *testing.T) {
	img := earthPixels(32, 64)
	top := img.RGBAAt(5, 0)
	if top.R < 200 || top.G < 200 || top.B < 200 {
		t.Errorf("pole pixel = %v, want near white", top)
	}
}

func TestCloudPixelsCoverage(t *testing.T) {
	dense := cloudPixels(64, 32, 0.9)
	var cloudy int
	for i := 3; i < len(dense.Pix); i += 4 {
		if dense.Pix[i] > 128 {
			cloudy++
		}
	}
	if total := len(dense.Pix) / 4; cloudy < total/2 {
		t.Errorf("dense layer: %d of %d pixels cloudy, want most", cloudy, total)
	}

	sparse := cloudPixels(64, 32, 0.05)
	for i := 3; i < len(sparse.Pix); i += 4 {
		if sparse.Pix[i] > 32 {
			t.Fatalf("sparse layer: pixel %d alpha %d, want near clear", i/4, sparse.Pix[i])
		}
	}
}

func TestMarkerPixelsShape(t *testing.T) {
	img := markerPixels(32, ColorWhite)
	if a := img.RGBAAt(16, 16).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestGlowPixelsLimb(t *testing.T) {
	img := glowPixels(128, 0.8, ColorWhite)
	center := img.RGBAAt(64, 64).A
	limb := img.RGBAAt(64+51, 64).A // just outside 0.8 of the half-size
	if center > 16 {
		t.Errorf("center alpha = %d, want dark", center)
	}
	if limb <= center {
		t.Errorf("limb alpha %d should exceed center %d", limb, center)
	}
}

func TestPutPremul(t *testing.T) {
	img := earthPixels(1, 1)
	putPremul(img, 0, 0, 1, 0.5, 0, 0.5)
	c := img.RGBAAt(0, 0)
	if c.A != 128 || c.R != 128 || c.G != 64 || c.B != 0 {
		t.Errorf("putPremul = %v", c)
	}
}
