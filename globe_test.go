package globe

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want, 1e-6) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec3) {
	t.Helper()
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

// --- RotateY ---

func TestRotateYQuarterTurn(t *testing.T) {
	got := RotateY(Vec3{X: 1}, math.Pi/2)
	assertVec(t, "RotateY(+X, π/2)", got, Vec3{Z: 1})

	got = RotateY(Vec3{Z: 1}, math.Pi/2)
	assertVec(t, "RotateY(+Z, π/2)", got, Vec3{X: -1})
}

func TestRotateYPreservesLength(t *testing.T) {
	p := Vec3{X: 3, Y: -2, Z: -28}
	want := p.Len()
	for i := 0; i < 10000; i++ {
		p = RotateY(p, 0.001)
	}
	if !approxEqual(p.Len(), want, 1e-9) {
		t.Errorf("length after 10000 steps = %v, want %v", p.Len(), want)
	}
	if p.Y != -2 {
		t.Errorf("Y = %v, want -2", p.Y)
	}
}

func TestRotateYFullTurn(t *testing.T) {
	p := Vec3{X: 5, Y: 1, Z: -7}
	assertVec(t, "RotateY(p, 2π)", RotateY(p, 2*math.Pi), p)
}

// --- Color ---

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}.toRGBA()
	if c.A != 128 {
		t.Errorf("A = %d, want 128", c.A)
	}
	if c.R != 128 {
		t.Errorf("R = %d, want 128", c.R)
	}
	if c.G != 64 {
		t.Errorf("G = %d, want 64", c.G)
	}
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
}

func TestColorToRGBAClamps(t *testing.T) {
	c := Color{2, -1, 0.5, 1.5}.toRGBA()
	if c.R != 255 || c.G != 0 || c.A != 255 {
		t.Errorf("toRGBA = %v, want R=255 G=0 A=255", c)
	}
}

// --- Vec3 ---

func TestVec3Helpers(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 6, 3)
	assertVec(t, "Sub", b.Sub(a), V3(3, 4, 0))
	assertNear(t, "Len", b.Sub(a).Len(), 5)
	assertVec(t, "Scale", a.Scale(2), V3(2, 4, 6))
	if fromMgl(a.mgl()) != a {
		t.Errorf("mgl round trip changed %v", a)
	}
}
