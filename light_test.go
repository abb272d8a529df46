package globe

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func placedLight(l *Light, pos mgl64.Vec3) *Node {
	n := NewLightNode("light", l)
	n.Position = pos
	updateWorldTransform(n, mgl64.Ident4())
	return n
}

func TestAmbientLightAccumulates(t *testing.T) {
	var ls lightSet
	ls.add(NewLightNode("a", &Light{Kind: LightAmbient, Color: ColorWhite, Intensity: 0.25, Enabled: true}))
	ls.add(NewLightNode("b", &Light{Kind: LightAmbient, Color: Color{1, 0, 0, 1}, Intensity: 0.5, Enabled: true}))

	r, g, b := ls.shade(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	assertNear(t, "r", r, 0.75)
	assertNear(t, "g", g, 0.25)
	assertNear(t, "b", b, 0.25)
}

func TestDisabledLightIgnored(t *testing.T) {
	var ls lightSet
	ls.add(NewLightNode("a", &Light{Kind: LightAmbient, Color: ColorWhite, Intensity: 1}))
	r, _, _ := ls.shade(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	if r != 0 {
		t.Errorf("disabled light contributed %v", r)
	}
}

func TestSpotLightLambert(t *testing.T) {
	var ls lightSet
	ls.add(placedLight(&Light{Kind: LightSpot, Color: ColorWhite, Intensity: 2, Enabled: true}, mgl64.Vec3{0, 0, -10}))

	r, _, _ := ls.shade(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -1})
	assertNear(t, "facing", r, 2)

	r, _, _ = ls.shade(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1})
	assertNear(t, "facing away", r, 0)

	n := mgl64.Vec3{1, 0, -1}.Normalize()
	r, _, _ = ls.shade(mgl64.Vec3{0, 0, -1}, n)
	assertNear(t, "45 degrees", r, 2*math.Sqrt2/2)
}

func TestSpotLightCone(t *testing.T) {
	var ls lightSet
	ls.add(placedLight(&Light{
		Kind: LightSpot, Color: ColorWhite, Intensity: 1,
		Angle: math.Pi / 6, Enabled: true,
	}, mgl64.Vec3{0, 0, -10}))

	r, _, _ := ls.shade(mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -1})
	assertNear(t, "on axis", r, 1)

	r, _, _ = ls.shade(mgl64.Vec3{5, 0, -9.9}, mgl64.Vec3{-1, 0, 0})
	assertNear(t, "outside cone", r, 0)
}

func TestSpotLightAtTargetSkipped(t *testing.T) {
	var ls lightSet
	ls.add(placedLight(&Light{Kind: LightSpot, Color: ColorWhite, Intensity: 1, Enabled: true}, mgl64.Vec3{}))
	if len(ls.spots) != 0 {
		t.Error("a spot light sitting on its target has no direction and should be skipped")
	}
}

func TestLightSetReset(t *testing.T) {
	var ls lightSet
	ls.add(NewLightNode("a", &Light{Kind: LightAmbient, Color: ColorWhite, Intensity: 1, Enabled: true}))
	ls.reset()
	r, _, _ := ls.shade(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	if r != 0 {
		t.Errorf("after reset r = %v, want 0", r)
	}
}

func TestSmoothstep(t *testing.T) {
	assertNear(t, "below", smoothstep(0, 1, -1), 0)
	assertNear(t, "mid", smoothstep(0, 1, 0.5), 0.5)
	assertNear(t, "above", smoothstep(0, 1, 2), 1)
	assertNear(t, "hard edge", smoothstep(0.5, 0.5, 0.6), 1)
}
