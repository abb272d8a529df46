package globe

import (
	"math"
	"testing"
)

// fakePointer replays a fixed pointer state.
type fakePointer struct {
	x, y    float64
	pressed bool
}

func (p *fakePointer) Pointer() (float64, float64, bool) {
	return p.x, p.y, p.pressed
}

func newTestOrbit() (*OrbitControls, *fakePointer) {
	o := NewOrbitControls()
	src := &fakePointer{}
	o.Source = src
	return o, src
}

func TestOrbitIdleNoChange(t *testing.T) {
	o, _ := newTestOrbit()
	pos := Vec3{Z: -28}
	o.HandleInput(600)
	next, changed := o.Update(pos)
	if changed || next != pos {
		t.Errorf("idle Update = %+v, %v; want unchanged", next, changed)
	}
}

func TestOrbitHorizontalDrag(t *testing.T) {
	o, src := newTestOrbit()
	o.RotateSpeed = 1
	pos := Vec3{Z: -28}

	src.pressed = true
	src.x, src.y = 100, 300
	o.HandleInput(600)
	if !o.Dragging() {
		t.Fatal("press should start a drag")
	}
	if _, changed := o.Update(pos); changed {
		t.Error("press alone should not rotate")
	}

	src.x = 175 // an eighth of the height: π/4
	o.HandleInput(600)
	next, changed := o.Update(pos)
	if !changed {
		t.Fatal("drag should rotate")
	}
	assertNear(t, "radius", next.Len(), 28)
	assertNear(t, "y", next.Y, 0)
	angle := math.Acos((next.X*pos.X + next.Z*pos.Z) / (28 * 28))
	assertNear(t, "angle", angle, math.Pi/4)

	src.pressed = false
	o.HandleInput(600)
	if o.Dragging() {
		t.Error("release should end the drag")
	}
}

func TestOrbitVerticalDragClampsPolar(t *testing.T) {
	o, src := newTestOrbit()
	o.RotateSpeed = 1
	pos := Vec3{Z: -28}

	src.pressed = true
	o.HandleInput(600)
	src.y = 600 // a full turn upward; clamped at the pole
	o.HandleInput(600)
	next, changed := o.Update(pos)
	if !changed {
		t.Fatal("drag should rotate")
	}
	assertNear(t, "radius", next.Len(), 28)
	if math.IsNaN(next.X) || math.IsNaN(next.Y) || math.IsNaN(next.Z) {
		t.Fatalf("position has NaN: %+v", next)
	}
	phi := math.Acos(next.Y / 28)
	if phi < o.MinPolarAngle || phi > o.MaxPolarAngle {
		t.Errorf("polar angle %v outside [%v, %v]", phi, o.MinPolarAngle, o.MaxPolarAngle)
	}
}

func TestOrbitPolarLimits(t *testing.T) {
	o, src := newTestOrbit()
	o.RotateSpeed = 1
	o.MinPolarAngle = math.Pi / 4
	o.MaxPolarAngle = 3 * math.Pi / 4

	src.pressed = true
	o.HandleInput(600)
	src.y = -300
	o.HandleInput(600)
	next, _ := o.Update(Vec3{Z: -28})
	phi := math.Acos(next.Y / next.Len())
	if phi < math.Pi/4-1e-9 || phi > 3*math.Pi/4+1e-9 {
		t.Errorf("polar angle %v outside limits", phi)
	}
}

func TestOrbitDampingGlides(t *testing.T) {
	o, src := newTestOrbit()
	o.RotateSpeed = 1
	o.EnableDamping = true
	o.DampingFactor = 0.5
	pos := Vec3{Z: -28}

	src.pressed = true
	o.HandleInput(600)
	src.x = 60
	o.HandleInput(600)
	src.pressed = false
	o.HandleInput(600)

	first, changed := o.Update(pos)
	if !changed {
		t.Fatal("first damped step should move")
	}
	second, changed := o.Update(first)
	if !changed {
		t.Fatal("damping should keep moving after release")
	}
	d1 := first.Sub(pos).Len()
	d2 := second.Sub(first).Len()
	if d2 >= d1 {
		t.Errorf("step sizes %v then %v, want decaying", d1, d2)
	}
	for i := 0; i < 200; i++ {
		second, changed = o.Update(second)
		if !changed {
			break
		}
	}
	if changed {
		t.Error("damped rotation should settle")
	}
}

func TestOrbitDisabled(t *testing.T) {
	o, src := newTestOrbit()
	o.Enabled = false
	src.pressed = true
	o.HandleInput(600)
	src.x = 300
	o.HandleInput(600)
	if o.Dragging() {
		t.Error("disabled controls should not drag")
	}
	if _, changed := o.Update(Vec3{Z: -28}); changed {
		t.Error("disabled controls should not rotate")
	}
}

func TestOrbitAroundTarget(t *testing.T) {
	o, src := newTestOrbit()
	o.RotateSpeed = 1
	o.Target = Vec3{X: 10}
	pos := Vec3{X: 10, Z: -5}

	src.pressed = true
	o.HandleInput(600)
	src.x = 150
	o.HandleInput(600)
	next, _ := o.Update(pos)
	assertNear(t, "distance to target", next.Sub(o.Target).Len(), 5)
}
