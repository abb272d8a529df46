package globe

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestCameraTweenLinearMidpoint(t *testing.T) {
	var tw CameraTween
	tw.Start(Vec3{}, Vec3{X: 10, Y: -4, Z: 20}, time.Second, ease.Linear, nil)

	var got Vec3
	if !tw.Update(0.5, func(p Vec3) { got = p }) {
		t.Fatal("Update should apply while running")
	}
	assertVec(t, "midpoint", got, Vec3{X: 5, Y: -2, Z: 10})
	if !tw.Running() {
		t.Error("tween should still be running at the midpoint")
	}
}

func TestCameraTweenLandsExactly(t *testing.T) {
	var tw CameraTween
	to := Vec3{X: 1.0 / 3, Y: 0.1, Z: -28.123456789}
	tw.Start(Vec3{X: 7}, to, time.Second, ease.InQuad, nil)

	var got Vec3
	for i := 0; i < 7; i++ {
		tw.Update(0.15, func(p Vec3) { got = p })
	}
	if got != to {
		t.Errorf("final position = %+v, want exactly %+v", got, to)
	}
	if tw.Running() {
		t.Error("tween should be idle after finishing")
	}
	if tw.Update(0.1, func(Vec3) { t.Error("apply called while idle") }) {
		t.Error("Update should report false while idle")
	}
}

func TestCameraTweenCallbackAfterApply(t *testing.T) {
	var tw CameraTween
	var events []string
	tw.Start(Vec3{}, Vec3{X: 1}, time.Second, nil, func() {
		events = append(events, "complete")
	})
	tw.Update(2, func(Vec3) { events = append(events, "apply") })

	if len(events) != 2 || events[0] != "apply" || events[1] != "complete" {
		t.Errorf("events = %v, want [apply complete]", events)
	}

	tw.Update(1, func(Vec3) {})
	if len(events) != 2 {
		t.Errorf("callback ran again: %v", events)
	}
}

func TestCameraTweenReplaceDropsCallback(t *testing.T) {
	var tw CameraTween
	first, second := 0, 0
	tw.Start(Vec3{}, Vec3{X: 10}, time.Second, nil, func() { first++ })
	tw.Update(0.5, func(Vec3) {})

	tw.Start(Vec3{X: 5}, Vec3{Z: 10}, time.Second, nil, func() { second++ })
	if tw.Target() != (Vec3{Z: 10}) {
		t.Errorf("Target = %+v", tw.Target())
	}
	for i := 0; i < 3; i++ {
		tw.Update(0.5, func(Vec3) {})
	}
	if first != 0 {
		t.Errorf("replaced callback ran %d times", first)
	}
	if second != 1 {
		t.Errorf("current callback ran %d times, want 1", second)
	}
}

func TestCameraTweenZeroDurationUsesDefault(t *testing.T) {
	var tw CameraTween
	tw.Start(Vec3{}, Vec3{X: 1}, 0, nil, nil)
	if tw.Duration() != DefaultTweenDuration {
		t.Errorf("Duration = %v, want %v", tw.Duration(), DefaultTweenDuration)
	}
	var got Vec3
	tw.Update(0.5, func(p Vec3) { got = p })
	assertNear(t, "x at half the default", got.X, 0.5)
}

func TestCameraTweenCallbackMayRestart(t *testing.T) {
	var tw CameraTween
	var pos Vec3
	apply := func(p Vec3) { pos = p }

	tw.Start(Vec3{}, Vec3{X: 10}, time.Second, nil, func() {
		tw.Start(pos, Vec3{X: 10, Z: 10}, time.Second, nil, nil)
	})
	tw.Update(1, apply)
	if !tw.Running() {
		t.Fatal("callback should have started a second tween")
	}
	assertVec(t, "after first leg", pos, Vec3{X: 10})

	tw.Update(1, apply)
	assertVec(t, "after second leg", pos, Vec3{X: 10, Z: 10})
	if tw.Running() {
		t.Error("second tween should have finished")
	}
}

func TestCameraTweenEasingShapes(t *testing.T) {
	var in, out CameraTween
	in.Start(Vec3{}, Vec3{X: 1}, time.Second, ease.InQuad, nil)
	out.Start(Vec3{}, Vec3{X: 1}, time.Second, ease.OutQuad, nil)
	var pi, po Vec3
	in.Update(0.5, func(p Vec3) { pi = p })
	out.Update(0.5, func(p Vec3) { po = p })
	assertNear(t, "InQuad(0.5)", pi.X, 0.25)
	assertNear(t, "OutQuad(0.5)", po.X, 0.75)
}
