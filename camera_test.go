package globe

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestCamera() *PerspectiveCamera {
	cam := NewPerspectiveCamera(40, 800.0/600.0, 0.1, 1000)
	cam.Position = Vec3{Z: -28}
	return cam
}

func TestWorldToScreenCenter(t *testing.T) {
	cam := newTestCamera()
	sx, sy, depth, ok := cam.WorldToScreen(Vec3{}, 800, 600)
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	assertNear(t, "sx", sx, 400)
	assertNear(t, "sy", sy, 300)
	assertNear(t, "depth", depth, 28)
}

func TestWorldToScreenUpIsUp(t *testing.T) {
	cam := newTestCamera()
	_, sy, _, ok := cam.WorldToScreen(Vec3{Y: 5}, 800, 600)
	if !ok {
		t.Fatal("point should be visible")
	}
	if sy >= 300 {
		t.Errorf("sy = %v, want above center", sy)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := newTestCamera()
	if _, _, _, ok := cam.WorldToScreen(Vec3{Z: -40}, 800, 600); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestCameraCacheFollowsPosition(t *testing.T) {
	cam := newTestCamera()
	cam.WorldToScreen(Vec3{}, 800, 600)
	cam.Position = Vec3{Z: -14}
	_, _, depth, _ := cam.WorldToScreen(Vec3{}, 800, 600)
	assertNear(t, "depth after move", depth, 14)
}

func TestCameraNodeCarriesChildren(t *testing.T) {
	cam := newTestCamera()
	cam.Position = Vec3{X: 3, Y: 4, Z: -20}
	child := NewGroup("child")
	cam.Add(child)

	root := NewGroup("root")
	root.AddChild(cam.Node())
	cam.update()
	updateWorldTransform(root, mgl64.Ident4())

	wp := child.WorldPosition()
	assertNear(t, "x", wp[0], 3)
	assertNear(t, "y", wp[1], 4)
	assertNear(t, "z", wp[2], -20)
}

func TestCameraLookingAlongUp(t *testing.T) {
	cam := newTestCamera()
	cam.Position = Vec3{Y: 30}
	v := cam.ViewMatrix()
	for i := 0; i < 16; i++ {
		if math.IsNaN(v[i]) {
			t.Fatalf("view matrix has NaN at %d", i)
		}
	}
	_, _, depth, ok := cam.WorldToScreen(Vec3{}, 100, 100)
	if !ok {
		t.Fatal("origin should be visible from above")
	}
	assertNear(t, "depth", depth, 30)
}

func TestPixelsPerUnit(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 100)
	assertNear(t, "ppu", cam.pixelsPerUnit(1, 2), 1)
	assertNear(t, "ppu at depth 2", cam.pixelsPerUnit(2, 2), 0.5)
	if cam.pixelsPerUnit(0, 100) != 0 {
		t.Error("zero depth should give zero")
	}
}
