package globe

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLocalTransformTranslation(t *testing.T) {
	n := NewGroup("n")
	n.Position = mgl64.Vec3{1, 2, 3}
	p := transformPoint(computeLocalTransform(n), mgl64.Vec3{})
	assertNear(t, "x", p[0], 1)
	assertNear(t, "y", p[1], 2)
	assertNear(t, "z", p[2], 3)
}

func TestLocalTransformRotateY(t *testing.T) {
	n := NewGroup("n")
	n.Rotation[1] = math.Pi / 2
	p := transformPoint(computeLocalTransform(n), mgl64.Vec3{1, 0, 0})
	// Right-handed rotation about +Y carries +X to -Z.
	assertNear(t, "x", p[0], 0)
	assertNear(t, "z", p[2], -1)
}

func TestLocalTransformScaleBeforeTranslate(t *testing.T) {
	n := NewGroup("n")
	n.Position = mgl64.Vec3{10, 0, 0}
	n.Scale = mgl64.Vec3{2, 2, 2}
	p := transformPoint(computeLocalTransform(n), mgl64.Vec3{1, 0, 0})
	assertNear(t, "x", p[0], 12)
}

func TestManualMatrixOverridesTRS(t *testing.T) {
	n := NewGroup("n")
	n.Position = mgl64.Vec3{5, 5, 5}
	n.SetMatrix(mgl64.Translate3D(0, 1, 0))
	p := transformPoint(computeLocalTransform(n), mgl64.Vec3{})
	assertNear(t, "y", p[1], 1)
	assertNear(t, "x", p[0], 0)

	n.ClearMatrix()
	p = transformPoint(computeLocalTransform(n), mgl64.Vec3{})
	assertNear(t, "x after ClearMatrix", p[0], 5)
}

func TestWorldTransformChain(t *testing.T) {
	root := NewGroup("root")
	parent := NewGroup("parent")
	child := NewGroup("child")
	parent.Position = mgl64.Vec3{0, 10, 0}
	parent.Rotation[1] = math.Pi
	child.Position = mgl64.Vec3{1, 0, 0}
	root.AddChild(parent)
	parent.AddChild(child)

	updateWorldTransform(root, mgl64.Ident4())
	wp := child.WorldPosition()
	assertNear(t, "x", wp[0], -1)
	assertNear(t, "y", wp[1], 10)
	assertNear(t, "z", wp[2], 0)
}

func TestTransformDirIgnoresTranslation(t *testing.T) {
	m := mgl64.Translate3D(100, 100, 100).Mul4(mgl64.Scale3D(3, 3, 3))
	d := transformDir(m, mgl64.Vec3{0, 1, 0})
	assertNear(t, "len", d.Len(), 1)
	assertNear(t, "y", d[1], 1)
}
