package globe

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Translate(Position) * RotateX * RotateY * RotateZ * Scale
//
// Euler angles apply in XYZ order, so a Y spin on a tilted parent stays a spin
// about the parent's own vertical axis.
func computeLocalTransform(n *Node) mgl64.Mat4 {
	if n.manualMatrix {
		return n.localMatrix
	}
	m := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	if n.Rotation[0] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(n.Rotation[0]))
	}
	if n.Rotation[1] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(n.Rotation[1]))
	}
	if n.Rotation[2] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(n.Rotation[2]))
	}
	if n.Scale != (mgl64.Vec3{1, 1, 1}) {
		m = m.Mul4(mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
	}
	return m
}

// updateWorldTransform recomputes worldTransform for n and its subtree.
// Transforms are cheap at globe scale (a few dozen nodes), so there is no
// dirty tracking; every frame recomputes the whole tree.
func updateWorldTransform(n *Node, parent mgl64.Mat4) {
	n.worldTransform = parent.Mul4(computeLocalTransform(n))
	for _, c := range n.children {
		updateWorldTransform(c, n.worldTransform)
	}
}

// transformPoint applies m to p as a position (w = 1).
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// transformDir applies m to d as a direction (w = 0) and normalizes the result.
// Only valid for matrices without non-uniform scale.
func transformDir(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	v := m.Mul4x1(d.Vec4(0)).Vec3()
	if l := v.Len(); l > 1e-12 {
		return v.Mul(1 / l)
	}
	return v
}
