package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera looks from Position at Target through a perspective
// frustum. Children attached via Node() are carried in view space, which is how
// the spot light stays fixed relative to the viewer.
type PerspectiveCamera struct {
	// Position is the eye position in world space.
	Position Vec3
	// Target is the point the camera looks at.
	Target Vec3
	// Up is the world up direction used to orient the view.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is width / height.
	Aspect float64
	// Near and Far are the clip distances.
	Near, Far float64

	node *Node

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4

	// Cache key: the matrices are recomputed when any of these change.
	cachedPos, cachedTarget, cachedUp Vec3
	cachedFOV, cachedAspect           float64
	cachedNear, cachedFar             float64
	dirty                             bool
}

// NewPerspectiveCamera creates a camera with the given vertical FOV (degrees),
// aspect ratio and clip distances. Position and Target both start at the
// origin; set Position before rendering.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Up:     Vec3{Y: 1},
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		node:   NewGroup("camera"),
		dirty:  true,
	}
	return c
}

// Node returns the camera's group node. Add it to the scene root so that its
// children are traversed, and attach view-relative nodes (lights) to it.
func (c *PerspectiveCamera) Node() *Node {
	return c.node
}

// Add attaches child to the camera so it moves with the view.
func (c *PerspectiveCamera) Add(child *Node) {
	c.node.AddChild(child)
}

// MarkDirty forces a recomputation of the cached matrices.
func (c *PerspectiveCamera) MarkDirty() {
	c.dirty = true
}

// update recomputes the cached matrices if any camera parameter changed and
// places the camera node at the inverse view transform.
func (c *PerspectiveCamera) update() {
	if !c.dirty &&
		c.cachedPos == c.Position && c.cachedTarget == c.Target && c.cachedUp == c.Up &&
		c.cachedFOV == c.FOV && c.cachedAspect == c.Aspect &&
		c.cachedNear == c.Near && c.cachedFar == c.Far {
		return
	}
	c.dirty = false
	c.cachedPos, c.cachedTarget, c.cachedUp = c.Position, c.Target, c.Up
	c.cachedFOV, c.cachedAspect = c.FOV, c.Aspect
	c.cachedNear, c.cachedFar = c.Near, c.Far

	up := c.Up.mgl()
	fwd := c.Target.mgl().Sub(c.Position.mgl())
	// Looking straight along Up makes LookAt degenerate; borrow another axis.
	if fwd.Len() > 1e-12 && math.Abs(fwd.Normalize().Dot(up.Normalize())) > 0.999999 {
		up = mgl64.Vec3{0, 0, 1}
	}
	c.view = mgl64.LookAtV(c.Position.mgl(), c.Target.mgl(), up)
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
	c.node.SetMatrix(c.view.Inv())
}

// ViewMatrix returns the world-to-view matrix.
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	c.update()
	return c.view
}

// ProjectionMatrix returns the view-to-clip matrix.
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	c.update()
	return c.proj
}

// ViewProjectionMatrix returns projection * view.
func (c *PerspectiveCamera) ViewProjectionMatrix() mgl64.Mat4 {
	c.update()
	return c.viewProj
}

// viewDepth returns the distance of p in front of the camera along the view
// axis. Points behind the camera are negative.
func (c *PerspectiveCamera) viewDepth(p mgl64.Vec3) float64 {
	return -transformPoint(c.view, p)[2]
}

// WorldToScreen projects a world point into a w×h viewport with the origin at
// the top-left. ok is false when the point is behind the near plane.
func (c *PerspectiveCamera) WorldToScreen(p Vec3, w, h float64) (sx, sy, depth float64, ok bool) {
	c.update()
	return c.project(p.mgl(), w, h)
}

func (c *PerspectiveCamera) project(p mgl64.Vec3, w, h float64) (sx, sy, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip[3] < c.Near {
		return 0, 0, clip[3], false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	sx = (ndcX + 1) * 0.5 * w
	sy = (1 - ndcY) * 0.5 * h
	return sx, sy, clip[3], true
}

// pixelsPerUnit returns how many screen pixels one world unit spans at the
// given view depth in a viewport of height h.
func (c *PerspectiveCamera) pixelsPerUnit(depth, h float64) float64 {
	if depth <= 0 {
		return 0
	}
	return h / (2 * math.Tan(mgl64.DegToRad(c.FOV)/2) * depth)
}
