package globe

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSource reports the primary pointer in screen coordinates.
type PointerSource interface {
	// Pointer returns the pointer position and whether it is held down.
	Pointer() (x, y float64, pressed bool)
}

// ebitenPointer reads the left mouse button, falling back to the first touch.
type ebitenPointer struct {
	touchIDs []ebiten.TouchID
}

func (p *ebitenPointer) Pointer() (x, y float64, pressed bool) {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		return float64(mx), float64(my), true
	}
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(p.touchIDs[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), false
}

// polarEpsilon keeps the camera off the poles, where the view up vector
// degenerates.
const polarEpsilon = 1e-6

// OrbitControls rotates the camera around Target when the pointer is dragged.
// Zoom and pan are not supported. A full-height vertical drag at RotateSpeed 1
// turns the camera by 2π.
type OrbitControls struct {
	Enabled     bool
	RotateSpeed float64
	// EnableDamping keeps the rotation gliding after release, decaying by
	// DampingFactor each frame.
	EnableDamping bool
	DampingFactor float64
	// MinPolarAngle and MaxPolarAngle bound the angle from +Y, in radians.
	MinPolarAngle float64
	MaxPolarAngle float64
	Target        Vec3
	// Source supplies pointer state. Nil reads mouse and touch input.
	Source PointerSource

	dragging     bool
	lastX, lastY float64
	thetaDelta   float64
	phiDelta     float64
	injectQueue  []syntheticPointerEvent
}

// NewOrbitControls returns enabled controls with rotate speed 0.3 and no
// damping, orbiting the origin.
func NewOrbitControls() *OrbitControls {
	return &OrbitControls{
		Enabled:       true,
		RotateSpeed:   0.3,
		DampingFactor: 0.25,
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
	}
}

// Dragging reports whether a drag is in progress.
func (o *OrbitControls) Dragging() bool {
	return o.dragging
}

// HandleInput samples the pointer once and accumulates rotation. viewHeight is
// the height of the coordinate space the pointer reports in. Injected events
// take priority over real input, one per frame.
func (o *OrbitControls) HandleInput(viewHeight float64) {
	if !o.Enabled || viewHeight <= 0 {
		o.dragging = false
		return
	}

	var x, y float64
	var pressed bool
	if evt, ok := o.popInjected(); ok {
		x, y, pressed = evt.screenX, evt.screenY, evt.pressed
	} else {
		if o.Source == nil {
			o.Source = &ebitenPointer{}
		}
		x, y, pressed = o.Source.Pointer()
	}
	o.pointer(x, y, pressed, viewHeight)
}

// pointer runs the drag state machine for one sample.
func (o *OrbitControls) pointer(x, y float64, pressed bool, viewHeight float64) {
	switch {
	case pressed && !o.dragging:
		o.dragging = true
		o.lastX, o.lastY = x, y
	case pressed && o.dragging:
		dx, dy := x-o.lastX, y-o.lastY
		o.lastX, o.lastY = x, y
		o.rotateLeft(2 * math.Pi * dx / viewHeight * o.RotateSpeed)
		o.rotateUp(2 * math.Pi * dy / viewHeight * o.RotateSpeed)
	case !pressed:
		o.dragging = false
	}
}

func (o *OrbitControls) rotateLeft(angle float64) { o.thetaDelta -= angle }
func (o *OrbitControls) rotateUp(angle float64)   { o.phiDelta -= angle }

// Update applies accumulated rotation to the camera position pos and returns
// the new position. changed is false when there was nothing to apply, in which
// case pos is returned untouched.
func (o *OrbitControls) Update(pos Vec3) (next Vec3, changed bool) {
	if !o.Enabled {
		o.thetaDelta, o.phiDelta = 0, 0
		return pos, false
	}
	if nearlyZero(o.thetaDelta) && nearlyZero(o.phiDelta) {
		o.thetaDelta, o.phiDelta = 0, 0
		return pos, false
	}

	offset := pos.Sub(o.Target)
	radius := offset.Len()
	if radius < 1e-12 {
		return pos, false
	}
	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))

	if o.EnableDamping {
		theta += o.thetaDelta * o.DampingFactor
		phi += o.phiDelta * o.DampingFactor
		o.thetaDelta *= 1 - o.DampingFactor
		o.phiDelta *= 1 - o.DampingFactor
	} else {
		theta += o.thetaDelta
		phi += o.phiDelta
		o.thetaDelta, o.phiDelta = 0, 0
	}

	phi = math.Max(o.MinPolarAngle, math.Min(o.MaxPolarAngle, phi))
	phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, phi))

	sinPhi := math.Sin(phi)
	next = Vec3{
		X: o.Target.X + radius*sinPhi*math.Sin(theta),
		Y: o.Target.Y + radius*math.Cos(phi),
		Z: o.Target.Z + radius*sinPhi*math.Cos(theta),
	}
	return next, true
}
