package globe

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, the same space real input reports in.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's HandleInput call.
func (o *OrbitControls) InjectPress(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (o *OrbitControls) InjectMove(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (o *OrbitControls) InjectRelease(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: false,
	})
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves ending at (toX, toY), and a release there. The sequence
// consumes frames frames; the minimum is 3.
func (o *OrbitControls) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	o.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		o.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	o.InjectRelease(toX, toY)
}

// PendingInjected returns the number of queued synthetic events.
func (o *OrbitControls) PendingInjected() int {
	return len(o.injectQueue)
}

// popInjected removes and returns the oldest queued event.
func (o *OrbitControls) popInjected() (syntheticPointerEvent, bool) {
	if len(o.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := o.injectQueue[0]
	copy(o.injectQueue, o.injectQueue[1:])
	o.injectQueue = o.injectQueue[:len(o.injectQueue)-1]
	return evt, true
}
