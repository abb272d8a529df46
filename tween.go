package globe

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTweenDuration is used when a tween is started with a zero duration.
const DefaultTweenDuration = time.Second

// CameraTween animates a position between two points, one gween tween per
// axis. At most one animation is active; Start replaces any running one.
type CameraTween struct {
	from, to   Vec3
	duration   time.Duration
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	tweenZ     *gween.Tween
	doneX      bool
	doneY      bool
	doneZ      bool
	running    bool
	onComplete func()
}

// Start begins animating from → to over d with easing fn. A zero d uses
// DefaultTweenDuration and a nil fn uses ease.Linear. A running animation is
// replaced and its onComplete is dropped without being called.
func (t *CameraTween) Start(from, to Vec3, d time.Duration, fn ease.TweenFunc, onComplete func()) {
	if d <= 0 {
		d = DefaultTweenDuration
	}
	if fn == nil {
		fn = ease.Linear
	}
	secs := float32(d.Seconds())
	t.from, t.to = from, to
	t.duration = d
	t.tweenX = gween.New(float32(from.X), float32(to.X), secs, fn)
	t.tweenY = gween.New(float32(from.Y), float32(to.Y), secs, fn)
	t.tweenZ = gween.New(float32(from.Z), float32(to.Z), secs, fn)
	t.doneX, t.doneY, t.doneZ = false, false, false
	t.running = true
	t.onComplete = onComplete
}

// Running reports whether an animation is in progress.
func (t *CameraTween) Running() bool {
	return t.running
}

// Target returns the end point of the current or most recent animation.
func (t *CameraTween) Target() Vec3 {
	return t.to
}

// Duration returns the duration of the current or most recent animation.
func (t *CameraTween) Duration() time.Duration {
	return t.duration
}

// Update advances the animation by dt seconds and passes the new position to
// apply. On the final step apply receives the exact target, the tween returns
// to idle, and then onComplete runs; it may start another animation. Update
// reports whether apply was called.
func (t *CameraTween) Update(dt float32, apply func(Vec3)) bool {
	if !t.running {
		return false
	}

	var pos Vec3
	if !t.doneX {
		v, done := t.tweenX.Update(dt)
		pos.X, t.doneX = float64(v), done
	} else {
		pos.X = t.to.X
	}
	if !t.doneY {
		v, done := t.tweenY.Update(dt)
		pos.Y, t.doneY = float64(v), done
	} else {
		pos.Y = t.to.Y
	}
	if !t.doneZ {
		v, done := t.tweenZ.Update(dt)
		pos.Z, t.doneZ = float64(v), done
	} else {
		pos.Z = t.to.Z
	}

	finished := t.doneX && t.doneY && t.doneZ
	if finished {
		// The per-axis tweens run in float32; land exactly on the target.
		pos = t.to
	}
	apply(pos)

	if finished {
		t.running = false
		t.tweenX, t.tweenY, t.tweenZ = nil, nil, nil
		cb := t.onComplete
		t.onComplete = nil
		if cb != nil {
			cb()
		}
	}
	return true
}
