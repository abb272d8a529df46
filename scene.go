package globe

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Globe is the top-level object. It owns the scene graph, the camera, the
// render pipeline and the camera tween, and implements ebiten.Game so it can
// be run directly with Run or embedded in a host game.
//
// Each tick runs, in order: auto-rotate, tween, cloud spin, orbit controls.
// Draw renders the result once; the first frame is drawn without
// post-processing and every later frame goes through the glow composers.
//
// A Draw with no tick since the previous Draw keeps the last frame. Run turns
// off Ebitengine's screen clearing, so the screen already holds it. When a
// host game leaves clearing on, Draw composites the last tick again instead.
type Globe struct {
	cfg       Config
	locations *LocationTable
	graph     *sceneGraph
	camera    *PerspectiveCamera
	pipeline  renderPipeline
	orbit     *OrbitControls
	tween     CameraTween

	autoRotate    bool
	rotationSpeed float64
	cloudSpeed    float64
	tweenDuration time.Duration

	// Render state
	started    bool
	frame      uint64
	drawnFrame uint64

	// screenCleared reports whether Ebitengine clears the screen before
	// every Draw.
	screenCleared func() bool

	// Clock
	now      func() time.Time
	lastTick time.Time
	ticked   bool

	sink  EventSink
	debug bool
	stats debugStats

	// ShowFPS draws the FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	fps     *fpsOverlay

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
	readFrame       func(*ebiten.Image) *image.RGBA
	script          *Script
	updateFunc      func() error

	disposed bool
}

// NewGlobe validates cfg and builds the scene, textures and render pipeline.
func NewGlobe(cfg Config) (*Globe, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	locs, err := NewLocationTable(cfg.Locations)
	if err != nil {
		return nil, fmt.Errorf("globe: %w", err)
	}
	sg, err := buildScene(cfg, locs)
	if err != nil {
		return nil, err
	}
	w, h := backingSize(cfg)
	p := newGlowPipeline(sg, w, h, cfg.GlowRadius, cfg.GlowStrength, cfg.ClearColor)
	return newGlobe(cfg, locs, sg, p), nil
}

// newGlobe wires an already-built scene graph and pipeline.
func newGlobe(cfg Config, locs *LocationTable, sg *sceneGraph, p renderPipeline) *Globe {
	orbit := NewOrbitControls()
	orbit.Enabled = cfg.OrbitEnabled
	orbit.RotateSpeed = cfg.OrbitRotateSpeed
	orbit.EnableDamping = cfg.OrbitDamping
	orbit.DampingFactor = cfg.DampingFactor

	return &Globe{
		cfg:           cfg,
		locations:     locs,
		graph:         sg,
		camera:        sg.camera,
		pipeline:      p,
		orbit:         orbit,
		autoRotate:    cfg.AutoRotate,
		rotationSpeed: cfg.RotationSpeed,
		cloudSpeed:    cfg.CloudSpeed,
		tweenDuration: cfg.TweenDuration,
		now:           time.Now,
		screenCleared: ebiten.IsScreenClearedEveryFrame,
		readFrame:     readScreen,
		ScreenshotDir: "screenshots",
	}
}

// backingSize returns the render buffer size: twice the page size.
func backingSize(cfg Config) (w, h int) {
	return cfg.PageWidth * 2, cfg.PageHeight * 2
}

// --- ebiten.Game ---

// Update advances one tick. It only returns an error from the function set
// with SetUpdateFunc.
func (g *Globe) Update() error {
	if g.disposed {
		return nil
	}
	if g.updateFunc != nil {
		if err := g.updateFunc(); err != nil {
			return err
		}
	}
	if g.script != nil {
		g.script.step(g)
	}

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	g.advance(g.tick())
	if g.debug {
		g.stats.animateTime = time.Since(t0)
	}

	g.frame++
	return nil
}

// Draw renders the most recent tick. A Draw with no new tick since the last
// one leaves the screen as it was, or recomposites it if the screen was
// cleared.
func (g *Globe) Draw(screen *ebiten.Image) {
	if g.disposed {
		return
	}
	if g.drawnFrame == g.frame {
		if g.started && g.screenCleared() {
			g.pipeline.RenderComposite(screen)
			g.drawOverlay(screen)
		}
		return
	}
	g.drawnFrame = g.frame

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	composited := g.render(screen)
	if g.debug {
		g.stats.renderTime = time.Since(t0)
		g.collectRenderStats()
		g.debugLog(g.stats)
	}

	if composited {
		g.flushScreenshots(screen)
	}
	g.drawOverlay(screen)
}

// drawOverlay draws the FPS counter over the frame.
func (g *Globe) drawOverlay(screen *ebiten.Image) {
	if !g.ShowFPS {
		return
	}
	if g.fps == nil {
		g.fps = newFPSOverlay()
	}
	g.fps.draw(screen, g.frame)
}

// Layout returns the backing buffer size, twice the page size.
func (g *Globe) Layout(outsideWidth, outsideHeight int) (int, int) {
	return backingSize(g.cfg)
}

// tick returns seconds since the previous tick. The first tick returns 0.
func (g *Globe) tick() float64 {
	t := g.now()
	if !g.ticked {
		g.ticked = true
		g.lastTick = t
		return 0
	}
	dt := t.Sub(g.lastTick).Seconds()
	g.lastTick = t
	return max(dt, 0)
}

// advance runs one tick of animation.
func (g *Globe) advance(dt float64) {
	if g.autoRotate {
		g.setCamera(RotateY(g.camera.Position, g.rotationSpeed))
	}

	g.tween.Update(float32(dt), g.setCamera)

	if g.graph.cloud != nil {
		g.graph.cloud.Rotation[1] += g.cloudSpeed
	}

	_, h := backingSize(g.cfg)
	g.orbit.HandleInput(float64(h))
	if next, ok := g.orbit.Update(g.camera.Position); ok {
		g.setCamera(next)
	}
}

// render draws the current scene and reports whether it went through the
// composers. The first call takes the direct path; every later call
// composites.
func (g *Globe) render(screen *ebiten.Image) bool {
	if !g.started {
		g.pipeline.RenderDirect(screen)
		g.started = true
		return false
	}
	g.pipeline.RenderComposite(screen)
	return true
}

func (g *Globe) setCamera(p Vec3) {
	g.camera.Position = p
}

// --- Control surface ---

// StartAutoRotate makes the camera circle the globe about the vertical axis.
func (g *Globe) StartAutoRotate() {
	g.autoRotate = true
}

// StopAutoRotate stops the automatic rotation. The camera stays where it is.
func (g *Globe) StopAutoRotate() {
	g.autoRotate = false
}

// AutoRotating reports whether auto-rotation is on.
func (g *Globe) AutoRotating() bool {
	return g.autoRotate
}

// SetCamera moves the camera immediately. A running tween keeps going and
// overwrites the position on its next step.
func (g *Globe) SetCamera(p Vec3) {
	g.setCamera(p)
}

// SetCameraXYZ is SetCamera(Vec3{x, y, z}).
func (g *Globe) SetCameraXYZ(x, y, z float64) {
	g.setCamera(Vec3{X: x, Y: y, Z: z})
}

// CameraPosition returns a copy of the camera position.
func (g *Globe) CameraPosition() Vec3 {
	return g.camera.Position
}

// RotateTo moves the camera linearly to the far position of the named
// location. onComplete, if non-nil, runs once the camera arrives. An unknown
// name does nothing and returns an error wrapping ErrUnknownLocation.
func (g *Globe) RotateTo(name string, onComplete func()) error {
	return g.navigate(name, ModeRotate, onComplete)
}

// ZoomInTo eases the camera in to the near position of the named location.
func (g *Globe) ZoomInTo(name string, onComplete func()) error {
	return g.navigate(name, ModeZoomIn, onComplete)
}

// ZoomOutTo eases the camera out to the far position of the named location.
func (g *Globe) ZoomOutTo(name string, onComplete func()) error {
	return g.navigate(name, ModeZoomOut, onComplete)
}

// Tweening reports whether a camera move is in progress.
func (g *Globe) Tweening() bool {
	return g.tween.Running()
}

func (g *Globe) navigate(name string, mode NavigationMode, onComplete func()) error {
	loc, ok := g.locations.Lookup(name)
	if !ok {
		if g.debug {
			_, _ = fmt.Fprintf(os.Stderr, "[globe] %s: unknown location %q\n", mode, name)
		}
		g.emit(NavigationEvent{Type: NavigationUnresolved, Mode: mode, Location: name})
		return fmt.Errorf("%s %q: %w", mode, name, ErrUnknownLocation)
	}

	var (
		target Vec3
		fn     ease.TweenFunc
	)
	switch mode {
	case ModeZoomIn:
		target, fn = loc.Near, ease.InQuad
	case ModeZoomOut:
		target, fn = loc.Far, ease.OutQuad
	default:
		target, fn = loc.Far, ease.Linear
	}

	if g.tween.Running() {
		g.emit(NavigationEvent{Type: NavigationSuperseded, Target: g.tween.Target()})
	}
	done := NavigationEvent{Type: NavigationCompleted, Mode: mode, Location: name, Target: target}
	g.tween.Start(g.camera.Position, target, g.tweenDuration, fn, func() {
		g.emit(done)
		if onComplete != nil {
			onComplete()
		}
	})
	g.emit(NavigationEvent{Type: NavigationStarted, Mode: mode, Location: name, Target: target})
	return nil
}

// --- Accessors ---

// Camera returns the scene camera.
func (g *Globe) Camera() *PerspectiveCamera {
	return g.camera
}

// Locations returns the location table.
func (g *Globe) Locations() *LocationTable {
	return g.locations
}

// Orbit returns the orbit controls.
func (g *Globe) Orbit() *OrbitControls {
	return g.orbit
}

// Root returns the main scene root. Nodes attached here are rendered and lit.
func (g *Globe) Root() *Node {
	return g.graph.root
}

// EarthGroup returns the group holding the earth, clouds and markers.
func (g *Globe) EarthGroup() *Node {
	return g.graph.earthGroup
}

// SetUpdateFunc sets a function called at the start of every Update, before
// any animation. Returning an error stops the game loop.
func (g *Globe) SetUpdateFunc(fn func() error) {
	g.updateFunc = fn
}

// SetEventSink sets the optional ECS bridge.
func (g *Globe) SetEventSink(sink EventSink) {
	g.sink = sink
}

func (g *Globe) emit(e NavigationEvent) {
	if g.sink != nil {
		g.sink.EmitNavigation(e)
	}
}

// SetDebugMode enables or disables per-frame timing stats and diagnostic
// messages on stderr.
func (g *Globe) SetDebugMode(enabled bool) {
	g.debug = enabled
}

// Dispose releases the render pipeline, every scene node and their textures.
// The Globe must not be used afterwards; Update and Draw become no-ops.
func (g *Globe) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.pipeline.Dispose()
	g.graph.dispose()
	if g.fps != nil {
		g.fps.dispose()
		g.fps = nil
	}
}

// IsDisposed reports whether Dispose has been called.
func (g *Globe) IsDisposed() bool {
	return g.disposed
}
