package globe

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene graph factories. Each returns a detached node tree; callers attach it
// with AddChild and release it with Dispose. Generated textures are owned by
// the node that uses them.

// Names of the nodes built by buildScene.
const (
	NameEarthGroup    = "earthGroup"
	NameEarth         = "earth"
	NameCloud         = "cloud"
	NameLocationGroup = "locationGroup"
	NameGlowGroup     = "glowGroup"
	NameAmbientLight  = "ambientLight"
	NameSpotLight     = "spotLight"
)

// markerLift raises markers slightly above the surface so the earth never
// covers them.
const markerLift = 1.02

// NewAmbientLight creates a light that adds c·intensity to every lit vertex.
func NewAmbientLight(c Color, intensity float64) *Node {
	return NewLightNode(NameAmbientLight, &Light{
		Kind:      LightAmbient,
		Color:     c,
		Intensity: intensity,
		Enabled:   true,
	})
}

// NewSpotLight creates a spot light at offset, aimed at the world origin.
// Attach it to the camera so the offset is in view space and the lighting
// follows the viewer.
func NewSpotLight(c Color, intensity float64, offset Vec3) *Node {
	n := NewLightNode(NameSpotLight, &Light{
		Kind:      LightSpot,
		Color:     c,
		Intensity: intensity,
		Angle:     math.Pi / 5,
		Penumbra:  0.6,
		Enabled:   true,
	})
	n.Position = offset.mgl()
	return n
}

// NewEarth creates a lit sphere with a procedural equirectangular texture of
// texSize×texSize/2 pixels.
func NewEarth(radius float64, detail, texSize int) *Node {
	img := newImageFromPixels(earthPixels(texSize, max(texSize/2, 1)))
	mat := NewMaterial(img)
	n := NewMeshNode(NameEarth, NewSphereGeometry(radius, detail, detail/2), mat)
	n.OwnImage(img)
	return n
}

// NewCloud creates the semi-transparent cloud shell. The render loop spins it
// about Y.
func NewCloud(radius float64, detail, texSize int, opacity float64) *Node {
	img := newImageFromPixels(cloudPixels(texSize, max(texSize/2, 1), 0.45))
	mat := NewMaterial(img)
	mat.Opacity = clamp01(opacity)
	mat.Emissive = 0.15
	n := NewMeshNode(NameCloud, NewSphereGeometry(radius, detail, detail/2), mat)
	n.OwnImage(img)
	return n
}

// MarkerStyle controls how NewLocationMarker draws a location.
type MarkerStyle struct {
	// Dot is the shared marker image. Nil generates one owned by the marker.
	Dot *ebiten.Image
	// DotSize is the dot width in world units.
	DotSize float64
	Color   Color
	// LabelSize is the label font size in pixels. Zero omits the label.
	LabelSize  float64
	LabelColor Color
}

// DefaultMarkerStyle returns a style suitable for a radius-10 globe.
func DefaultMarkerStyle() MarkerStyle {
	return MarkerStyle{
		DotSize:    0.45,
		Color:      Color{1, 0.45, 0.2, 1},
		LabelSize:  22,
		LabelColor: ColorWhite,
	}
}

// NewLocationMarker creates a group holding a dot sprite, and optionally a
// text label, at loc's latitude and longitude just above a sphere of the given
// radius. Both sprites hide when they rotate behind the globe.
func NewLocationMarker(loc Location, radius float64, style MarkerStyle) (*Node, error) {
	g := NewGroup(loc.Name)
	pos := LatLngToVec(loc.Lat, loc.Lng, radius*markerLift).mgl()

	dotImg := style.Dot
	if dotImg == nil {
		dotImg = newImageFromPixels(markerPixels(32, ColorWhite))
		g.OwnImage(dotImg)
	}
	dot := NewSprite(dotImg, style.DotSize, style.DotSize)
	dot.Color = style.Color
	dot.Horizon = radius
	dot.DepthBias = -0.3
	dotNode := NewSpriteNode(loc.Name+".dot", dot)
	dotNode.Position = pos
	g.AddChild(dotNode)

	if style.LabelSize > 0 {
		img, err := newLabelImage(loc.Name, style.LabelSize, style.LabelColor)
		if err != nil {
			g.Dispose()
			return nil, fmt.Errorf("marker %q: %w", loc.Name, err)
		}
		b := img.Bounds()
		label := NewSprite(img, float64(b.Dx()), float64(b.Dy()))
		label.SizeAttenuation = false
		label.OffsetY = -float64(b.Dy())/2 - style.LabelSize*0.6
		label.Horizon = radius
		label.DepthBias = -0.5
		labelNode := NewSpriteNode(loc.Name+".label", label)
		labelNode.Position = pos
		labelNode.OwnImage(img)
		g.AddChild(labelNode)
	}
	return g, nil
}

// NewOuterGlow creates a billboard halo around a sphere of the given radius.
// It belongs in the blur scene, whose blurred output is added over the main
// scene.
func NewOuterGlow(radius float64, c Color, texSize int) *Node {
	const spread = 1.25
	img := newImageFromPixels(glowPixels(texSize, 1/spread, c))
	size := radius * 2 * spread
	n := NewSpriteNode("outerGlow", NewSprite(img, size, size))
	n.OwnImage(img)
	return n
}

// sceneGraph is the built scene: the main tree, the blur tree, and handles to
// the nodes the render loop animates.
type sceneGraph struct {
	root     *Node
	blurRoot *Node
	camera   *PerspectiveCamera

	earthGroup    *Node
	earth         *Node
	cloud         *Node
	locationGroup *Node
	glowGroup     *Node
	ambient       *Node
	spot          *Node
}

// buildScene assembles
//
//	root -> earthGroup{earth, cloud, locationGroup{markers...}}, camera{spot}, ambient
//	blurRoot -> glowGroup{outerGlow}
func buildScene(cfg Config, locs *LocationTable) (*sceneGraph, error) {
	aspect := float64(cfg.PageWidth) / float64(cfg.PageHeight)
	cam := NewPerspectiveCamera(cfg.FOV, aspect, cfg.Near, cfg.Far)
	cam.Position = cfg.CameraStart

	sg := &sceneGraph{
		root:          NewGroup("scene"),
		blurRoot:      NewGroup("blurScene"),
		camera:        cam,
		earthGroup:    NewGroup(NameEarthGroup),
		locationGroup: NewGroup(NameLocationGroup),
		glowGroup:     NewGroup(NameGlowGroup),
	}

	sg.earth = NewEarth(cfg.EarthRadius, cfg.SphereDetail, cfg.TextureSize)
	sg.cloud = NewCloud(cfg.CloudRadius, cfg.SphereDetail, cfg.TextureSize, cfg.CloudOpacity)
	sg.earthGroup.AddChild(sg.earth)
	sg.earthGroup.AddChild(sg.cloud)
	sg.earthGroup.AddChild(sg.locationGroup)
	sg.root.AddChild(sg.earthGroup)

	if cfg.ShowMarkers && locs.Len() > 0 {
		dot := newImageFromPixels(markerPixels(32, ColorWhite))
		sg.locationGroup.OwnImage(dot)
		style := DefaultMarkerStyle()
		style.Dot = dot
		style.DotSize = cfg.EarthRadius * 0.045
		style.Color = cfg.MarkerColor
		style.LabelSize = cfg.LabelSize
		for _, loc := range locs.Locations() {
			m, err := NewLocationMarker(loc, cfg.EarthRadius, style)
			if err != nil {
				sg.dispose()
				return nil, fmt.Errorf("globe: build scene: %w", err)
			}
			sg.locationGroup.AddChild(m)
		}
	}

	sg.ambient = NewAmbientLight(ColorWhite, cfg.AmbientLight)
	sg.spot = NewSpotLight(ColorWhite, cfg.SpotIntensity, Vec3{X: 8, Y: 8, Z: 0})
	cam.Add(sg.spot)

	sg.root.AddChild(cam.Node())
	sg.root.AddChild(sg.ambient)

	sg.glowGroup.AddChild(NewOuterGlow(cfg.EarthRadius, cfg.GlowColor, 256))
	sg.blurRoot.AddChild(sg.glowGroup)
	return sg, nil
}

// dispose releases both trees and every texture they own.
func (sg *sceneGraph) dispose() {
	sg.root.Dispose()
	sg.blurRoot.Dispose()
}
