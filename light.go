package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightKind selects how a Light contributes to shading.
type LightKind uint8

const (
	LightAmbient LightKind = iota // uniform contribution on every lit vertex
	LightSpot                     // cone from the node's world position toward Target
)

// Light is the payload of a NodeTypeLight node.
type Light struct {
	Kind LightKind
	// Color is the light color; alpha is ignored.
	Color Color
	// Intensity scales Color.
	Intensity float64
	// Target is the world point a spot light aims at.
	Target mgl64.Vec3
	// Angle is the spot cone half-angle in radians. Zero means an unbounded
	// cone (a point light aimed at Target).
	Angle float64
	// Penumbra is the fraction of the cone that fades out, in [0, 1].
	Penumbra float64
	// Enabled determines whether the light contributes. Disabled lights are
	// skipped entirely.
	Enabled bool
}

// spotSample is a spot light resolved to world space for one frame.
type spotSample struct {
	pos      mgl64.Vec3
	dir      mgl64.Vec3
	r, g, b  float64
	cosOuter float64
	cosInner float64
	cone     bool
}

// lightSet accumulates the scene's lights during traversal.
type lightSet struct {
	ambR, ambG, ambB float64
	spots            []spotSample
}

func (ls *lightSet) reset() {
	ls.ambR, ls.ambG, ls.ambB = 0, 0, 0
	ls.spots = ls.spots[:0]
}

// add resolves the light on n using n's current world transform.
func (ls *lightSet) add(n *Node) {
	l := n.Light
	if l == nil || !l.Enabled {
		return
	}
	r := l.Color.R * l.Intensity
	g := l.Color.G * l.Intensity
	b := l.Color.B * l.Intensity
	switch l.Kind {
	case LightAmbient:
		ls.ambR += r
		ls.ambG += g
		ls.ambB += b
	case LightSpot:
		pos := n.WorldPosition()
		dir := l.Target.Sub(pos)
		if dir.Len() < 1e-12 {
			return
		}
		s := spotSample{pos: pos, dir: dir.Normalize(), r: r, g: g, b: b}
		if l.Angle > 0 {
			s.cone = true
			s.cosOuter = math.Cos(l.Angle)
			s.cosInner = math.Cos(l.Angle * (1 - clamp01(l.Penumbra)))
		}
		ls.spots = append(ls.spots, s)
	}
}

// shade returns the Lambert light multiplier at world position p with unit
// normal n.
func (ls *lightSet) shade(p, n mgl64.Vec3) (r, g, b float64) {
	r, g, b = ls.ambR, ls.ambG, ls.ambB
	for i := range ls.spots {
		s := &ls.spots[i]
		toLight := s.pos.Sub(p)
		dist := toLight.Len()
		if dist < 1e-12 {
			continue
		}
		toLight = toLight.Mul(1 / dist)
		diffuse := n.Dot(toLight)
		if diffuse <= 0 {
			continue
		}
		if s.cone {
			diffuse *= smoothstep(s.cosOuter, s.cosInner, s.dir.Dot(toLight.Mul(-1)))
		}
		r += s.r * diffuse
		g += s.g * diffuse
		b += s.b * diffuse
	}
	return r, g, b
}

// smoothstep is 0 below e0, 1 above e1, and a cubic ramp between.
func smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		if x >= e1 {
			return 1
		}
		return 0
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}
