package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// maxSphereSegments keeps (w+1)*(h+1) below the uint16 index limit.
const maxSphereSegments = 180

// NewSphereGeometry builds a UV sphere centered at the origin. The seam sits
// at longitude -180° and U runs west to east, so an equirectangular texture
// maps with longitude 0 at U = 0.5. Segment counts are clamped to [3, 180]
// for width and [2, 180] for height.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = min(max(widthSegments, 3), maxSphereSegments)
	heightSegments = min(max(heightSegments, 2), maxSphereSegments)

	g := &Geometry{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint16, 0, widthSegments*heightSegments*6),
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := sphereNormal(u, v)
			g.Vertices = append(g.Vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				U:        u,
				V:        v,
			})
		}
	}

	row := widthSegments + 1
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint16(iy*row + ix + 1)
			b := uint16(iy*row + ix)
			c := uint16((iy+1)*row + ix)
			d := uint16((iy+1)*row + ix + 1)
			// The pole rows collapse to a point; skip their degenerate halves.
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// sphereNormal maps normalized texture coordinates to a unit sphere direction.
// u sweeps longitude, v sweeps polar angle from the north pole.
func sphereNormal(u, v float64) mgl64.Vec3 {
	phi := u * 2 * math.Pi
	theta := v * math.Pi
	sinTheta := math.Sin(theta)
	return mgl64.Vec3{
		-math.Cos(phi) * sinTheta,
		math.Cos(theta),
		math.Sin(phi) * sinTheta,
	}
}

// LatLngToVec returns the point at latitude lat and longitude lng (degrees) on
// a sphere of radius r, using the same mapping as NewSphereGeometry so that a
// marker placed here sits over the matching texel.
func LatLngToVec(lat, lng, r float64) Vec3 {
	u := (lng + 180) / 360
	v := (90 - lat) / 180
	return fromMgl(sphereNormal(u, v).Mul(r))
}

// NewPlaneGeometry builds a w×h quad in the XY plane facing +Z.
func NewPlaneGeometry(w, h float64) *Geometry {
	hw, hh := w/2, h/2
	n := mgl64.Vec3{0, 0, 1}
	return &Geometry{
		Vertices: []Vertex{
			{Position: mgl64.Vec3{-hw, hh, 0}, Normal: n, U: 0, V: 0},
			{Position: mgl64.Vec3{-hw, -hh, 0}, Normal: n, U: 0, V: 1},
			{Position: mgl64.Vec3{hw, -hh, 0}, Normal: n, U: 1, V: 1},
			{Position: mgl64.Vec3{hw, hh, 0}, Normal: n, U: 1, V: 0},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}
