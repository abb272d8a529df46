package globe

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Vertex is a mesh vertex in local space. U and V are normalized texture
// coordinates in [0, 1] with V increasing downward in the texture image.
type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	U, V     float64
}

// Geometry is an indexed triangle list. Front faces wind counter-clockwise
// when viewed from outside.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// TriangleCount returns len(Indices)/3.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Side selects which triangle faces a material draws.
type Side uint8

const (
	SideFront  Side = iota // cull faces pointing away from the camera
	SideBack               // cull faces pointing toward the camera
	SideDouble             // draw both
)

// Material describes how a mesh's triangles are shaded.
type Material struct {
	// Image is the texture sampled with the vertex UVs. Nil draws with a
	// white pixel tinted by Color.
	Image *ebiten.Image
	// Color tints the texture. Alpha multiplies Opacity.
	Color Color
	// Opacity in [0, 1].
	Opacity float64
	// Lit enables per-vertex Lambert shading from the scene's lights. Unlit
	// materials draw at full Color.
	Lit bool
	// Emissive is added to the light contribution of lit materials.
	Emissive float64
	Side     Side
	Blend    BlendMode
}

// NewMaterial returns an opaque, lit, front-sided material for img.
func NewMaterial(img *ebiten.Image) *Material {
	return &Material{
		Image:   img,
		Color:   ColorWhite,
		Opacity: 1,
		Lit:     true,
	}
}

// Sprite is a camera-facing quad anchored at its node's world position.
type Sprite struct {
	Image *ebiten.Image
	// Width and Height are world units when SizeAttenuation is true, pixels
	// otherwise.
	Width, Height   float64
	SizeAttenuation bool
	// OffsetX and OffsetY shift the quad in screen pixels after projection.
	OffsetX, OffsetY float64
	Color            Color
	Blend            BlendMode
	// DepthBias is added to the view depth used for sorting. Negative values
	// draw the sprite in front of geometry at the same depth.
	DepthBias float64
	// Horizon hides the sprite when it lies on the far side of a sphere of
	// this radius centered at the world origin. Zero disables the test.
	Horizon float64
}

// NewSprite returns a size-attenuated white sprite of the given world size.
func NewSprite(img *ebiten.Image, w, h float64) *Sprite {
	return &Sprite{
		Image:           img,
		Width:           w,
		Height:          h,
		SizeAttenuation: true,
		Color:           ColorWhite,
	}
}

// --- White pixel singleton (no sync.Once; globe is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 3x3 white image. Untextured
// meshes sample its center pixel so linear filtering never bleeds in black.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(3, 3)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
