package globe

import "github.com/hajimehoshi/ebiten/v2"

// Pass is one step of a Composer chain.
type Pass interface {
	// Render reads the previous result from read and writes to write. When the
	// pass is the last of a composer that renders to screen, toScreen is true
	// and write is the destination image.
	Render(write, read *ebiten.Image, toScreen bool)
	// NeedsSwap reports whether the composer swaps its read and write targets
	// after this pass.
	NeedsSwap() bool
	// Dispose releases resources owned by the pass.
	Dispose()
}

// ImageSource supplies an image at draw time. A Composer is an ImageSource for
// its most recent output, which lets one composer feed another.
type ImageSource interface {
	Image() *ebiten.Image
}

// Composer runs a chain of passes over a pair of ping-pong render targets. Each
// composer owns its targets.
type Composer struct {
	// RenderToScreen sends the last pass to the destination passed to Render
	// instead of the composer's own targets.
	RenderToScreen bool

	passes      []Pass
	read, write *RenderTarget
	disposed    bool
}

// NewComposer creates a composer with two w×h targets.
func NewComposer(w, h int) *Composer {
	return &Composer{
		read:  NewRenderTarget(w, h),
		write: NewRenderTarget(w, h),
	}
}

// AddPass appends p to the chain.
func (c *Composer) AddPass(p Pass) {
	c.passes = append(c.passes, p)
}

// Passes returns the chain. The returned slice MUST NOT be mutated.
func (c *Composer) Passes() []Pass {
	return c.passes
}

// SetSize resizes both targets. Contents are discarded.
func (c *Composer) SetSize(w, h int) {
	c.read.Resize(w, h)
	c.write.Resize(w, h)
}

// Size returns the target dimensions.
func (c *Composer) Size() (w, h int) {
	return c.read.Width(), c.read.Height()
}

// Image returns the composer's latest off-screen result. After a chain that
// ends on screen this holds the input to the last pass.
func (c *Composer) Image() *ebiten.Image {
	return c.read.Image()
}

// Render runs every pass in order. dst is only written when RenderToScreen is
// set.
func (c *Composer) Render(dst *ebiten.Image) {
	if c.disposed {
		return
	}
	for i, p := range c.passes {
		toScreen := c.RenderToScreen && dst != nil && i == len(c.passes)-1
		write := c.write.Image()
		if toScreen {
			write = dst
		}
		p.Render(write, c.read.Image(), toScreen)
		if p.NeedsSwap() && !toScreen {
			c.read, c.write = c.write, c.read
		}
	}
}

// Dispose releases both targets and every pass.
func (c *Composer) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, p := range c.passes {
		p.Dispose()
	}
	c.passes = nil
	c.read.Dispose()
	c.write.Dispose()
}

// IsDisposed reports whether Dispose has been called.
func (c *Composer) IsDisposed() bool {
	return c.disposed
}

// --- RenderPass ---

// RenderPass draws a scene graph into the composer's read target so that the
// next pass can consume it.
type RenderPass struct {
	Renderer *Renderer
	Root     *Node
	Camera   *PerspectiveCamera
}

// NewRenderPass creates a pass that renders root through cam.
func NewRenderPass(r *Renderer, root *Node, cam *PerspectiveCamera) *RenderPass {
	return &RenderPass{Renderer: r, Root: root, Camera: cam}
}

func (p *RenderPass) Render(write, read *ebiten.Image, toScreen bool) {
	target := read
	if toScreen {
		target = write
	}
	p.Renderer.Render(p.Root, p.Camera, target)
}

func (p *RenderPass) NeedsSwap() bool { return false }

// Dispose is a no-op; the scene graph is owned elsewhere.
func (p *RenderPass) Dispose() {}

// --- BlurPass ---

// BlurPass runs a Filter over the previous result.
type BlurPass struct {
	Filter Filter
}

// NewBlurPass creates a Kawase blur pass with the given radius in pixels.
func NewBlurPass(radius int) *BlurPass {
	return &BlurPass{Filter: NewBlurFilter(radius)}
}

func (p *BlurPass) Render(write, read *ebiten.Image, toScreen bool) {
	if !toScreen {
		write.Clear()
	}
	p.Filter.Apply(read, write)
}

func (p *BlurPass) NeedsSwap() bool { return true }

func (p *BlurPass) Dispose() {
	p.Filter.Dispose()
}

// --- ShaderPass ---

// ShaderPass draws a full-target Kage shader with the previous result as
// Images[0]. Extra, when set, supplies Images[1]; it must match the target
// size.
type ShaderPass struct {
	Shader   *ebiten.Shader
	Uniforms map[string]any
	Extra    ImageSource
	Blend    BlendMode
	op       ebiten.DrawRectShaderOptions
}

// NewShaderPass creates a pass for shader.
func NewShaderPass(shader *ebiten.Shader) *ShaderPass {
	return &ShaderPass{
		Shader:   shader,
		Uniforms: make(map[string]any),
		Blend:    BlendNone,
	}
}

func (p *ShaderPass) Render(write, read *ebiten.Image, toScreen bool) {
	b := read.Bounds()
	p.op.Images[0] = read
	p.op.Images[1] = nil
	if p.Extra != nil {
		p.op.Images[1] = p.Extra.Image()
	}
	p.op.Uniforms = p.Uniforms
	p.op.Blend = p.Blend.EbitenBlend()
	write.DrawRectShader(b.Dx(), b.Dy(), p.Shader, &p.op)
}

func (p *ShaderPass) NeedsSwap() bool { return true }

// Dispose drops the image references; compiled shaders are shared.
func (p *ShaderPass) Dispose() {
	p.op.Images = [4]*ebiten.Image{}
	p.Extra = nil
}

// --- Additive blend shader ---

// additiveBlendShaderSrc adds Images[1], scaled by Strength, onto Images[0].
// Both inputs are premultiplied, so the sum stays premultiplied.
const additiveBlendShaderSrc = `//kage:unit pixels
package main

var Strength float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	base := imageSrc0At(src)
	glow := imageSrc1At(src)
	return min(base+glow*Strength, vec4(1))
}
`

// Lazy shader compilation (no sync.Once; globe is single-threaded).
var additiveBlendShader *ebiten.Shader

func ensureAdditiveBlendShader() *ebiten.Shader {
	if additiveBlendShader == nil {
		s, err := ebiten.NewShader([]byte(additiveBlendShaderSrc))
		if err != nil {
			panic("globe: failed to compile additive blend shader: " + err.Error())
		}
		additiveBlendShader = s
	}
	return additiveBlendShader
}

// NewAdditiveBlendPass creates a ShaderPass that adds glow onto the previous
// result at the given strength.
func NewAdditiveBlendPass(glow ImageSource, strength float64) *ShaderPass {
	p := NewShaderPass(ensureAdditiveBlendShader())
	p.Extra = glow
	p.Uniforms["Strength"] = float32(strength)
	return p
}
