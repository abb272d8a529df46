package globe

import "github.com/hajimehoshi/ebiten/v2"

// renderPipeline is the render collaborator the Globe drives each frame.
type renderPipeline interface {
	// RenderDirect draws the scene straight to dst with no post-processing.
	RenderDirect(dst *ebiten.Image)
	// RenderComposite runs the glow composer and then the scene composer,
	// which blends the glow over the scene and writes to dst.
	RenderComposite(dst *ebiten.Image)
	Dispose()
}

// glowPipeline owns the renderer and both composers.
type glowPipeline struct {
	renderer *Renderer
	scene    *sceneGraph
	blur     *Composer
	final    *Composer
}

// newGlowPipeline builds the two composer chains at w×h:
//
//	blur:  RenderPass(blurRoot) -> BlurPass
//	final: RenderPass(root) -> additive blend with blur output -> dst
func newGlowPipeline(sg *sceneGraph, w, h, blurRadius int, strength float64, clear Color) *glowPipeline {
	r := NewRenderer()
	r.ClearColor = clear

	blur := NewComposer(w, h)
	blur.AddPass(NewRenderPass(r, sg.blurRoot, sg.camera))
	blur.AddPass(NewBlurPass(blurRadius))

	final := NewComposer(w, h)
	final.RenderToScreen = true
	final.AddPass(NewRenderPass(r, sg.root, sg.camera))
	final.AddPass(NewAdditiveBlendPass(blur, strength))

	return &glowPipeline{renderer: r, scene: sg, blur: blur, final: final}
}

func (p *glowPipeline) RenderDirect(dst *ebiten.Image) {
	p.renderer.Render(p.scene.root, p.scene.camera, dst)
}

func (p *glowPipeline) RenderComposite(dst *ebiten.Image) {
	p.resize(dst)
	p.blur.Render(nil)
	p.final.Render(dst)
}

// resize keeps the composer targets matched to dst, which the shader pass
// requires.
func (p *glowPipeline) resize(dst *ebiten.Image) {
	b := dst.Bounds()
	if w, h := p.final.Size(); w == b.Dx() && h == b.Dy() {
		return
	}
	p.blur.SetSize(b.Dx(), b.Dy())
	p.final.SetSize(b.Dx(), b.Dy())
}

func (p *glowPipeline) Dispose() {
	p.blur.Dispose()
	p.final.Dispose()
}
