package globe

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordPass logs the images it was handed.
type recordPass struct {
	swap     bool
	calls    []passCall
	disposed int
}

type passCall struct {
	write, read *ebiten.Image
	toScreen    bool
}

func (p *recordPass) Render(write, read *ebiten.Image, toScreen bool) {
	p.calls = append(p.calls, passCall{write, read, toScreen})
}

func (p *recordPass) NeedsSwap() bool { return p.swap }

func (p *recordPass) Dispose() { p.disposed++ }

func TestComposerSwapsOffscreen(t *testing.T) {
	c := NewComposer(8, 8)
	r0, w0 := c.read.Image(), c.write.Image()
	a := &recordPass{}
	b := &recordPass{swap: true}
	d := &recordPass{swap: true}
	c.AddPass(a)
	c.AddPass(b)
	c.AddPass(d)
	c.Render(nil)

	if got := a.calls[0]; got.read != r0 || got.write != w0 || got.toScreen {
		t.Error("first pass should read r0 and write w0")
	}
	if got := b.calls[0]; got.read != r0 || got.write != w0 {
		t.Error("no swap after a non-swapping pass")
	}
	if got := d.calls[0]; got.read != w0 || got.write != r0 {
		t.Error("third pass should read the second pass's output")
	}
	if c.Image() != r0 {
		t.Error("Image should return the last pass's output")
	}
}

func TestComposerRenderToScreen(t *testing.T) {
	c := NewComposer(8, 8)
	c.RenderToScreen = true
	w0 := c.write.Image()
	dst := ebiten.NewImage(8, 8)
	a := &recordPass{swap: true}
	b := &recordPass{swap: true}
	c.AddPass(a)
	c.AddPass(b)
	c.Render(dst)

	if a.calls[0].toScreen {
		t.Error("only the last pass goes to screen")
	}
	last := b.calls[0]
	if !last.toScreen || last.write != dst || last.read != w0 {
		t.Error("last pass should read the previous output and write dst")
	}
	if c.Image() != w0 {
		t.Error("no swap after the screen pass")
	}
}

func TestComposerRenderToScreenWithoutDst(t *testing.T) {
	c := NewComposer(8, 8)
	c.RenderToScreen = true
	p := &recordPass{swap: true}
	c.AddPass(p)
	c.Render(nil)
	if p.calls[0].toScreen {
		t.Error("a nil destination keeps the pass offscreen")
	}
}

func TestComposerSetSize(t *testing.T) {
	c := NewComposer(8, 8)
	c.SetSize(32, 16)
	if w, h := c.Size(); w != 32 || h != 16 {
		t.Errorf("Size = %dx%d, want 32x16", w, h)
	}
	if b := c.Image().Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("image = %v", b)
	}
}

func TestComposerDispose(t *testing.T) {
	c := NewComposer(8, 8)
	p := &recordPass{}
	c.AddPass(p)
	c.Dispose()
	c.Dispose()
	if p.disposed != 1 {
		t.Errorf("pass disposed %d times, want 1", p.disposed)
	}
	if !c.IsDisposed() || len(c.Passes()) != 0 {
		t.Error("composer should be disposed with no passes")
	}
	c.Render(nil) // no-op
}

func TestRenderPassTargets(t *testing.T) {
	mesh := NewMeshNode("plane", NewPlaneGeometry(4, 4), NewMaterial(nil))
	mesh.Material.Lit = false
	mesh.Material.Side = SideDouble
	root, cam := renderScene(mesh)
	r := NewRenderer()
	p := NewRenderPass(r, root, cam)
	if p.NeedsSwap() {
		t.Error("RenderPass should not swap")
	}

	write := ebiten.NewImage(16, 16)
	read := ebiten.NewImage(16, 16)
	p.Render(write, read, false)
	if r.Stats().Commands == 0 {
		t.Error("expected the plane to render")
	}
}

func TestBlurPassSwaps(t *testing.T) {
	p := NewBlurPass(4)
	if !p.NeedsSwap() {
		t.Error("BlurPass should swap")
	}
	p.Render(ebiten.NewImage(16, 16), ebiten.NewImage(16, 16), false)
	p.Dispose()
}
