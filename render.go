package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// renderLayer orders commands before depth. Opaque geometry is drawn first so
// that transparent layers (clouds, sprites) composite over it.
type renderLayer uint8

const (
	layerOpaque renderLayer = iota
	layerTransparent
)

// drawCommand is a single screen-space primitive emitted during traversal: a
// triangle (n == 3) or a sprite quad (n == 4).
type drawCommand struct {
	layer renderLayer
	depth float64
	order int // emission order, for a stable sort
	verts [4]ebiten.Vertex
	n     uint8
	image *ebiten.Image
	blend BlendMode
}

// RenderStats describes the most recent Render call.
type RenderStats struct {
	Triangles int // triangles considered
	Culled    int // triangles rejected by face culling or the near plane
	Sprites   int // sprite quads emitted
	Commands  int // total commands submitted
	DrawCalls int // DrawTriangles calls
}

// projected is a mesh vertex resolved to world and screen space.
type projected struct {
	world   mgl64.Vec3
	normal  mgl64.Vec3
	sx, sy  float64
	depth   float64
	ok      bool
	r, g, b float64
}

// maxBatchVertices keeps batched vertex indices within uint16.
const maxBatchVertices = 65532

// Renderer turns a node tree and a camera into DrawTriangles calls. Meshes are
// transformed, face-culled, vertex-lit and projected on the CPU; the resulting
// triangles and sprite quads are depth sorted back to front and submitted in
// batches that share an image and blend mode.
type Renderer struct {
	// ClearColor fills the target before drawing.
	ClearColor Color

	lights   lightSet
	commands []drawCommand
	sortBuf  []drawCommand
	scratch  []projected
	verts    []ebiten.Vertex
	inds     []uint16
	order    int
	stats    RenderStats
}

// NewRenderer creates a renderer that clears to transparent.
func NewRenderer() *Renderer {
	return &Renderer{
		ClearColor: ColorTransparent,
		commands:   make([]drawCommand, 0, 4096),
		sortBuf:    make([]drawCommand, 0, 4096),
	}
}

// Stats returns counters from the most recent Render call.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Render clears dst and draws the subtree under root as seen by cam. The
// camera node must be part of the tree for its children to be drawn or lit.
func (r *Renderer) Render(root *Node, cam *PerspectiveCamera, dst *ebiten.Image) {
	r.stats = RenderStats{}
	r.commands = r.commands[:0]
	r.order = 0

	cam.update()
	updateWorldTransform(root, mgl64.Ident4())

	r.lights.reset()
	r.collectLights(root)

	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r.traverse(root, cam, w, h)
	r.mergeSort()

	if r.ClearColor == ColorTransparent {
		dst.Clear()
	} else {
		dst.Fill(r.ClearColor.toRGBA())
	}
	r.submit(dst)
	r.stats.Commands = len(r.commands)
}

func (r *Renderer) collectLights(n *Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeLight {
		r.lights.add(n)
	}
	for _, c := range n.children {
		r.collectLights(c)
	}
}

// traverse walks the tree depth-first and emits commands for visible meshes
// and sprites.
func (r *Renderer) traverse(n *Node, cam *PerspectiveCamera, w, h float64) {
	if !n.Visible {
		return
	}
	switch n.Type {
	case NodeTypeMesh:
		if n.Geometry != nil && n.Material != nil {
			r.emitMesh(n, cam, w, h)
		}
	case NodeTypeSprite:
		if n.Sprite != nil {
			r.emitSprite(n, cam, w, h)
		}
	}
	for _, c := range n.children {
		r.traverse(c, cam, w, h)
	}
}

func (r *Renderer) emitMesh(n *Node, cam *PerspectiveCamera, w, h float64) {
	geo, mat := n.Geometry, n.Material
	if len(geo.Vertices) == 0 || len(geo.Indices) < 3 {
		return
	}
	alpha := clamp01(mat.Color.A * mat.Opacity)
	if alpha == 0 {
		return
	}

	img := mat.Image
	var srcW, srcH, srcX0, srcY0 float64
	if img == nil {
		img = ensureWhitePixel()
	} else {
		ib := img.Bounds()
		srcX0, srcY0 = float64(ib.Min.X), float64(ib.Min.Y)
		srcW, srcH = float64(ib.Dx()), float64(ib.Dy())
	}

	layer := layerOpaque
	if alpha < 1 || mat.Blend != BlendNormal {
		layer = layerTransparent
	}

	// Resolve every vertex once; triangles share them.
	if cap(r.scratch) < len(geo.Vertices) {
		r.scratch = make([]projected, len(geo.Vertices))
	}
	pv := r.scratch[:len(geo.Vertices)]
	wt := n.worldTransform
	for i := range geo.Vertices {
		v := &geo.Vertices[i]
		p := &pv[i]
		p.world = transformPoint(wt, v.Position)
		p.normal = transformDir(wt, v.Normal)
		p.sx, p.sy, p.depth, p.ok = cam.project(p.world, w, h)
		if mat.Lit {
			p.r, p.g, p.b = r.lights.shade(p.world, p.normal)
			p.r += mat.Emissive
			p.g += mat.Emissive
			p.b += mat.Emissive
		} else {
			p.r, p.g, p.b = 1, 1, 1
		}
	}

	eye := cam.Position.mgl()
	for t := 0; t+2 < len(geo.Indices); t += 3 {
		r.stats.Triangles++
		i0, i1, i2 := geo.Indices[t], geo.Indices[t+1], geo.Indices[t+2]
		a, b, c := &pv[i0], &pv[i1], &pv[i2]
		if !a.ok || !b.ok || !c.ok {
			r.stats.Culled++
			continue
		}
		if !faceVisible(mat.Side, a.world, b.world, c.world, eye) {
			r.stats.Culled++
			continue
		}

		r.order++
		cmd := drawCommand{
			layer: layer,
			depth: (a.depth + b.depth + c.depth) / 3,
			order: r.order,
			n:     3,
			image: img,
			blend: mat.Blend,
		}
		for k, idx := range [3]uint16{i0, i1, i2} {
			p := &pv[idx]
			gv := &geo.Vertices[idx]
			sx, sy := 1.5, 1.5 // center of the white pixel
			if mat.Image != nil {
				sx = srcX0 + gv.U*srcW
				sy = srcY0 + gv.V*srcH
			}
			cmd.verts[k] = ebiten.Vertex{
				DstX:   float32(p.sx),
				DstY:   float32(p.sy),
				SrcX:   float32(sx),
				SrcY:   float32(sy),
				ColorR: float32(clamp01(p.r*mat.Color.R) * alpha),
				ColorG: float32(clamp01(p.g*mat.Color.G) * alpha),
				ColorB: float32(clamp01(p.b*mat.Color.B) * alpha),
				ColorA: float32(alpha),
			}
		}
		r.commands = append(r.commands, cmd)
	}
}

// faceVisible applies side culling to the world-space triangle (a, b, c) with
// counter-clockwise front faces.
func faceVisible(side Side, a, b, c, eye mgl64.Vec3) bool {
	if side == SideDouble {
		return true
	}
	normal := b.Sub(a).Cross(c.Sub(a))
	front := normal.Dot(eye.Sub(a)) > 0
	if side == SideBack {
		return !front
	}
	return front
}

// beyondHorizon reports whether p lies on the far side of a sphere of the
// given radius centered at the origin, as seen from eye.
func beyondHorizon(p, eye mgl64.Vec3, radius float64) bool {
	if radius <= 0 {
		return false
	}
	return p.Dot(eye.Sub(p)) < 0
}

func (r *Renderer) emitSprite(n *Node, cam *PerspectiveCamera, w, h float64) {
	s := n.Sprite
	if s.Image == nil || s.Color.A <= 0 {
		return
	}
	p := n.WorldPosition()
	if beyondHorizon(p, cam.Position.mgl(), s.Horizon) {
		return
	}
	sx, sy, depth, ok := cam.project(p, w, h)
	if !ok {
		return
	}

	qw, qh := s.Width, s.Height
	if s.SizeAttenuation {
		ppu := cam.pixelsPerUnit(depth, h)
		qw *= ppu
		qh *= ppu
	}
	if qw <= 0 || qh <= 0 {
		return
	}
	cx := sx + s.OffsetX
	cy := sy + s.OffsetY
	x0, y0 := float32(cx-qw/2), float32(cy-qh/2)
	x1, y1 := float32(cx+qw/2), float32(cy+qh/2)

	ib := s.Image.Bounds()
	u0, v0 := float32(ib.Min.X), float32(ib.Min.Y)
	u1, v1 := float32(ib.Max.X), float32(ib.Max.Y)

	a := clamp01(s.Color.A)
	cr := float32(clamp01(s.Color.R) * a)
	cg := float32(clamp01(s.Color.G) * a)
	cb := float32(clamp01(s.Color.B) * a)
	ca := float32(a)

	r.order++
	r.stats.Sprites++
	r.commands = append(r.commands, drawCommand{
		layer: layerTransparent,
		depth: depth + s.DepthBias,
		order: r.order,
		n:     4,
		image: s.Image,
		blend: s.Blend,
		verts: [4]ebiten.Vertex{
			{DstX: x0, DstY: y0, SrcX: u0, SrcY: v0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			{DstX: x1, DstY: y0, SrcX: u1, SrcY: v0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			{DstX: x1, DstY: y1, SrcX: u1, SrcY: v1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			{DstX: x0, DstY: y1, SrcX: u0, SrcY: v1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		},
	})
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should be drawn before or with b:
// lower layers first, then farther depth first. Using <= on order keeps the
// sort stable.
func commandLessOrEqual(a, b *drawCommand) bool {
	if a.layer != b.layer {
		return a.layer < b.layer
	}
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// mergeSort sorts r.commands in-place using r.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches its
// high-water mark.
func (r *Renderer) mergeSort() {
	n := len(r.commands)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]drawCommand, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.commands
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.commands, r.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []drawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Submission ---

// submit walks the sorted commands and issues one DrawTriangles call per run
// of commands sharing an image and blend mode.
func (r *Renderer) submit(dst *ebiten.Image) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	var (
		curImg   *ebiten.Image
		curBlend BlendMode
	)
	for i := range r.commands {
		cmd := &r.commands[i]
		if cmd.image != curImg || cmd.blend != curBlend || len(r.verts)+int(cmd.n) > maxBatchVertices {
			r.flush(dst, curImg, curBlend)
			curImg, curBlend = cmd.image, cmd.blend
		}
		base := uint16(len(r.verts))
		r.verts = append(r.verts, cmd.verts[:cmd.n]...)
		if cmd.n == 3 {
			r.inds = append(r.inds, base, base+1, base+2)
		} else {
			r.inds = append(r.inds, base, base+1, base+2, base, base+2, base+3)
		}
	}
	r.flush(dst, curImg, curBlend)
}

func (r *Renderer) flush(dst, img *ebiten.Image, blend BlendMode) {
	if len(r.inds) == 0 || img == nil {
		r.verts = r.verts[:0]
		r.inds = r.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Filter = ebiten.FilterLinear
	op.Blend = blend.EbitenBlend()
	dst.DrawTriangles(r.verts, r.inds, img, &op)
	r.stats.DrawCalls++
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// sortedDepths returns the depth of each queued command in draw order.
// Tests use it to check the painter's ordering.
func (r *Renderer) sortedDepths() []float64 {
	out := make([]float64, len(r.commands))
	for i := range r.commands {
		out[i] = r.commands[i].depth
	}
	return out
}

// nearlyZero reports whether v is within 1e-9 of zero.
func nearlyZero(v float64) bool {
	return math.Abs(v) < 1e-9
}
