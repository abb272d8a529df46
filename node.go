package globe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter (no atomic; globe is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for groups,
// meshes, sprites and lights so traversal never dispatches through an interface.
//
// The render core treats nodes as opaque: it attaches them, rotates them and
// disposes them. Everything else belongs to the factories in builder.go.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is Euler XYZ in radians.
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	Visible bool

	// Mesh fields (NodeTypeMesh).
	Geometry *Geometry
	Material *Material

	// Sprite fields (NodeTypeSprite).
	Sprite *Sprite

	// Light fields (NodeTypeLight).
	Light *Light

	// UserData is arbitrary caller data.
	UserData any

	// manualMatrix, when set, replaces the TRS local transform. The camera
	// uses it to place its children in view space.
	manualMatrix bool
	localMatrix  mgl64.Mat4

	worldTransform mgl64.Mat4

	// ownedImages are released on Dispose.
	ownedImages []*ebiten.Image

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.Visible = true
	n.worldTransform = mgl64.Ident4()
}

// NewGroup creates a group node. Groups have no visual output; they exist to
// transform their children together.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a mesh node that draws geo with mat.
func NewMeshNode(name string, geo *Geometry, mat *Material) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Geometry: geo, Material: mat}
	nodeDefaults(n)
	return n
}

// NewSpriteNode creates a camera-facing billboard node.
func NewSpriteNode(name string, sprite *Sprite) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Sprite: sprite}
	nodeDefaults(n)
	return n
}

// NewLightNode creates a light node. Lights shade meshes whose material is lit.
func NewLightNode(name string, l *Light) *Node {
	n := &Node{Name: name, Type: NodeTypeLight, Light: l}
	nodeDefaults(n)
	return n
}

// --- Hierarchy ---

// AddChild appends child to n's children. If child already has a parent it is
// removed from that parent first. Panics if child is n or an ancestor of n.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	if child == n || isAncestor(child, n) {
		panic("globe: AddChild would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. No-op if child is not a direct child.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first descendant with the given name, searching
// depth-first, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// SetMatrix replaces the TRS local transform with m until ClearMatrix is called.
func (n *Node) SetMatrix(m mgl64.Mat4) {
	n.manualMatrix = true
	n.localMatrix = m
}

// ClearMatrix returns the node to its Position/Rotation/Scale transform.
func (n *Node) ClearMatrix() {
	n.manualMatrix = false
}

// WorldTransform returns the world matrix computed by the most recent render.
func (n *Node) WorldTransform() mgl64.Mat4 {
	return n.worldTransform
}

// WorldPosition returns the translation part of the world matrix.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.worldTransform.Col(3).Vec3()
}

// OwnImage registers img to be deallocated when the node is disposed.
func (n *Node) OwnImage(img *ebiten.Image) {
	if img != nil {
		n.ownedImages = append(n.ownedImages, img)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, releases the images it owns, and
// recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	for _, img := range n.ownedImages {
		img.Deallocate()
	}
	n.ownedImages = nil
	n.children = nil
	n.Parent = nil
	n.Geometry = nil
	n.Material = nil
	n.Sprite = nil
	n.Light = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node.Parent; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
