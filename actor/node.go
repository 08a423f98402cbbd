package actor

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is an object of the scene graph.
// Its Local transform is expressed in the space of its parent (world space for roots).
type Node struct {
	Name  string
	Local Transform

	// Renderable geometry, nil for empty nodes (pivots, groups)
	Shape    Shape
	Material string
	// Collider is set on primitives built by NewPrimitive
	Collider bool

	active   bool
	parent   *Node
	children []*Node
}

// NewNode creates an active, empty node with an identity transform
func NewNode(name string) *Node {
	return &Node{
		Name:   name,
		Local:  NewTransform(),
		active: true,
	}
}

// NewPrimitive creates a renderable node with a collider, like a freshly spawned engine primitive
func NewPrimitive(name string, shape Shape) *Node {
	n := NewNode(name)
	n.Shape = shape
	n.Collider = true

	return n
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the direct children list
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// IsDescendantOf reports whether ancestor is n itself or one of its parents
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}

	return false
}

// SetParent attaches n to parent (nil detaches it to the scene root).
// With worldPositionStays the world pose is preserved, otherwise the local transform is kept.
// It returns false when the new parent would create a cycle.
func (n *Node) SetParent(parent *Node, worldPositionStays bool) bool {
	if parent == n.parent {
		return true
	}
	if parent != nil && parent.IsDescendantOf(n) {
		return false
	}

	position, rotation, scale := n.Position(), n.Rotation(), n.LossyScale()

	if n.parent != nil {
		n.parent.children = slices.DeleteFunc(n.parent.children, func(c *Node) bool { return c == n })
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	}

	if worldPositionStays {
		n.SetPosition(position)
		n.SetRotation(rotation)
		n.Local.Scale = scale
		if parent != nil {
			n.Local.Scale = DivideScale(scale, parent.LossyScale())
		}
	}

	return true
}

func (n *Node) ActiveSelf() bool {
	return n.active
}

func (n *Node) SetActive(active bool) {
	n.active = active
}

// ActiveInHierarchy is true when n and all its ancestors are active
func (n *Node) ActiveInHierarchy() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.active {
			return false
		}
	}

	return true
}

// WorldMatrix returns the local to world matrix
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.Local.Matrix()
	}

	return n.parent.WorldMatrix().Mul4(n.Local.Matrix())
}

// Position returns the world position
func (n *Node) Position() mgl64.Vec3 {
	if n.parent == nil {
		return n.Local.Position
	}

	return n.parent.TransformPoint(n.Local.Position)
}

// SetPosition moves the node to a world position
func (n *Node) SetPosition(position mgl64.Vec3) {
	if n.parent == nil {
		n.Local.Position = position
		return
	}
	n.Local.Position = n.parent.InverseTransformPoint(position)
}

// Rotation returns the world rotation
func (n *Node) Rotation() mgl64.Quat {
	if n.parent == nil {
		return n.Local.Rotation
	}

	return n.parent.Rotation().Mul(n.Local.Rotation).Normalize()
}

// SetRotation sets the world rotation
func (n *Node) SetRotation(rotation mgl64.Quat) {
	if n.parent == nil {
		n.Local.Rotation = rotation.Normalize()
		return
	}
	n.Local.Rotation = n.parent.Rotation().Inverse().Mul(rotation).Normalize()
}

// LossyScale approximates the world scale as the product of the local scales up to the root
func (n *Node) LossyScale() mgl64.Vec3 {
	scale := n.Local.Scale
	for cur := n.parent; cur != nil; cur = cur.parent {
		scale = MultiplyScale(scale, cur.Local.Scale)
	}

	return scale
}

// TransformPoint maps a point from local to world space, one local transform at a time up to the root
func (n *Node) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	point = n.Local.TransformPoint(point)
	if n.parent == nil {
		return point
	}

	return n.parent.TransformPoint(point)
}

// InverseTransformPoint maps a world point into local space.
// A singular world matrix (zero scale) only removes the translation.
func (n *Node) InverseTransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	if math.Abs(n.WorldMatrix().Det()) < 1e-12 {
		return point.Sub(n.Position())
	}

	return n.inverseTransformPoint(point)
}

// inverseTransformPoint undoes the local transforms from the root down, the chain must be invertible
func (n *Node) inverseTransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	if n.parent != nil {
		point = n.parent.inverseTransformPoint(point)
	}

	return n.Local.InverseTransformPoint(point)
}

func (n *Node) Forward() mgl64.Vec3 {
	return n.Rotation().Rotate(AxisForward)
}

func (n *Node) Up() mgl64.Vec3 {
	return n.Rotation().Rotate(AxisUp)
}

func (n *Node) Right() mgl64.Vec3 {
	return n.Rotation().Rotate(AxisRight)
}

// LookAt rotates the node so that its forward axis points at target
func (n *Node) LookAt(target, up mgl64.Vec3) {
	dir := target.Sub(n.Position())
	if dir.LenSqr() < 1e-12 {
		return
	}
	n.SetRotation(LookRotation(dir, up))
}

// Walk visits n and its descendants depth first
func (n *Node) Walk(fn func(node *Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// RenderBounds combines the world bounds of every active renderable node of the subtree
func (n *Node) RenderBounds() (AABB, bool) {
	var bounds AABB
	found := false

	n.Walk(func(node *Node) {
		if node.Shape == nil || !node.ActiveInHierarchy() {
			return
		}
		b := WorldBounds(node.Shape, node.WorldMatrix())
		if !found {
			bounds, found = b, true
			return
		}
		bounds = bounds.Encapsulate(b)
	})

	return bounds, found
}

// Bounds returns RenderBounds, or a unit box centered on the node when nothing is renderable
func (n *Node) Bounds() AABB {
	if b, ok := n.RenderBounds(); ok {
		return b
	}

	return NewAABBFromCenter(n.Position(), mgl64.Vec3{1, 1, 1})
}
