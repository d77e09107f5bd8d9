package scene

import (
	"bodyrig/internal/mathutil"
)

// Attribute is the payload a node can carry (mesh geometry or a skeleton
// limb marker).
type Attribute interface {
	attribute()
}

// SkeletonType mirrors the limb classification of FBX-style skeletons.
type SkeletonType int

const (
	SkeletonRoot SkeletonType = iota
	SkeletonLimbNode
)

// Skeleton marks a node as a bone.
type Skeleton struct {
	Type SkeletonType
}

func (*Skeleton) attribute() {}

// Node is one element of the scene graph. The stored transform components
// are local (parent-relative); world transforms are evaluated on demand up
// the ancestor chain.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node

	LocalTranslation mathutil.Vec3
	LocalRotation    mathutil.Quat
	LocalScale       mathutil.Vec3

	Attribute Attribute
}

// SetAttribute attaches a mesh or skeleton marker to the node.
func (n *Node) SetAttribute(a Attribute) {
	n.Attribute = a
	if m, ok := a.(*Mesh); ok {
		m.node = n
	}
}

// LocalTransform composes translation · rotation · scale into a 4×4 matrix.
// The same composition is used everywhere transforms are evaluated or
// inverted, which is what makes the indirect global-position solve valid.
func (n *Node) LocalTransform() mathutil.Mat4 {
	rs := mathutil.Mat3Mul(
		mathutil.QuatToMat3(n.LocalRotation),
		mathutil.Mat3Diag(n.LocalScale[0], n.LocalScale[1], n.LocalScale[2]),
	)
	return mathutil.FromMat3Translation(rs, n.LocalTranslation)
}

// GlobalTransform evaluates the world transform by chaining ancestors.
func (n *Node) GlobalTransform() mathutil.Mat4 {
	if n.Parent == nil {
		return n.LocalTransform()
	}
	return mathutil.Mat4Mul(n.Parent.GlobalTransform(), n.LocalTransform())
}

// GlobalPosition is the world-space position of the node origin.
func (n *Node) GlobalPosition() mathutil.Vec3 {
	return n.GlobalTransform().Translation()
}

// Walk visits the node and all descendants, parent before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
