package rig

import (
	"bodyrig/internal/mathutil"
	"bodyrig/internal/scene"
)

// SetGlobalTranslation moves a node so its world-space position equals
// target, preserving its local rotation and scale. A node's world transform
// is a non-commutative product over its ancestors, so the scene graph offers
// no global translation field to set directly; instead the new local
// translation is back-derived:
//
//	localT' = parentGlobal⁻¹ · desired · currentGlobal⁻¹ · parentGlobal · localT
//
// with desired a pure translation to target. The translation column of the
// product is the answer; the composition convention only has to match the
// one GlobalTransform evaluates with.
func SetGlobalTranslation(n *scene.Node, target mathutil.Vec3) {
	desired := mathutil.Mat4Translation(target)
	current := n.GlobalTransform()

	parentGlobal := mathutil.Mat4Identity()
	if n.Parent != nil {
		parentGlobal = n.Parent.GlobalTransform()
	}
	localT := mathutil.Mat4Translation(n.LocalTranslation)

	m := mathutil.Mat4Mul(parentGlobal.Inverse(), desired)
	m = mathutil.Mat4Mul(m, current.Inverse())
	m = mathutil.Mat4Mul(m, parentGlobal)
	m = mathutil.Mat4Mul(m, localT)

	n.LocalTranslation = m.Translation()
}
