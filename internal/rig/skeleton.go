package rig

import (
	"bodyrig/internal/mathutil"
	"bodyrig/internal/rigassets"
	"bodyrig/internal/scene"
)

// extendSkeleton grows the bone hierarchy under parent following the joint
// tree, depth-first with parents created before children. Joints with a
// resolved position are moved there in world space; the rest stay at
// identity and get a diagnostic. Returns a flattened name → node map.
func extendSkeleton(sc *scene.Scene, parent *scene.Node, tree *rigassets.JointTree, positions map[string]mathutil.Vec3, diags *[]Diagnostic) map[string]*scene.Node {
	nodeMap := make(map[string]*scene.Node)

	node := sc.NewNode(parent, tree.Name)
	node.SetAttribute(&scene.Skeleton{Type: scene.SkeletonLimbNode})
	nodeMap[tree.Name] = node

	if pos, ok := positions[tree.Name]; ok {
		SetGlobalTranslation(node, pos)
	} else {
		*diags = append(*diags, Diagnostic{Code: MissingJointPosition, Joint: tree.Name})
	}

	for _, child := range tree.Children {
		for name, n := range extendSkeleton(sc, node, child, positions, diags) {
			nodeMap[name] = n
		}
	}
	return nodeMap
}
