package rig

import (
	"sort"

	"bodyrig/internal/scene"
)

// addSkinAndBindPose attaches a skin deformer binding each boned joint to
// its control-point cluster and records the bind pose. Joints without
// cluster data simply drive no skin; cluster entries for joints absent from
// the skeleton are skipped without comment, since the static cluster tables
// may be authored for a superset of hierarchy variants.
//
// Weights go in exactly as authored. Per-vertex normalization across
// influencing joints is the deformer's job at evaluation time
// (LinkModeNormalize), not the binder's.
func (f *Factory) addSkinAndBindPose(sc *scene.Scene, nodeMap map[string]*scene.Node, meshNode *scene.Node) {
	mesh, ok := meshNode.Attribute.(*scene.Mesh)
	if !ok {
		return
	}

	skin := scene.NewSkin()
	bindPose := scene.NewBindPose()
	bindPose.Add(meshNode, meshNode.GlobalTransform())

	// Sorted joint order keeps cluster order and export output stable.
	names := make([]string, 0, len(nodeMap))
	for name := range nodeMap {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		clusterData, ok := f.assets.Clusters[name]
		if !ok {
			continue
		}
		node := nodeMap[name]

		cluster := scene.NewCluster(node, scene.LinkModeNormalize)
		for i, vi := range clusterData.Indices {
			cluster.AddControlPoint(vi, clusterData.Weights[i])
		}

		transform := node.GlobalTransform()
		cluster.SetTransformLink(transform)
		bindPose.Add(node, transform)
		skin.AddCluster(cluster)
	}

	mesh.AddDeformer(skin)
	sc.AddPose(bindPose)
}
