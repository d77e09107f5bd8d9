// Package rig turns a bare vertex array into a rigged scene: a mesh node,
// a bone hierarchy placed from anatomical landmarks, a skin deformer and a
// bind pose. The static rig data (topology, joint tree, position spec,
// clusters) is fixed per Factory and shared read-only across constructions;
// each construction writes into its own Scene, so distinct scenes may be
// rigged concurrently.
package rig

import (
	"fmt"

	"bodyrig/internal/landmark"
	"bodyrig/internal/mathutil"
	"bodyrig/internal/rigassets"
	"bodyrig/internal/scene"
)

// MeshNodeName is the node the body geometry attaches to.
const MeshNodeName = "body"

// Factory builds rigged scenes from per-individual vertex arrays.
type Factory struct {
	assets *rigassets.Assets
}

// New validates the assets and returns a factory. Duplicate joint names in
// the tree are rejected here: the flattened name → node map would silently
// lose a bone.
func New(assets *rigassets.Assets) (*Factory, error) {
	if _, err := assets.Validate(); err != nil {
		return nil, fmt.Errorf("rig: %w", err)
	}
	return &Factory{assets: assets}, nil
}

// Assets exposes the static rig data the factory was built with.
func (f *Factory) Assets() *rigassets.Assets {
	return f.assets
}

// Result is the outcome of one rig construction. The scene owns the nodes;
// the maps here are lookups into it.
type Result struct {
	MeshNode    *scene.Node
	Skeleton    map[string]*scene.Node
	Diagnostics []Diagnostic
}

// ConstructRig rigs one vertex array into the given scene: attaches the
// mesh, resolves landmark positions, extends the skeleton and binds the
// skin. The vertex array must match the topology the static assets were
// authored for; index validity is the caller's contract.
func (f *Factory) ConstructRig(vertices []mathutil.Vec3, sc *scene.Scene) *Result {
	tm := f.assets.TexturedMesh
	meshNode, _ := sc.AttachMesh(MeshNodeName, vertices, tm.Faces, tm.UVIndices, tm.UVValues)

	positions, unresolved := landmark.Resolve(vertices, f.assets.JointPositionSpec)

	var diags []Diagnostic
	for _, name := range unresolved {
		diags = append(diags, Diagnostic{Code: MissingLandmarkData, Joint: name})
	}

	skeleton := extendSkeleton(sc, sc.RootNode(), f.assets.JointTree, positions, &diags)
	f.addSkinAndBindPose(sc, skeleton, meshNode)

	return &Result{
		MeshNode:    meshNode,
		Skeleton:    skeleton,
		Diagnostics: diags,
	}
}
