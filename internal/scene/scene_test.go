package scene_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyrig/internal/mathutil"
	"bodyrig/internal/scene"
)

func TestNewSceneHasIdentityRoot(t *testing.T) {
	sc := scene.New()
	root := sc.RootNode()

	require.Equal(t, "RootNode", root.Name)
	require.Nil(t, root.Parent)
	require.True(t, root.GlobalTransform().IsIdentity())
	require.NotEqual(t, "", sc.ID.String())
}

func TestNewNodeDefaultsAndParenting(t *testing.T) {
	sc := scene.New()
	a := sc.NewNode(nil, "a")
	b := sc.NewNode(a, "b")

	require.Same(t, sc.RootNode(), a.Parent)
	require.Same(t, a, b.Parent)
	require.Equal(t, []*scene.Node{b}, a.Children)
	require.Equal(t, mathutil.Vec3{1, 1, 1}, a.LocalScale)
	require.Equal(t, mathutil.QuatIdentity(), a.LocalRotation)
}

func TestGlobalTransformComposesDownTheChain(t *testing.T) {
	sc := scene.New()
	a := sc.NewNode(nil, "a")
	a.LocalTranslation = mathutil.Vec3{1, 0, 0}
	a.LocalRotation = mathutil.EulerToQuat(0, 0, math.Pi/2)

	b := sc.NewNode(a, "b")
	b.LocalTranslation = mathutil.Vec3{1, 0, 0}

	// b's local +X is rotated onto world +Y by its parent.
	p := b.GlobalPosition()
	require.InDelta(t, 1.0, p[0], 1e-9)
	require.InDelta(t, 1.0, p[1], 1e-9)
	require.InDelta(t, 0.0, p[2], 1e-9)
}

func TestGlobalTransformAppliesParentScale(t *testing.T) {
	sc := scene.New()
	a := sc.NewNode(nil, "a")
	a.LocalScale = mathutil.Vec3{2, 2, 2}

	b := sc.NewNode(a, "b")
	b.LocalTranslation = mathutil.Vec3{1, 2, 3}

	p := b.GlobalPosition()
	require.InDelta(t, 2.0, p[0], 1e-9)
	require.InDelta(t, 4.0, p[1], 1e-9)
	require.InDelta(t, 6.0, p[2], 1e-9)
}

func TestAttachMeshWiresNode(t *testing.T) {
	sc := scene.New()
	verts := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	faces := [][4]int{{0, 1, 2, 3}}

	node, mesh := sc.AttachMesh("body", verts, faces, nil, nil)
	require.Same(t, node, mesh.Node())
	require.Same(t, mesh, node.Attribute)
	require.Len(t, mesh.ControlPoints, 4)
}

func TestClusterAccumulatesControlPoints(t *testing.T) {
	sc := scene.New()
	bone := sc.NewNode(nil, "bone")

	c := scene.NewCluster(bone, scene.LinkModeNormalize)
	c.AddControlPoint(3, 0.25)
	c.AddControlPoint(7, 0.75)

	require.Equal(t, []int{3, 7}, c.Indices)
	require.Equal(t, []float64{0.25, 0.75}, c.Weights)
	require.Same(t, bone, c.Link)
}

func TestExportFlattensPreOrderWithParentIndices(t *testing.T) {
	sc := scene.New()
	a := sc.NewNode(nil, "a")
	a.SetAttribute(&scene.Skeleton{Type: scene.SkeletonLimbNode})
	b := sc.NewNode(a, "b")
	b.SetAttribute(&scene.Skeleton{Type: scene.SkeletonLimbNode})
	sc.NewNode(nil, "c")

	doc := scene.Export(sc)

	require.Equal(t, "bodyrig-scene", doc.Format)
	require.Equal(t, 1, doc.Version)
	require.Equal(t, sc.ID.String(), doc.SceneID)

	names := make([]string, len(doc.Nodes))
	parents := make([]int, len(doc.Nodes))
	for i, n := range doc.Nodes {
		names[i] = n.Name
		parents[i] = n.Parent
	}
	require.Equal(t, []string{"RootNode", "a", "b", "c"}, names)
	require.Equal(t, []int{-1, 0, 1, 0}, parents)
	require.False(t, doc.Nodes[0].Limb)
	require.True(t, doc.Nodes[1].Limb)
	require.True(t, doc.Nodes[2].Limb)
}

func TestExportSerializesMeshSkinAndBindPose(t *testing.T) {
	sc := scene.New()
	verts := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	faces := [][4]int{{0, 1, 2, 3}}
	meshNode, mesh := sc.AttachMesh("body", verts, faces, [][4]int{{0, 1, 2, 3}}, [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})

	bone := sc.NewNode(nil, "bone")
	bone.LocalTranslation = mathutil.Vec3{0, 1, 0}

	skin := scene.NewSkin()
	cluster := scene.NewCluster(bone, scene.LinkModeNormalize)
	cluster.AddControlPoint(0, 1.0)
	cluster.AddControlPoint(1, 0.5)
	cluster.SetTransformLink(bone.GlobalTransform())
	skin.AddCluster(cluster)
	mesh.AddDeformer(skin)

	pose := scene.NewBindPose()
	pose.Add(meshNode, meshNode.GlobalTransform())
	pose.Add(bone, bone.GlobalTransform())
	sc.AddPose(pose)

	doc := scene.Export(sc)

	require.Len(t, doc.Meshes, 1)
	require.Equal(t, faces, doc.Meshes[0].Faces)
	require.NotNil(t, doc.Nodes[1].Mesh)
	require.Equal(t, 0, *doc.Nodes[1].Mesh)

	require.Len(t, doc.Skins, 1)
	require.Equal(t, 0, doc.Skins[0].Mesh)
	require.Len(t, doc.Skins[0].Clusters, 1)
	dc := doc.Skins[0].Clusters[0]
	require.Equal(t, 2, dc.Link) // root=0, body=1, bone=2
	require.Equal(t, "normalize", dc.Mode)
	require.Equal(t, []int{0, 1}, dc.Indices)
	require.Equal(t, []float64{1.0, 0.5}, dc.Weights)
	require.InDelta(t, 1.0, dc.TransformLink[7], 1e-9) // bone y translation

	require.Len(t, doc.Poses, 1)
	require.True(t, doc.Poses[0].BindPose)
	require.Len(t, doc.Poses[0].Entries, 2)
	require.Equal(t, 1, doc.Poses[0].Entries[0].Node)
	require.Equal(t, 2, doc.Poses[0].Entries[1].Node)
}

func TestDocumentEncodesAsJSON(t *testing.T) {
	sc := scene.New()
	sc.NewNode(nil, "a")

	var buf bytes.Buffer
	require.NoError(t, scene.Export(sc).Encode(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "bodyrig-scene", decoded["format"])
	require.Equal(t, float64(1), decoded["version"])
}
