package rigassets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyrig/internal/mathutil"
	"bodyrig/internal/rigassets"
)

func sampleAssets() *rigassets.Assets {
	rel := [3]float64{0.3, 0.5, 0.7}
	return &rigassets.Assets{
		TexturedMesh: rigassets.TexturedMesh{
			Faces:     [][4]int{{0, 1, 2, 3}},
			UVIndices: [][4]int{{0, 1, 2, 3}},
			UVValues:  [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
			Texture:   "body.png",
		},
		JointTree: &rigassets.JointTree{
			Name: "Hips",
			Children: []*rigassets.JointTree{
				{Name: "Spine", Children: []*rigassets.JointTree{{Name: "Neck"}}},
				{Name: "LeftUpLeg"},
			},
		},
		JointPositionSpec: map[string]rigassets.JointPositionSpec{
			"Hips":  {ReferenceVertices: []int{0, 1}, RelativePosition: &rel},
			"Spine": {ReferenceVertices: []int{2}},
		},
		Clusters: map[string]rigassets.ControlPointCluster{
			"Hips": {Indices: []int{0, 1, 2}, Weights: []float64{1, 0.5, 0.25}},
		},
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig_assets.json")
	require.NoError(t, sampleAssets().Save(path))

	loaded, err := rigassets.Load(path)
	require.NoError(t, err)
	require.Equal(t, sampleAssets(), loaded)
}

func TestLoadRejectsMissingJointTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig_assets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"textured_mesh":{}}`), 0644))

	_, err := rigassets.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "joint_tree")
}

func TestLoadRejectsMismatchedCluster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig_assets.json")
	data := `{
	  "joint_tree": {"name": "Hips"},
	  "clusters": {"Hips": {"indices": [0, 1], "weights": [1.0]}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := rigassets.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 indices vs 1 weights")
}

func TestBlendDefaultsToMidpoint(t *testing.T) {
	var spec rigassets.JointPositionSpec
	require.Equal(t, mathutil.Vec3{0.5, 0.5, 0.5}, spec.Blend())

	rel := [3]float64{0.1, 0.2, 0.3}
	spec.RelativePosition = &rel
	require.Equal(t, mathutil.Vec3{0.1, 0.2, 0.3}, spec.Blend())
}

func TestJointTreeWalkOrderAndCount(t *testing.T) {
	a := sampleAssets()
	require.Equal(t, []string{"Hips", "Spine", "Neck", "LeftUpLeg"}, a.JointTree.Names())
	require.Equal(t, 4, a.JointTree.Count())
	require.Equal(t, 3, a.JointTree.Depth())
}

func TestValidateAcceptsConsistentAssets(t *testing.T) {
	warnings, err := sampleAssets().Validate()
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateRejectsDuplicateJointNames(t *testing.T) {
	a := sampleAssets()
	a.JointTree.Children = append(a.JointTree.Children, &rigassets.JointTree{Name: "Spine"})

	_, err := a.Validate()
	require.ErrorIs(t, err, rigassets.ErrDuplicateJoint)
	require.Contains(t, err.Error(), `"Spine"`)
}

func TestValidateWarnsAboutOutOfTreeReferences(t *testing.T) {
	a := sampleAssets()
	a.JointPositionSpec["Tail"] = rigassets.JointPositionSpec{ReferenceVertices: []int{4}}
	a.Clusters["Wing"] = rigassets.ControlPointCluster{Indices: []int{0}, Weights: []float64{1}}

	warnings, err := a.Validate()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	require.Contains(t, warnings[0], `"Wing"`)
	require.Contains(t, warnings[1], `"Tail"`)
}
