package landmark_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bodyrig/internal/landmark"
	"bodyrig/internal/mathutil"
	"bodyrig/internal/rigassets"
)

func blend(x, y, z float64) *[3]float64 {
	return &[3]float64{x, y, z}
}

func TestSingleReferenceVertexIsExact(t *testing.T) {
	verts := []mathutil.Vec3{{1, 2, 3}, {9, 9, 9}}
	spec := map[string]rigassets.JointPositionSpec{
		// A non-midpoint blend must be ignored with one reference.
		"Hips": {ReferenceVertices: []int{0}, RelativePosition: blend(0.9, 0.1, 0.4)},
	}

	pos, missing := landmark.Resolve(verts, spec)
	require.NotEmpty(t, missing) // shoulder inputs absent
	require.Equal(t, mathutil.Vec3{1, 2, 3}, pos["Hips"])
}

func TestTwoReferencesBlendIsDirectional(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {10, 4, -2}}
	spec := map[string]rigassets.JointPositionSpec{
		"Fwd": {ReferenceVertices: []int{0, 1}, RelativePosition: blend(0.25, 0.25, 0.25)},
		"Rev": {ReferenceVertices: []int{1, 0}, RelativePosition: blend(0.25, 0.25, 0.25)},
	}

	pos, _ := landmark.Resolve(verts, spec)

	// Order matters with two references: the blend runs from the first
	// point toward the second, not between componentwise extrema.
	require.Equal(t, mathutil.Vec3{2.5, 1, -0.5}, pos["Fwd"])
	require.Equal(t, mathutil.Vec3{7.5, 3, -1.5}, pos["Rev"])
}

func TestDefaultBlendIsMidpoint(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {4, 6, 8}}
	spec := map[string]rigassets.JointPositionSpec{
		"Spine": {ReferenceVertices: []int{0, 1}},
	}

	pos, _ := landmark.Resolve(verts, spec)
	require.Equal(t, mathutil.Vec3{2, 3, 4}, pos["Spine"])
}

func TestManyReferencesUseBoundingBox(t *testing.T) {
	verts := []mathutil.Vec3{
		{5, 0, 3},
		{1, 9, 0},
		{3, 2, 7},
	}
	spec := map[string]rigassets.JointPositionSpec{
		"Min": {ReferenceVertices: []int{0, 1, 2}, RelativePosition: blend(0, 0, 0)},
		"Max": {ReferenceVertices: []int{0, 1, 2}, RelativePosition: blend(1, 1, 1)},
		"Mid": {ReferenceVertices: []int{0, 1, 2}},
	}

	pos, _ := landmark.Resolve(verts, spec)
	require.Equal(t, mathutil.Vec3{1, 0, 0}, pos["Min"])
	require.Equal(t, mathutil.Vec3{5, 9, 7}, pos["Max"])
	require.Equal(t, mathutil.Vec3{3, 4.5, 3.5}, pos["Mid"])
}

func TestBlendComponentsActIndependently(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {10, 10, 10}, {5, 5, 5}}
	spec := map[string]rigassets.JointPositionSpec{
		"J": {ReferenceVertices: []int{0, 1, 2}, RelativePosition: blend(0, 0.5, 1)},
	}

	pos, _ := landmark.Resolve(verts, spec)
	require.Equal(t, mathutil.Vec3{0, 5, 10}, pos["J"])
}

func TestShoulderRule(t *testing.T) {
	verts := []mathutil.Vec3{
		{0, 0, 0},  // Neck
		{3, 3, 3},  // LeftArm
		{-3, 3, 3}, // RightArm
	}
	spec := map[string]rigassets.JointPositionSpec{
		"Neck":     {ReferenceVertices: []int{0}},
		"LeftArm":  {ReferenceVertices: []int{1}},
		"RightArm": {ReferenceVertices: []int{2}},
	}

	pos, missing := landmark.Resolve(verts, spec)
	require.Empty(t, missing)
	require.Equal(t, mathutil.Vec3{1, 1, 1}, pos["LeftShoulder"])
	require.Equal(t, mathutil.Vec3{-1, 1, 1}, pos["RightShoulder"])
}

func TestShoulderRuleSkippedWhenInputMissing(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {3, 3, 3}}
	spec := map[string]rigassets.JointPositionSpec{
		"Neck":    {ReferenceVertices: []int{0}},
		"LeftArm": {ReferenceVertices: []int{1}},
	}

	pos, missing := landmark.Resolve(verts, spec)
	require.Equal(t, []string{"RightArm"}, missing)
	require.NotContains(t, pos, "LeftShoulder")
	require.NotContains(t, pos, "RightShoulder")
}

func TestEmptyReferenceListReportsJoint(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {3, 3, 3}, {-3, 3, 3}}
	spec := map[string]rigassets.JointPositionSpec{
		"Neck":     {ReferenceVertices: []int{0}},
		"LeftArm":  {ReferenceVertices: []int{1}},
		"RightArm": {ReferenceVertices: []int{2}},
		"Broken":   {},
	}

	pos, missing := landmark.Resolve(verts, spec)
	require.Equal(t, []string{"Broken"}, missing)
	require.NotContains(t, pos, "Broken")
	// The rest of the spec still resolves, shoulders included.
	require.Contains(t, pos, "LeftShoulder")
}

func TestMissingNamesAreSorted(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}}
	spec := map[string]rigassets.JointPositionSpec{
		"Zeta":  {},
		"Alpha": {},
		"Mid":   {},
	}

	_, missing := landmark.Resolve(verts, spec)
	require.Equal(t, []string{"Alpha", "LeftArm", "Mid", "Neck", "RightArm", "Zeta"}, missing)
}
