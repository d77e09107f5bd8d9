package rigassets

import (
	"bodyrig/internal/mathutil"
)

// JointTree is one node of the skeletal hierarchy. Children are stored in
// bone-creation order; names must be unique across the whole tree.
type JointTree struct {
	Name     string       `json:"name"`
	Children []*JointTree `json:"children"`
}

// Walk visits this node and every descendant, parent before children.
func (t *JointTree) Walk(fn func(*JointTree)) {
	if t == nil {
		return
	}
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}

// Names returns every joint name in the tree in pre-order.
func (t *JointTree) Names() []string {
	var names []string
	t.Walk(func(n *JointTree) {
		names = append(names, n.Name)
	})
	return names
}

// Count returns the number of joints in the tree.
func (t *JointTree) Count() int {
	n := 0
	t.Walk(func(*JointTree) { n++ })
	return n
}

// Depth returns the maximum depth of the tree (root = 1).
func (t *JointTree) Depth() int {
	if t == nil {
		return 0
	}
	max := 0
	for _, c := range t.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// JointPositionSpec describes where a joint sits relative to the mesh: a list
// of reference vertex indices and a per-axis blend between their extrema.
// RelativePosition is optional in the JSON; absent means (0.5, 0.5, 0.5).
type JointPositionSpec struct {
	ReferenceVertices []int       `json:"reference_vertices"`
	RelativePosition  *[3]float64 `json:"relative_position,omitempty"`
}

// Blend returns the relative position, defaulting to the midpoint.
func (s JointPositionSpec) Blend() mathutil.Vec3 {
	if s.RelativePosition == nil {
		return mathutil.Vec3{0.5, 0.5, 0.5}
	}
	return mathutil.Vec3(*s.RelativePosition)
}

// ControlPointCluster holds the vertex indices a joint influences and the
// matching weights. The two slices are parallel; weights are stored as
// authored, normalization happens at deformation time.
type ControlPointCluster struct {
	Indices []int     `json:"indices"`
	Weights []float64 `json:"weights"`
}

// TexturedMesh holds the fixed quad topology and UV map shared by every
// mesh instance. Faces index into the per-instance vertex array.
type TexturedMesh struct {
	Faces     [][4]int     `json:"faces"`
	UVIndices [][4]int     `json:"uv_indices"`
	UVValues  [][2]float64 `json:"uv_values"`
	Texture   string       `json:"texture,omitempty"` // optional texture file name
}

// Assets bundles the static rig data: topology, hierarchy, joint placement
// rules and skin clusters. Loaded once and shared read-only across all rig
// constructions.
type Assets struct {
	TexturedMesh      TexturedMesh                   `json:"textured_mesh"`
	JointTree         *JointTree                     `json:"joint_tree"`
	JointPositionSpec map[string]JointPositionSpec   `json:"joint_position_spec"`
	Clusters          map[string]ControlPointCluster `json:"clusters"`
}
