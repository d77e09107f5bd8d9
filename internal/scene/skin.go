package scene

import (
	"bodyrig/internal/mathutil"
)

// LinkMode controls how cluster weights combine on a shared control point.
type LinkMode int

const (
	// LinkModeNormalize rescales the weights on each control point to sum
	// to one when the deformation is evaluated. Weights are stored as
	// authored; nothing is renormalized at bind time.
	LinkModeNormalize LinkMode = iota
	LinkModeAdditive
	LinkModeTotalOne
)

// Cluster binds one link node (a bone) to a weighted set of control points.
type Cluster struct {
	Link    *Node
	Mode    LinkMode
	Indices []int
	Weights []float64

	// TransformLink is the link node's global transform at bind time.
	TransformLink mathutil.Mat4
}

// NewCluster creates an empty cluster for the given link node.
func NewCluster(link *Node, mode LinkMode) *Cluster {
	return &Cluster{Link: link, Mode: mode}
}

// AddControlPoint appends one (vertex index, weight) influence pair.
func (c *Cluster) AddControlPoint(index int, weight float64) {
	c.Indices = append(c.Indices, index)
	c.Weights = append(c.Weights, weight)
}

// SetTransformLink snapshots the link node's global transform.
func (c *Cluster) SetTransformLink(m mathutil.Mat4) {
	c.TransformLink = m
}

// Skin aggregates the clusters deforming one mesh.
type Skin struct {
	Clusters []*Cluster

	mesh *Mesh
}

// NewSkin creates an empty skin deformer.
func NewSkin() *Skin {
	return &Skin{}
}

// AddCluster appends a cluster to the skin.
func (s *Skin) AddCluster(c *Cluster) {
	s.Clusters = append(s.Clusters, c)
}

// Mesh returns the mesh this skin deforms, nil until attached.
func (s *Skin) Mesh() *Mesh {
	return s.mesh
}
