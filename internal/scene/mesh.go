package scene

import (
	"bodyrig/internal/mathutil"
)

// Mesh is geometry attached to a node: control points, quad faces and a UV
// layer indexed per face vertex. Deformers (skins) accumulate in order.
type Mesh struct {
	ControlPoints []mathutil.Vec3
	Faces         [][4]int
	UVIndices     [][4]int
	UVValues      [][2]float64

	Deformers []*Skin

	node *Node
}

func (*Mesh) attribute() {}

// Node returns the node the mesh is attached to, nil if detached.
func (m *Mesh) Node() *Node {
	return m.node
}

// AddDeformer attaches a skin to the mesh.
func (m *Mesh) AddDeformer(s *Skin) {
	s.mesh = m
	m.Deformers = append(m.Deformers, s)
}
