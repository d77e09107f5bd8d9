// Package scene is a minimal retained scene graph: named nodes with
// parent-relative transforms, mesh attributes, skin deformers and pose
// snapshots. It is the output boundary of rig construction; persistence is
// a plain serialization of this structure (see export.go).
package scene

import (
	"github.com/google/uuid"

	"bodyrig/internal/mathutil"
)

// Scene owns a node hierarchy plus the skins and poses created in it.
// A scene is single-writer; concurrent rig constructions must each target
// their own Scene.
type Scene struct {
	ID    uuid.UUID
	root  *Node
	Poses []*Pose
}

// New creates an empty scene with a root node.
func New() *Scene {
	return &Scene{
		ID: uuid.New(),
		root: &Node{
			Name:          "RootNode",
			LocalRotation: mathutil.QuatIdentity(),
			LocalScale:    mathutil.Vec3{1, 1, 1},
		},
	}
}

// RootNode returns the scene root.
func (s *Scene) RootNode() *Node {
	return s.root
}

// NewNode creates a node with identity transform under the given parent.
// A nil parent attaches to the scene root.
func (s *Scene) NewNode(parent *Node, name string) *Node {
	if parent == nil {
		parent = s.root
	}
	n := &Node{
		Name:          name,
		Parent:        parent,
		LocalRotation: mathutil.QuatIdentity(),
		LocalScale:    mathutil.Vec3{1, 1, 1},
	}
	parent.Children = append(parent.Children, n)
	return n
}

// AttachMesh creates a mesh attribute on a new child node of the root.
func (s *Scene) AttachMesh(name string, controlPoints []mathutil.Vec3, faces, uvIndices [][4]int, uvValues [][2]float64) (*Node, *Mesh) {
	node := s.NewNode(s.root, name)
	mesh := &Mesh{
		ControlPoints: controlPoints,
		Faces:         faces,
		UVIndices:     uvIndices,
		UVValues:      uvValues,
	}
	node.SetAttribute(mesh)
	return node, mesh
}

// AddPose registers a pose snapshot with the scene.
func (s *Scene) AddPose(p *Pose) {
	s.Poses = append(s.Poses, p)
}
