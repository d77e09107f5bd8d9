package scene

import (
	"bodyrig/internal/mathutil"
)

// PoseEntry is one (node, global transform) snapshot.
type PoseEntry struct {
	Node   *Node
	Matrix mathutil.Mat4
}

// Pose records global transforms of a set of nodes at a point in time.
// Entries keep insertion order. Later edits to the scene do not update a
// recorded pose.
type Pose struct {
	IsBind  bool
	Entries []PoseEntry
}

// NewBindPose creates an empty pose flagged as a bind pose.
func NewBindPose() *Pose {
	return &Pose{IsBind: true}
}

// Add snapshots the given matrix for a node.
func (p *Pose) Add(n *Node, m mathutil.Mat4) {
	p.Entries = append(p.Entries, PoseEntry{Node: n, Matrix: m})
}
