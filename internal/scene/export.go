package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Flattened JSON document for a scene. Nodes are listed pre-order and
// referenced by index, so the document is self-contained and stable for a
// given scene regardless of map iteration order anywhere upstream.
type Document struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	SceneID string `json:"scene_id"`

	Nodes  []DocNode `json:"nodes"`
	Meshes []DocMesh `json:"meshes,omitempty"`
	Skins  []DocSkin `json:"skins,omitempty"`
	Poses  []DocPose `json:"poses,omitempty"`
}

type DocNode struct {
	Name        string     `json:"name"`
	Parent      int        `json:"parent"` // node index, -1 for the root
	Translation [3]float64 `json:"translation"`
	Rotation    [4]float64 `json:"rotation"`
	Scale       [3]float64 `json:"scale"`
	Mesh        *int       `json:"mesh,omitempty"` // index into Meshes
	Limb        bool       `json:"limb,omitempty"` // skeleton bone marker
}

type DocMesh struct {
	ControlPoints [][3]float64 `json:"control_points"`
	Faces         [][4]int     `json:"faces"`
	UVIndices     [][4]int     `json:"uv_indices,omitempty"`
	UVValues      [][2]float64 `json:"uv_values,omitempty"`
}

type DocSkin struct {
	Mesh     int          `json:"mesh"`
	Clusters []DocCluster `json:"clusters"`
}

type DocCluster struct {
	Link          int         `json:"link"` // node index
	Mode          string      `json:"mode"`
	Indices       []int       `json:"indices"`
	Weights       []float64   `json:"weights"`
	TransformLink [16]float64 `json:"transform_link"`
}

type DocPose struct {
	BindPose bool           `json:"bind_pose"`
	Entries  []DocPoseEntry `json:"entries"`
}

type DocPoseEntry struct {
	Node   int         `json:"node"`
	Matrix [16]float64 `json:"matrix"`
}

const (
	documentFormat  = "bodyrig-scene"
	documentVersion = 1
)

func linkModeName(m LinkMode) string {
	switch m {
	case LinkModeAdditive:
		return "additive"
	case LinkModeTotalOne:
		return "total_one"
	default:
		return "normalize"
	}
}

// Export flattens the scene into a serializable document.
func Export(s *Scene) *Document {
	doc := &Document{
		Format:  documentFormat,
		Version: documentVersion,
		SceneID: s.ID.String(),
	}

	// Pre-order node list with parent indices.
	nodeIndex := make(map[*Node]int)
	var meshes []*Mesh
	s.root.Walk(func(n *Node) {
		idx := len(doc.Nodes)
		nodeIndex[n] = idx

		parent := -1
		if n.Parent != nil {
			parent = nodeIndex[n.Parent]
		}
		dn := DocNode{
			Name:        n.Name,
			Parent:      parent,
			Translation: n.LocalTranslation,
			Rotation:    n.LocalRotation,
			Scale:       n.LocalScale,
		}

		switch a := n.Attribute.(type) {
		case *Mesh:
			mi := len(doc.Meshes)
			meshes = append(meshes, a)
			dn.Mesh = &mi

			cps := make([][3]float64, len(a.ControlPoints))
			for i, p := range a.ControlPoints {
				cps[i] = p
			}
			doc.Meshes = append(doc.Meshes, DocMesh{
				ControlPoints: cps,
				Faces:         a.Faces,
				UVIndices:     a.UVIndices,
				UVValues:      a.UVValues,
			})
		case *Skeleton:
			dn.Limb = true
		}

		doc.Nodes = append(doc.Nodes, dn)
	})

	// Skins, in mesh order then deformer order.
	for mi, m := range meshes {
		for _, skin := range m.Deformers {
			ds := DocSkin{Mesh: mi}
			for _, c := range skin.Clusters {
				ds.Clusters = append(ds.Clusters, DocCluster{
					Link:          nodeIndex[c.Link],
					Mode:          linkModeName(c.Mode),
					Indices:       c.Indices,
					Weights:       c.Weights,
					TransformLink: c.TransformLink,
				})
			}
			doc.Skins = append(doc.Skins, ds)
		}
	}

	// Poses keep insertion order.
	for _, p := range s.Poses {
		dp := DocPose{BindPose: p.IsBind}
		for _, e := range p.Entries {
			dp.Entries = append(dp.Entries, DocPoseEntry{
				Node:   nodeIndex[e.Node],
				Matrix: e.Matrix,
			})
		}
		doc.Poses = append(doc.Poses, dp)
	}

	return doc
}

// Encode writes the document as JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	return nil
}

// WriteFile exports the scene to a JSON file.
func WriteFile(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scene: create %s: %w", path, err)
	}
	defer f.Close()
	return Export(s).Encode(f)
}
