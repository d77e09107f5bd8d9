package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"bodyrig/internal/rigassets"
)

// Dumps the contents of rig asset files: joint hierarchy, position spec
// coverage, cluster weight statistics and the validation report.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectassets <rig_assets.json> ...")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		assets, err := rigassets.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Load error %s: %v\n", arg, err)
			continue
		}
		fmt.Printf("\n=== %s ===\n", arg)

		tm := assets.TexturedMesh
		maxIdx := -1
		for _, f := range tm.Faces {
			for _, v := range f {
				if v > maxIdx {
					maxIdx = v
				}
			}
		}
		fmt.Printf("Mesh: faces=%d uv_indices=%d uv_values=%d max_vertex_index=%d texture=%q\n",
			len(tm.Faces), len(tm.UVIndices), len(tm.UVValues), maxIdx, tm.Texture)

		fmt.Printf("Joint tree: joints=%d depth=%d\n",
			assets.JointTree.Count(), assets.JointTree.Depth())
		printTree(assets.JointTree, 0, assets)

		// Joints appearing in spec or clusters but not in the tree
		warnings, err := assets.Validate()
		if err != nil {
			fmt.Printf("VALIDATION ERROR: %v\n", err)
		}
		for _, w := range warnings {
			fmt.Printf("WARNING: %s\n", w)
		}

		// Cluster weight statistics
		names := make([]string, 0, len(assets.Clusters))
		for name := range assets.Clusters {
			names = append(names, name)
		}
		sort.Strings(names)
		totalInfluences := 0
		fmt.Printf("--- Clusters (%d) ---\n", len(names))
		for _, name := range names {
			c := assets.Clusters[name]
			totalInfluences += len(c.Indices)
			minW, maxW, sumW := math.Inf(1), math.Inf(-1), 0.0
			for _, w := range c.Weights {
				if w < minW {
					minW = w
				}
				if w > maxW {
					maxW = w
				}
				sumW += w
			}
			mean := 0.0
			if len(c.Weights) > 0 {
				mean = sumW / float64(len(c.Weights))
			}
			fmt.Printf("  %-24s verts=%-6d w=[%.4f..%.4f] mean=%.4f\n",
				name, len(c.Indices), minW, maxW, mean)
		}
		fmt.Printf("Total influences: %d\n", totalInfluences)
	}
}

// printTree prints the joint hierarchy with per-joint annotations: how the
// joint is positioned and whether it carries a skin cluster.
func printTree(t *rigassets.JointTree, depth int, assets *rigassets.Assets) {
	if t == nil {
		return
	}
	annot := ""
	if spec, ok := assets.JointPositionSpec[t.Name]; ok {
		b := spec.Blend()
		annot = fmt.Sprintf(" refs=%d blend=(%.2f,%.2f,%.2f)",
			len(spec.ReferenceVertices), b[0], b[1], b[2])
	} else {
		annot = " (no position spec)"
	}
	if _, ok := assets.Clusters[t.Name]; ok {
		annot += " [SKINNED]"
	}
	fmt.Printf("  %s%s%s\n", strings.Repeat("  ", depth), t.Name, annot)
	for _, c := range t.Children {
		printTree(c, depth+1, assets)
	}
}
