// Package landmark derives world-space joint positions from anatomical
// reference vertices on a mesh.
//
// Each joint is placed between two extrema points taken from its reference
// vertices: with exactly two references the points themselves are the
// extrema (in stored order, so the blend is directional); with more than two
// the extrema are the componentwise min and max across all of them. The
// joint sits at v1 + (v2 - v1) ⊙ relativePosition. A single reference vertex
// places the joint exactly there, ignoring the relative position.
package landmark

import (
	"sort"

	"bodyrig/internal/mathutil"
	"bodyrig/internal/rigassets"
)

// Shoulders are special-cased anatomy: one third of the way from the neck
// toward each arm, overriding whatever the generic rule produced.
const shoulderFraction = 1.0 / 3.0

// Resolve computes a position for every joint in the spec. Vertex indices
// must be in range; that is the caller's contract. The returned names list
// joints that could not be placed (no reference vertices) or that the
// shoulder rule needed but did not find. Neither case is fatal.
func Resolve(vertices []mathutil.Vec3, spec map[string]rigassets.JointPositionSpec) (map[string]mathutil.Vec3, []string) {
	positions := make(map[string]mathutil.Vec3, len(spec))
	var missing []string

	for name, js := range spec {
		pos, ok := resolveOne(vertices, js)
		if !ok {
			missing = append(missing, name)
			continue
		}
		positions[name] = pos
	}

	missing = append(missing, applyShoulderRule(positions)...)
	sort.Strings(missing)
	return positions, missing
}

func resolveOne(vertices []mathutil.Vec3, js rigassets.JointPositionSpec) (mathutil.Vec3, bool) {
	refs := js.ReferenceVertices
	if len(refs) == 0 {
		return mathutil.Vec3{}, false
	}

	pts := make([]mathutil.Vec3, len(refs))
	for i, vi := range refs {
		pts[i] = vertices[vi]
	}

	if len(pts) == 1 {
		return pts[0], true
	}

	v1, v2 := pts[0], pts[len(pts)-1]
	if len(pts) > 2 {
		v1, v2 = pts[0], pts[0]
		for _, p := range pts[1:] {
			v1 = v1.Min(p)
			v2 = v2.Max(p)
		}
	}

	return v1.Add(v2.Sub(v1).Mul(js.Blend())), true
}

// applyShoulderRule inserts LeftShoulder and RightShoulder from the resolved
// Neck/LeftArm/RightArm positions. If any of the three is absent the rule is
// skipped entirely and the absent names are returned.
func applyShoulderRule(positions map[string]mathutil.Vec3) []string {
	var missing []string
	for _, name := range []string{"Neck", "LeftArm", "RightArm"} {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return missing
	}

	neck := positions["Neck"]
	positions["LeftShoulder"] = neck.Add(positions["LeftArm"].Sub(neck).Scale(shoulderFraction))
	positions["RightShoulder"] = neck.Add(positions["RightArm"].Sub(neck).Scale(shoulderFraction))
	return nil
}
