package rigassets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrDuplicateJoint is returned by Validate when two tree nodes share a name.
// Downstream the name→node map would silently drop one of the bones, so this
// is rejected before any scene is built.
var ErrDuplicateJoint = errors.New("duplicate joint name in tree")

// Load reads a rig assets JSON file.
func Load(path string) (*Assets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rigassets: read %s: %w", path, err)
	}

	var a Assets
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("rigassets: parse %s: %w", path, err)
	}
	if a.JointTree == nil {
		return nil, fmt.Errorf("rigassets: %s has no joint_tree", path)
	}

	for name, c := range a.Clusters {
		if len(c.Indices) != len(c.Weights) {
			return nil, fmt.Errorf("rigassets: cluster %q: %d indices vs %d weights", name, len(c.Indices), len(c.Weights))
		}
	}

	return &a, nil
}

// Save writes the assets back out as indented JSON.
func (a *Assets) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("rigassets: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("rigassets: write %s: %w", path, err)
	}
	return nil
}

// Validate cross-checks the asset tables. Duplicate joint names in the tree
// are an error; position-spec or cluster entries naming joints absent from
// the tree are tolerated and returned as warnings, sorted for stable output.
func (a *Assets) Validate() ([]string, error) {
	inTree := make(map[string]bool)
	var dup string
	a.JointTree.Walk(func(n *JointTree) {
		if inTree[n.Name] && dup == "" {
			dup = n.Name
		}
		inTree[n.Name] = true
	})
	if dup != "" {
		return nil, fmt.Errorf("rigassets: %w: %q", ErrDuplicateJoint, dup)
	}

	var warnings []string
	for name := range a.JointPositionSpec {
		if !inTree[name] {
			warnings = append(warnings, fmt.Sprintf("position spec references joint %q not in tree", name))
		}
	}
	for name := range a.Clusters {
		if !inTree[name] {
			warnings = append(warnings, fmt.Sprintf("cluster references joint %q not in tree", name))
		}
	}
	sort.Strings(warnings)
	return warnings, nil
}
