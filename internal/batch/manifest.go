package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one rigged mesh in the output manifest.
type ManifestEntry struct {
	Name        string   `json:"name"`
	SceneID     string   `json:"scene_id"`
	Scene       string   `json:"scene"`
	Preview     string   `json:"preview"`
	Vertices    int      `json:"vertices"`
	Bones       int      `json:"bones"`
	Clusters    int      `json:"clusters"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// WriteManifest writes manifest.json for all successfully rigged meshes.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:        r.Name,
			SceneID:     r.SceneID,
			Scene:       r.SceneFile,
			Preview:     r.PreviewFile,
			Vertices:    r.Vertices,
			Bones:       r.Bones,
			Clusters:    r.Clusters,
			Diagnostics: r.Diagnostics,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
