package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths within the asset
// directory. TGA files take priority over JPEG/PNG for the same stem
// (alpha channel).
type Index struct {
	entries map[string]string // stem.lower() → full path
}

var decodableExts = map[string]bool{
	".tga":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// BuildIndex scans assetDir and its subdirectories for texture files.
func BuildIndex(assetDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(assetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !decodableExts[ext] {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists {
			idx.entries[stem] = path
		} else if ext == ".tga" && strings.ToLower(filepath.Ext(existing)) != ".tga" {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// The name may carry a path prefix or extension from the authoring tool;
// only the stem matters.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
