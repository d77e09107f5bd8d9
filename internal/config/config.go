package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and rigging/preview settings.
type Config struct {
	// Paths
	AssetsPath string `json:"assets_path"` // rig assets JSON
	MeshDir    string `json:"mesh_dir"`    // input OBJ meshes
	OutputDir  string `json:"output_dir"`
	TextureDir string `json:"texture_dir"` // optional, for textured previews

	// Preview settings
	PreviewSize int     `json:"preview_size"`
	Supersample int     `json:"supersample"`
	WebPQuality int     `json:"webp_quality"`
	AngleDeg    float64 `json:"angle_deg"`

	// Batch settings
	Workers    int  `json:"workers"`
	GzipScenes bool `json:"gzip_scenes"`

	// Mesh generation endpoint (cmd/fetchmesh)
	MeshEndpoint string `json:"mesh_endpoint"`
	AccessKey    string `json:"access_key"`
	Secret       string `json:"secret"`
	TimeoutSec   int    `json:"timeout_sec"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetsPath string
	MeshDir    string
	OutputDir  string
	Quality    int
	Workers    int
}

// Resolve fills in any empty fields with defaults. CLI flags take priority
// when non-zero/non-empty; credentials fall back to environment variables.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetsPath != "" {
		c.AssetsPath = flags.AssetsPath
	}
	if flags.MeshDir != "" {
		c.MeshDir = flags.MeshDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.AssetsPath == "" {
		c.AssetsPath = findAssets()
	}
	if c.MeshDir == "" {
		c.MeshDir = "meshes"
	}
	if c.OutputDir == "" {
		c.OutputDir = "rigged"
	}
	if c.TextureDir == "" && c.AssetsPath != "" {
		c.TextureDir = filepath.Dir(c.AssetsPath)
	}

	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.MeshEndpoint == "" {
		c.MeshEndpoint = "https://api.bodylabs.com/instant/mesh"
	}
	if c.AccessKey == "" {
		c.AccessKey = os.Getenv("BODYKIT_ACCESS_KEY")
	}
	if c.Secret == "" {
		c.Secret = os.Getenv("BODYKIT_SECRET")
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = 60
	}
}

// findAssets looks for rig_assets.json near the executable and the working
// directory.
func findAssets() string {
	var candidates []string

	if exe, _ := os.Executable(); exe != "" {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, "rig_assets.json"),
			filepath.Join(dir, "assets", "rig_assets.json"),
		)
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		candidates = append(candidates,
			filepath.Join(cwd, "rig_assets.json"),
			filepath.Join(cwd, "assets", "rig_assets.json"),
		)
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
