package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"bodyrig/internal/batch"
	"bodyrig/internal/config"
	"bodyrig/internal/preview"
	"bodyrig/internal/rig"
	"bodyrig/internal/rigassets"
	"bodyrig/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	assetsPath := flag.String("assets", "", "Path to rig assets JSON (default: auto-detect)")
	meshDir := flag.String("meshes", "", "Directory of input OBJ meshes")
	outputDir := flag.String("output", "", "Output directory for scenes and previews")
	testN := flag.Int("test", 0, "Rig only first N meshes for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	weights := flag.Bool("weights", false, "Color previews by dominant cluster instead of texture")
	skeleton := flag.Bool("skeleton", true, "Overlay bone segments on previews")
	angle := flag.Float64("angle", 0, "Preview turntable angle in degrees")
	gzipScenes := flag.Bool("gzip", false, "Gzip-compress scene documents")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal("load config", "err", err)
		}
	}

	cfg.Resolve(config.Flags{
		AssetsPath: *assetsPath,
		MeshDir:    *meshDir,
		OutputDir:  *outputDir,
		Quality:    *quality,
		Workers:    *workers,
	})
	if *angle != 0 {
		cfg.AngleDeg = *angle
	}
	if *gzipScenes {
		cfg.GzipScenes = true
	}

	if cfg.AssetsPath == "" {
		log.Fatal("cannot find rig assets. Use -assets flag or config.json")
	}

	// Load and validate static rig assets
	assets, err := rigassets.Load(cfg.AssetsPath)
	if err != nil {
		log.Fatal("load assets", "err", err)
	}
	warnings, err := assets.Validate()
	if err != nil {
		log.Fatal("invalid assets", "err", err)
	}
	for _, w := range warnings {
		log.Warn("assets", "warning", w)
	}

	factory, err := rig.New(assets)
	if err != nil {
		log.Fatal("init factory", "err", err)
	}

	// Collect input meshes
	meshPaths, err := filepath.Glob(filepath.Join(cfg.MeshDir, "*.obj"))
	if err != nil {
		log.Fatal("scan meshes", "err", err)
	}
	sort.Strings(meshPaths)
	if *testN > 0 && *testN < len(meshPaths) {
		meshPaths = meshPaths[:*testN]
	}
	if len(meshPaths) == 0 {
		log.Info("no meshes to rig", "dir", cfg.MeshDir)
		os.Exit(0)
	}

	// Resolve the body texture for textured previews
	mode := preview.ModeTextured
	var tex *image.NRGBA
	if *weights {
		mode = preview.ModeWeights
	} else if assets.TexturedMesh.Texture != "" {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		texCache := texture.NewCache(texIndex)
		tex = texCache.Resolve(assets.TexturedMesh.Texture)
		if tex == nil {
			log.Warn("texture not found, previews will be untextured",
				"texture", assets.TexturedMesh.Texture, "dir", cfg.TextureDir)
		}
	}

	log.Info("bodyrig batch rigging",
		"meshes", len(meshPaths),
		"joints", assets.JointTree.Count(),
		"clusters", len(assets.Clusters),
		"workers", cfg.Workers,
		"output", cfg.OutputDir)

	start := time.Now()

	results := batch.Run(batch.Config{
		Factory:     factory,
		OutputDir:   cfg.OutputDir,
		PreviewSize: cfg.PreviewSize,
		Supersample: cfg.Supersample,
		WebPQuality: cfg.WebPQuality,
		AngleDeg:    cfg.AngleDeg,
		Mode:        mode,
		Texture:     tex,
		Skeleton:    *skeleton,
		GzipScenes:  cfg.GzipScenes,
		Workers:     cfg.Workers,
	}, meshPaths)

	elapsed := time.Since(start)

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	log.Info("done", "rigged", fmt.Sprintf("%d/%d", success, len(meshPaths)),
		"elapsed", fmt.Sprintf("%.1fs", elapsed.Seconds()))

	if len(errors) > 0 {
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			log.Error("failed", "mesh", e.Name, "err", e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warn("manifest write failed", "err", err)
	} else {
		log.Info("manifest written", "path", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
