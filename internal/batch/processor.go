// Package batch rigs many meshes with a worker pool: each job parses one
// OBJ vertex array, constructs a rig into its own scene, and writes the
// scene document plus a preview render.
package batch

import (
	"compress/gzip"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/log"

	"bodyrig/internal/meshio"
	"bodyrig/internal/preview"
	"bodyrig/internal/rig"
	"bodyrig/internal/scene"
)

// Config holds all shared resources for a batch run. The factory and
// texture are read-only and shared by every worker; each job writes to its
// own scene.
type Config struct {
	Factory   *rig.Factory
	OutputDir string

	PreviewSize int
	Supersample int
	WebPQuality int
	AngleDeg    float64
	Mode        preview.Mode
	Texture     *image.NRGBA
	Skeleton    bool
	GzipScenes  bool

	Workers int
}

// Result holds the outcome of rigging one mesh.
type Result struct {
	Name        string
	SceneID     string
	SceneFile   string
	PreviewFile string
	Vertices    int
	Bones       int
	Clusters    int
	Diagnostics []string
	Success     bool
	Error       string
}

// Run rigs all mesh files using a worker pool.
func Run(cfg Config, meshPaths []string) []Result {
	total := len(meshPaths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("rigging", "done", p, "total", total,
						"rate", fmt.Sprintf("%.1f/s", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processMesh(cfg, meshPaths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range meshPaths {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// writeScene exports the scene document, optionally gzip-compressed. The
// documents are large (full control-point arrays), so batch runs over many
// meshes usually want compression.
func writeScene(path string, sc *scene.Scene, gzipped bool) error {
	if !gzipped {
		return scene.WriteFile(path, sc)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := scene.Export(sc).Encode(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func processMesh(cfg Config, meshPath string) Result {
	name := strings.TrimSuffix(filepath.Base(meshPath), filepath.Ext(meshPath))
	res := Result{Name: name}

	vertices, err := meshio.ReadOBJFile(meshPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if len(vertices) == 0 {
		res.Error = fmt.Sprintf("no vertices in %s", meshPath)
		return res
	}
	res.Vertices = len(vertices)

	sc := scene.New()
	rigged := cfg.Factory.ConstructRig(vertices, sc)
	res.SceneID = sc.ID.String()
	res.Bones = len(rigged.Skeleton)
	for _, d := range rigged.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, d.String())
	}
	if mesh, ok := rigged.MeshNode.Attribute.(*scene.Mesh); ok {
		for _, skin := range mesh.Deformers {
			res.Clusters += len(skin.Clusters)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	res.SceneFile = name + ".scene.json"
	if cfg.GzipScenes {
		res.SceneFile += ".gz"
	}
	if err := writeScene(filepath.Join(cfg.OutputDir, res.SceneFile), sc, cfg.GzipScenes); err != nil {
		res.Error = err.Error()
		return res
	}

	img := preview.RenderRig(rigged, preview.Options{
		Size:        cfg.PreviewSize,
		Supersample: cfg.Supersample,
		AngleDeg:    cfg.AngleDeg,
		Mode:        cfg.Mode,
		Texture:     cfg.Texture,
		Skeleton:    cfg.Skeleton,
	})
	if cfg.Supersample > 1 {
		img = preview.Downsample(img, cfg.PreviewSize)
	}

	res.PreviewFile = name + ".webp"
	f, err := os.Create(filepath.Join(cfg.OutputDir, res.PreviewFile))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
