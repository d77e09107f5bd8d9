package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"bodyrig/internal/config"
	"bodyrig/internal/meshio"
)

// Fetches randomly generated body meshes from the mesh endpoint and writes
// them as vertex-only OBJ files, ready for cmd/rig.
func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	outDir := flag.String("out", "meshes", "Directory to write OBJ files")
	count := flag.Int("n", 5, "Number of meshes to generate")
	seed := flag.Int64("seed", 0, "Random seed (default: time-based)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatal("load config", "err", err)
		}
	}
	cfg.Resolve(config.Flags{})

	if cfg.AccessKey == "" || cfg.Secret == "" {
		log.Fatal("missing credentials: set access_key/secret in config or BODYKIT_ACCESS_KEY/BODYKIT_SECRET env vars")
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal("create output dir", "err", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	client := meshio.NewClient(cfg.MeshEndpoint, cfg.AccessKey, cfg.Secret,
		time.Duration(cfg.TimeoutSec)*time.Second)

	genders := []string{"female", "male"}
	fetched := 0
	for i := 0; i < *count; i++ {
		measurements := meshio.RandomMeasurements(rng)
		gender := genders[rng.Intn(len(genders))]

		log.Info("requesting mesh", "index", i,
			"height", fmt.Sprintf("%.1f", measurements["height"]),
			"weight", fmt.Sprintf("%.1f", measurements["weight"]),
			"gender", gender)

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.TimeoutSec)*time.Second)
		verts, err := client.GetMesh(ctx, measurements, gender)
		cancel()
		if err != nil {
			log.Error("mesh request failed", "index", i, "err", err)
			continue
		}

		path := filepath.Join(*outDir, fmt.Sprintf("mesh_%03d.obj", i))
		f, err := os.Create(path)
		if err != nil {
			log.Error("create file", "path", path, "err", err)
			continue
		}
		err = meshio.WriteOBJVertices(f, verts)
		f.Close()
		if err != nil {
			log.Error("write obj", "path", path, "err", err)
			continue
		}

		log.Info("wrote mesh", "path", path, "vertices", len(verts))
		fetched++
	}

	log.Info("done", "fetched", fmt.Sprintf("%d/%d", fetched, *count))
	if fetched == 0 && *count > 0 {
		os.Exit(1)
	}
}
