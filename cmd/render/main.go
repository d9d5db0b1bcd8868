package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"minigl/internal/batch"
	"minigl/internal/config"
	"minigl/internal/logging"
	"minigl/internal/scenefile"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .toml or .yaml)")
	sceneFile := flag.String("scene", "", "Path to scene YAML (overrides config)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	width := flag.Int("width", 0, "Frame width in pixels (default: 256)")
	height := flag.Int("height", 0, "Frame height in pixels (default: width)")
	scale := flag.Int("scale", 0, "Nearest-neighbour upscale factor (default: 1)")
	format := flag.String("format", "", "Image format: webp, tga, png, bmp (default: webp)")
	projection := flag.String("projection", "", "orthogonal or perspective (default: orthogonal)")
	frames := flag.Int("frames", 0, "Number of orbit frames (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Scene:      *sceneFile,
		OutputDir:  *outputDir,
		Width:      *width,
		Height:     *height,
		Scale:      *scale,
		Format:     *format,
		Projection: *projection,
		Frames:     *frames,
		Workers:    *workers,
	})

	batchCfg, err := batch.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, names, err := scenefile.LoadStore(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene: %s (%d objects, %d primitives)\n", cfg.Scene, len(store.Objects()), store.Len())
	fmt.Printf("Frames: %d, %dx%d %s, Workers: %d\n", batchCfg.Frames, batchCfg.Width, batchCfg.Height, batchCfg.Projection, batchCfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batchCfg, store)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
		}
		if r.Error != "" {
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(errors))
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results, names); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
