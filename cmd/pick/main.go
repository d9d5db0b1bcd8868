// Command pick renders one frame and reports the object visible at a pixel.
package main

import (
	"flag"
	"fmt"
	"os"

	"minigl/internal/batch"
	"minigl/internal/config"
	"minigl/internal/logging"
	"minigl/internal/raster"
	"minigl/internal/scenefile"
)

func main() {
	configFile := flag.String("config", "", "Path to config file")
	sceneFile := flag.String("scene", "", "Path to scene YAML (overrides config)")
	frame := flag.Int("frame", 0, "Orbit frame to render")
	x := flag.Int("x", -1, "Pixel column (default: centre)")
	y := flag.Int("y", -1, "Pixel row (default: centre)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Scene: *sceneFile})

	batchCfg, err := batch.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *frame < 0 || *frame >= batchCfg.Frames {
		fmt.Fprintf(os.Stderr, "Error: frame %d out of range [0, %d)\n", *frame, batchCfg.Frames)
		os.Exit(1)
	}

	store, names, err := scenefile.LoadStore(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	buf, st, err := batch.Render(batchCfg, store, *frame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	px, py := *x, *y
	if px < 0 {
		px = buf.Width() / 2
	}
	if py < 0 {
		py = buf.Height() / 2
	}

	depth, id, err := buf.Pick(px, py)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Frame %d (%.1f°): drawn=%d culled=%d malformed=%d\n",
		*frame, batchCfg.Angle(*frame), st.Drawn, st.Culled, st.Malformed)
	if id == raster.NoObject {
		fmt.Printf("(%d, %d): background\n", px, py)
		return
	}
	name, ok := names[id]
	if !ok {
		name = fmt.Sprintf("#%d", id)
	}
	fmt.Printf("(%d, %d): %s (id %d) depth %.4f\n", px, py, name, id, depth)
}
