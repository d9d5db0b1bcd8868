package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"minigl/internal/logging"
	"minigl/internal/output"
	"minigl/internal/raster"
	"minigl/internal/scene"
)

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame      int
	Angle      float64
	Image      string
	DepthImage string
	Stats      scene.DrawStats
	Coverage   map[raster.ID]int
	Success    bool
	Error      string
}

// Run renders cfg.Frames orbit frames of store using a worker pool. Each worker
// owns its rasterizer and depth buffer; the store is only read.
func Run(cfg Config, store *scene.Store) []Result {
	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Logger()

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
					log.Info("batch: progress", "done", p, "total", total, "fps", float64(p)/elapsed)
				}
			}
		}
	}()

	workers := max(cfg.Workers, 1)
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := raster.NewRasterizer(cfg.Width, cfg.Height)
			buf := raster.NewDepthBuffer(cfg.Width, cfg.Height, raster.NoObject)
			for frame := range frameChan {
				results[frame] = processFrame(cfg, store, r, buf, frame)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	log.Info("batch: finished", "frames", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// Render draws a single frame into a fresh depth buffer.
func Render(cfg Config, store *scene.Store, frame int) (*raster.DepthBuffer, scene.DrawStats, error) {
	r := raster.NewRasterizer(cfg.Width, cfg.Height)
	buf := raster.NewDepthBuffer(cfg.Width, cfg.Height, raster.NoObject)
	st, err := draw(cfg, store, r, buf, frame)
	return buf, st, err
}

func draw(cfg Config, store *scene.Store, r *raster.Rasterizer, buf *raster.DepthBuffer, frame int) (scene.DrawStats, error) {
	cam, err := cfg.Camera(frame)
	if err != nil {
		return scene.DrawStats{}, err
	}
	buf.Clear(raster.NoObject)
	return store.DrawAll(r, buf, cam)
}

func processFrame(cfg Config, store *scene.Store, r *raster.Rasterizer, buf *raster.DepthBuffer, frame int) Result {
	res := Result{Frame: frame, Angle: cfg.Angle(frame)}

	st, err := draw(cfg, store, r, buf, frame)
	res.Stats = st
	if err != nil {
		if st.Primitives == 0 {
			res.Error = err.Error()
			return res
		}
		// malformed primitives were skipped, the frame itself is usable
		logging.Logger().Warn("batch: frame drawn with errors", "frame", frame, "skipped", st.Malformed, "err", err)
		res.Error = err.Error()
	}
	res.Coverage = buf.Coverage()

	name := fmt.Sprintf("frame_%03d%s", frame, cfg.Format.Ext())
	img := output.Upscale(output.IDImage(buf, cfg.Background), cfg.Scale)
	if err := output.Save(filepath.Join(cfg.OutputDir, name), img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Image = name

	if cfg.Depth {
		dname := fmt.Sprintf("depth_%03d%s", frame, cfg.Format.Ext())
		dimg := output.Upscale(output.DepthImage(buf), cfg.Scale)
		if err := output.Save(filepath.Join(cfg.OutputDir, dname), dimg, cfg.Format); err != nil {
			res.Error = err.Error()
			return res
		}
		res.DepthImage = dname
	}

	res.Success = true
	logging.Logger().Debug("batch: frame done", "frame", frame, "drawn", st.Drawn, "culled", st.Culled)
	return res
}
