package batch

import (
	"fmt"
	"image/color"
	"math"

	"minigl/internal/camera"
	"minigl/internal/config"
	"minigl/internal/mathutil"
	"minigl/internal/output"
)

// Config holds the resolved settings shared by every frame of a run.
type Config struct {
	OutputDir  string
	Width      int
	Height     int
	Scale      int
	Format     output.Format
	Background color.NRGBA
	Depth      bool

	Projection camera.Projection
	Near, Far  float64
	Extent     float64 // orthogonal half height of the view volume
	FOV        float64 // perspective vertical field of view, degrees
	Distance   float64
	Elevation  float64 // degrees

	Frames  int
	Orbit   float64 // degrees covered by all frames
	Workers int
}

// FromConfig converts a resolved config.Config.
func FromConfig(c config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	proj, _ := camera.ParseProjection(c.Projection)
	format, _ := output.ParseFormat(c.Format)
	bg, _ := output.ParseColor(c.Background)
	return Config{
		OutputDir:  c.OutputDir,
		Width:      c.Width,
		Height:     c.Height,
		Scale:      c.Scale,
		Format:     format,
		Background: bg,
		Depth:      c.Depth,
		Projection: proj,
		Near:       c.Near,
		Far:        c.Far,
		Extent:     c.Extent,
		FOV:        c.FOV,
		Distance:   c.Distance,
		Elevation:  c.Elevation,
		Frames:     c.Frames,
		Orbit:      c.Orbit,
		Workers:    c.Workers,
	}, nil
}

// Angle returns the orbit angle of frame in degrees.
func (c Config) Angle(frame int) float64 {
	if c.Frames <= 0 {
		return 0
	}
	return c.Orbit * float64(frame) / float64(c.Frames)
}

// Camera builds the camera for one orbit frame: the scene turns by the frame
// angle about Y, tilts by the elevation and is pushed Distance down -Z. The
// view volume is centred with +y up.
func (c Config) Camera(frame int) (*camera.Camera, error) {
	cam, err := camera.New(mathutil.RectXYWH(0, 0, float64(c.Width), float64(c.Height)), c.Near, c.Far)
	if err != nil {
		return nil, fmt.Errorf("batch: frame %d: %w", frame, err)
	}

	half := c.Extent
	if c.Projection == camera.Perspective {
		half = -c.Near * math.Tan(mathutil.Deg2Rad(c.FOV)/2)
	}
	aspect := float64(c.Width) / float64(c.Height)
	if err := cam.SetVolume(mathutil.Rect{Left: -half * aspect, Top: half, Right: half * aspect, Bottom: -half}); err != nil {
		return nil, fmt.Errorf("batch: frame %d: %w", frame, err)
	}

	view := cam.View()
	view.RotateY(-mathutil.Deg2Rad(c.Angle(frame)))
	view.RotateX(mathutil.Deg2Rad(c.Elevation))
	view.Translate(0, 0, -c.Distance)

	if err := cam.ComputeProjection(c.Projection); err != nil {
		return nil, fmt.Errorf("batch: frame %d: %w", frame, err)
	}
	return cam, nil
}
