package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"minigl/internal/raster"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame      int            `json:"frame"`
	Angle      float64        `json:"angle"`
	Image      string         `json:"image,omitempty"`
	DepthImage string         `json:"depth_image,omitempty"`
	Drawn      int            `json:"drawn"`
	Culled     int            `json:"culled"`
	Malformed  int            `json:"malformed"`
	Coverage   map[string]int `json:"coverage"`
	Error      string         `json:"error,omitempty"`
}

// WriteManifest writes the per-frame manifest to path. names maps object ids to
// the names used for coverage keys; unnamed ids use their number.
func WriteManifest(path string, results []Result, names map[raster.ID]string) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		cov := make(map[string]int, len(r.Coverage))
		for id, n := range r.Coverage {
			cov[objectName(id, names)] = n
		}
		entries[i] = ManifestEntry{
			Frame:      r.Frame,
			Angle:      r.Angle,
			Image:      r.Image,
			DepthImage: r.DepthImage,
			Drawn:      r.Stats.Drawn,
			Culled:     r.Stats.Culled,
			Malformed:  r.Stats.Malformed,
			Coverage:   cov,
			Error:      r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func objectName(id raster.ID, names map[raster.ID]string) string {
	if id == raster.NoObject {
		return "background"
	}
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("%d", id)
}
