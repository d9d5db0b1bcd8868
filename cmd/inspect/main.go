// Command inspect prints per-object statistics of a scene file.
package main

import (
	"fmt"
	"math"
	"os"

	"minigl/internal/raster"
	"minigl/internal/scenefile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect scene.yaml")
		os.Exit(2)
	}
	store, names, err := scenefile.LoadStore(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Objects: %d, Primitives: %d, Vertices: %d\n", len(store.Objects()), store.Len(), store.VertexCount())

	type stats struct {
		lines, tris int
		min, max    [3]float64
	}
	per := map[raster.ID]*stats{}
	for p := range store.Primitives() {
		st := per[p.Owner]
		if st == nil {
			st = &stats{
				min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
				max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
			}
			per[p.Owner] = st
		}
		if len(p.Points) == 2 {
			st.lines++
		} else {
			st.tris++
		}
		t, _ := store.Transform(p.Owner)
		for _, v := range t.ApplyAll(p.Points) {
			if v[3] == 0 {
				continue
			}
			c := v.Cartesian()
			for k := 0; k < 3; k++ {
				st.min[k] = math.Min(st.min[k], c[k])
				st.max[k] = math.Max(st.max[k], c[k])
			}
		}
	}

	for _, id := range store.Objects() {
		fmt.Printf("  [%d] %s\n", id, names[id])
		st := per[id]
		if st == nil {
			fmt.Println("    empty")
			continue
		}
		fmt.Printf("    triangles=%d, lines=%d\n", st.tris, st.lines)
		fmt.Printf("    BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
			st.min[0], st.max[0], st.min[1], st.max[1], st.min[2], st.max[2])
	}
}
