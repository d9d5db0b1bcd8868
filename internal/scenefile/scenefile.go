// Package scenefile reads YAML scene descriptions and loads them into a
// scene.Store.
//
//	objects:
//	  - name: roof
//	    transform:            # applied top to bottom
//	      - rotate_y: 45      # degrees
//	      - rotate: {angle: 30, axis: [1, 0, 0]}
//	      - scale: 2          # or [sx, sy, sz]
//	      - translate: [0, 1, -5]
//	    subdivide: 1
//	    triangles:
//	      - [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
//	    lines:
//	      - [[0, 0, 0], [0, 0, 1, 0]]   # a fourth component is w
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"minigl/internal/mathutil"
	"minigl/internal/raster"
	"minigl/internal/scene"
	"minigl/internal/transform"
)

// File is a parsed scene description.
type File struct {
	Objects []Object `yaml:"objects"`
}

// Object is one named object with its transform and geometry.
type Object struct {
	Name      string    `yaml:"name"`
	Transform []Op      `yaml:"transform"`
	Subdivide int       `yaml:"subdivide"`
	Triangles [][]Point `yaml:"triangles"`
	Lines     [][]Point `yaml:"lines"`
}

// Point is a 3D point [x, y, z] or a homogeneous point [x, y, z, w].
type Point []float64

// AxisAngle is a rotation in degrees about an arbitrary axis.
type AxisAngle struct {
	Angle float64   `yaml:"angle"`
	Axis  []float64 `yaml:"axis"`
}

// Scale is either a uniform factor or per-axis factors.
type Scale []float64

// UnmarshalYAML accepts both "scale: 2" and "scale: [1, 2, 3]".
func (s *Scale) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var v float64
		if err := n.Decode(&v); err != nil {
			return err
		}
		*s = Scale{v}
		return nil
	}
	var v []float64
	if err := n.Decode(&v); err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("line %d: scale needs 1 or 3 factors, got %d", n.Line, len(v))
	}
	*s = v
	return nil
}

// Op is a single transform step. Exactly one field is set.
type Op struct {
	Rotate    *AxisAngle `yaml:"rotate"`
	RotateX   *float64   `yaml:"rotate_x"`
	RotateY   *float64   `yaml:"rotate_y"`
	RotateZ   *float64   `yaml:"rotate_z"`
	Euler     []float64  `yaml:"euler"`
	Translate []float64  `yaml:"translate"`
	Scale     Scale      `yaml:"scale"`
	Matrix    []float64  `yaml:"matrix"`
}

var errOp = errors.New("scenefile: transform step needs exactly one operation")

// apply pre-multiplies the step onto t.
func (op Op) apply(t *transform.Transform) error {
	set := 0
	for _, ok := range []bool{
		op.Rotate != nil, op.RotateX != nil, op.RotateY != nil, op.RotateZ != nil,
		op.Euler != nil, op.Translate != nil, op.Scale != nil, op.Matrix != nil,
	} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return errOp
	}

	deg := mathutil.Deg2Rad
	switch {
	case op.Rotate != nil:
		if len(op.Rotate.Axis) != 3 {
			return fmt.Errorf("scenefile: rotate axis needs 3 components")
		}
		t.Rotate(deg(op.Rotate.Angle), mathutil.Vec3{op.Rotate.Axis[0], op.Rotate.Axis[1], op.Rotate.Axis[2]})
	case op.RotateX != nil:
		t.RotateX(deg(*op.RotateX))
	case op.RotateY != nil:
		t.RotateY(deg(*op.RotateY))
	case op.RotateZ != nil:
		t.RotateZ(deg(*op.RotateZ))
	case op.Euler != nil:
		if len(op.Euler) != 3 {
			return fmt.Errorf("scenefile: euler needs 3 angles")
		}
		t.RotateEuler(deg(op.Euler[0]), deg(op.Euler[1]), deg(op.Euler[2]))
	case op.Translate != nil:
		if len(op.Translate) != 3 {
			return fmt.Errorf("scenefile: translate needs 3 components")
		}
		t.Translate(op.Translate[0], op.Translate[1], op.Translate[2])
	case op.Scale != nil:
		if len(op.Scale) == 1 {
			t.Scale(op.Scale[0])
		} else {
			t.ScaleXYZ(op.Scale[0], op.Scale[1], op.Scale[2])
		}
	case op.Matrix != nil:
		if len(op.Matrix) != 16 {
			return fmt.Errorf("scenefile: matrix needs 16 values, got %d", len(op.Matrix))
		}
		var m mathutil.Mat4
		copy(m[:], op.Matrix)
		t.ApplyCustom(m)
	}
	return nil
}

func (p Point) vec4() (mathutil.Vec4, error) {
	switch len(p) {
	case 3:
		return mathutil.P4(p[0], p[1], p[2]), nil
	case 4:
		return mathutil.Vec4{p[0], p[1], p[2], p[3]}, nil
	}
	return mathutil.Vec4{}, fmt.Errorf("scenefile: point needs 3 or 4 components, got %d", len(p))
}

// Load reads and parses a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene description. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// Binding ties an object name to the id the store assigned it.
type Binding struct {
	Name string
	ID   raster.ID
}

// Populate adds every object to s in file order and returns the bindings.
// Objects without a name are called "object<N>".
func (f *File) Populate(s *scene.Store) ([]Binding, error) {
	out := make([]Binding, 0, len(f.Objects))
	for i, o := range f.Objects {
		name := o.Name
		if name == "" {
			name = fmt.Sprintf("object%d", i)
		}
		t := transform.New()
		for k, op := range o.Transform {
			if err := op.apply(t); err != nil {
				return out, fmt.Errorf("%s: step %d: %w", name, k, err)
			}
		}
		id := s.NewObject(t)
		out = append(out, Binding{Name: name, ID: id})

		if err := addAll(s, o.Triangles, 3); err != nil {
			return out, fmt.Errorf("%s: triangle %w", name, err)
		}
		if err := addAll(s, o.Lines, 2); err != nil {
			return out, fmt.Errorf("%s: line %w", name, err)
		}
		for n := 0; n < o.Subdivide; n++ {
			if err := s.Subdivide(id); err != nil {
				return out, fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return out, nil
}

func addAll(s *scene.Store, prims [][]Point, n int) error {
	pts := make([]mathutil.Vec4, n)
	for i, p := range prims {
		if len(p) != n {
			return fmt.Errorf("%d: want %d points, got %d", i, n, len(p))
		}
		for k := range p {
			v, err := p[k].vec4()
			if err != nil {
				return fmt.Errorf("%d: %w", i, err)
			}
			pts[k] = v
		}
		if err := s.AddPrimitive(pts...); err != nil {
			return fmt.Errorf("%d: %w", i, err)
		}
	}
	return nil
}

// LoadStore reads path into a new store and returns it with the id → name map.
func LoadStore(path string) (*scene.Store, map[raster.ID]string, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	s := scene.New(64)
	binds, err := f.Populate(s)
	if err != nil {
		return nil, nil, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	names := make(map[raster.ID]string, len(binds))
	for _, b := range binds {
		names[b.ID] = b.Name
	}
	return s, names, nil
}
