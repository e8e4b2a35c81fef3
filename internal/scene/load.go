package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"gopkg.in/yaml.v3"
)

// File is the on-disk scene description.
type File struct {
	Camera struct {
		Position vec3 `yaml:"position"`
	} `yaml:"camera"`
	Objects []ObjectSpec `yaml:"objects"`
}

// ObjectSpec describes one node. At most one of Sphere and Box may be set.
type ObjectSpec struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Visible  *bool        `yaml:"visible"`
	Sphere   *sphereSpec  `yaml:"sphere"`
	Box      *boxSpec     `yaml:"box"`
	Children []ObjectSpec `yaml:"children"`
}

type sphereSpec struct {
	Center vec3    `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

type boxSpec struct {
	Min vec3 `yaml:"min"`
	Max vec3 `yaml:"max"`
}

type vec3 [3]float64

func (v vec3) vector() r3.Vector { return r3.Vector{X: v[0], Y: v[1], Z: v[2]} }

// Loaded is a parsed scene: the root node and the camera start position.
type Loaded struct {
	Root           *Node
	CameraPosition r3.Vector
}

// LoadFile reads a YAML scene from path.
func LoadFile(path string) (*Loaded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML scene from r.
func Load(r io.Reader) (*Loaded, error) {
	var sf File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	root := NewNode("scene", nil)
	for i := range sf.Objects {
		n, err := build(&sf.Objects[i], fmt.Sprintf("objects[%d]", i))
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return &Loaded{Root: root, CameraPosition: sf.Camera.Position.vector()}, nil
}

func build(spec *ObjectSpec, path string) (*Node, error) {
	if spec.Sphere != nil && spec.Box != nil {
		return nil, fmt.Errorf("%s: sphere and box are mutually exclusive", path)
	}

	var shape Shape
	switch {
	case spec.Sphere != nil:
		if spec.Sphere.Radius <= 0 {
			return nil, fmt.Errorf("%s: sphere radius must be positive", path)
		}
		shape = Sphere{Center: spec.Sphere.Center.vector(), Radius: spec.Sphere.Radius}
	case spec.Box != nil:
		lo, hi := spec.Box.Min.vector(), spec.Box.Max.vector()
		if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
			return nil, fmt.Errorf("%s: box min exceeds max", path)
		}
		shape = Box{Min: lo, Max: hi}
	}

	n := NewNode(spec.Name, shape)
	if spec.ID != "" {
		n.ID = spec.ID
	}
	if spec.Visible != nil {
		n.Visible = *spec.Visible
	}
	for i := range spec.Children {
		c, err := build(&spec.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Add(c)
	}
	return n, nil
}
