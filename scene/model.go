package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/prefabs"
)

type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
)

func ParseShape(s string) Shape {
	if s == "sphere" {
		return ShapeSphere
	}
	return ShapeBox
}

// Pivot says where a model's origin sits inside its bounding box.
type Pivot int

const (
	// PivotCenter puts the origin at the middle of the box.
	PivotCenter Pivot = iota
	// PivotBase puts the origin at the middle of the bottom face.
	PivotBase
)

func ParsePivot(s string) Pivot {
	if s == "base" {
		return PivotBase
	}
	return PivotCenter
}

// Min returns the offset from the origin to the box's min corner.
func (p Pivot) Min(size mgl64.Vec3) mgl64.Vec3 {
	half := size.Mul(0.5)
	if p == PivotBase {
		return mgl64.Vec3{-half.X(), 0, -half.Z()}
	}
	return half.Mul(-1)
}

// Clip is a named animation: one pose offset per frame.
type Clip struct {
	Name  string
	FPS   float64
	Loop  bool
	Poses []mgl64.Vec3
}

// Duration is the clip length in seconds.
func (c Clip) Duration() float64 {
	if c.FPS <= 0 || len(c.Poses) == 0 {
		return 0
	}
	return float64(len(c.Poses)) / c.FPS
}

// Frame returns the pose index shown at time t.
func (c Clip) Frame(t float64) int {
	n := len(c.Poses)
	if n == 0 || c.FPS <= 0 || t <= 0 {
		return 0
	}
	f := int(math.Floor(t * c.FPS))
	if c.Loop {
		return f % n
	}
	if f >= n {
		return n - 1
	}
	return f
}

// Pose returns the offset shown at time t.
func (c Clip) Pose(t float64) mgl64.Vec3 {
	if len(c.Poses) == 0 {
		return mgl64.Vec3{}
	}
	return c.Poses[c.Frame(t)]
}

// Model is a drawable, animatable object description.
type Model struct {
	Name  string
	Shape Shape
	Size  mgl64.Vec3
	Pivot Pivot
	Color color.NRGBA
	Clips map[string]Clip
}

var defaultColor = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

// ModelFromSpec converts a yaml model description.
func ModelFromSpec(spec prefabs.ModelSpec) *Model {
	m := &Model{
		Name:  spec.Name,
		Shape: ParseShape(spec.Shape),
		Size:  spec.Size.Vec(),
		Pivot: ParsePivot(spec.Pivot),
		Color: spec.Color.RGBA8(defaultColor),
	}
	if len(spec.Clips) > 0 {
		m.Clips = make(map[string]Clip, len(spec.Clips))
		for name, c := range spec.Clips {
			poses := make([]mgl64.Vec3, 0, len(c.Poses))
			for _, p := range c.Poses {
				poses = append(poses, p.Vec())
			}
			m.Clips[name] = Clip{Name: name, FPS: c.FPS, Loop: c.Loop, Poses: poses}
		}
	}
	return m
}

// PrimitiveModel builds a model from an inline prefab component.
func PrimitiveModel(name string, spec prefabs.ModelComponentSpec) *Model {
	return ModelFromSpec(prefabs.ModelSpec{
		Name:  name,
		Shape: spec.Shape,
		Size:  spec.Size,
		Pivot: spec.Pivot,
		Color: spec.Color,
	})
}
