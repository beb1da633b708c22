package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/common"
	"github.com/milk9111/coinrunner/prefabs"
)

// Light is one directional light plus an ambient floor.
type Light struct {
	// Dir points from the light into the scene.
	Dir     mgl64.Vec3
	Ambient float64
}

func NewLight(spec prefabs.LightSpec) Light {
	dir := spec.Direction.Vec()
	if dir.Len() == 0 {
		dir = mgl64.Vec3{-0.3, -1, 0.5}
	}
	return Light{Dir: dir.Normalize(), Ambient: common.Clamp(spec.Ambient, 0, 1)}
}

// Lambert is the brightness of a surface with normal n.
func (l Light) Lambert(n mgl64.Vec3) float64 {
	if n.Len() == 0 {
		return l.Ambient
	}
	diffuse := common.Clamp(n.Normalize().Dot(l.Dir.Mul(-1)), 0, 1)
	return l.Ambient + (1-l.Ambient)*diffuse
}

// Shade scales c by the Lambert factor for n.
func (l Light) Shade(c color.NRGBA, n mgl64.Vec3) color.NRGBA {
	f := l.Lambert(n)
	return color.NRGBA{
		R: uint8(common.Clamp(float64(c.R)*f, 0, 255)),
		G: uint8(common.Clamp(float64(c.G)*f, 0, 255)),
		B: uint8(common.Clamp(float64(c.B)*f, 0, 255)),
		A: c.A,
	}
}
