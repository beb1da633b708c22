package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/prefabs"
)

// Camera is a perspective camera looking from Eye at Target with +Y up.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	FOV    float64
	Near   float64
	Far    float64

	width, height float64
	view, proj    mgl64.Mat4
}

func NewCamera(spec prefabs.CameraSpec, width, height float64) *Camera {
	c := &Camera{
		Eye:    spec.Eye.Vec(),
		Target: spec.Target.Vec(),
		FOV:    spec.FOV,
		Near:   spec.Near,
		Far:    spec.Far,
	}
	if c.FOV <= 0 {
		c.FOV = 60
	}
	if c.Near <= 0 {
		c.Near = 1
	}
	if c.Far <= c.Near {
		c.Far = 1000
	}
	c.Resize(width, height)
	return c
}

// Resize rebuilds the projection for a new viewport.
func (c *Camera) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.view = mgl64.LookAtV(c.Eye, c.Target, mgl64.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), width/height, c.Near, c.Far)
}

func (c *Camera) Size() (float64, float64) {
	return c.width, c.height
}

// Project maps a world point to screen pixels with y growing downward. ok is
// false for points behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	clip := c.proj.Mul4(c.view).Mul4x1(p.Vec4(1))
	if clip.W() < c.Near {
		return 0, 0, false
	}
	win := mgl64.Project(p, c.view, c.proj, 0, 0, int(c.width), int(c.height))
	return win.X(), c.height - win.Y(), true
}

// Depth is the distance from the eye, used to sort draws back to front.
func (c *Camera) Depth(p mgl64.Vec3) float64 {
	return p.Sub(c.Eye).Len()
}

// PixelRadius is the on-screen radius of a sphere of radius r centred at p.
func (c *Camera) PixelRadius(p mgl64.Vec3, r float64) float64 {
	d := c.Depth(p)
	if d <= 0 {
		return 0
	}
	focal := (c.height / 2) / math.Tan(mgl64.DegToRad(c.FOV)/2)
	return r * focal / d
}

// ToEye is the unit vector from p toward the eye.
func (c *Camera) ToEye(p mgl64.Vec3) mgl64.Vec3 {
	v := c.Eye.Sub(p)
	if v.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return v.Normalize()
}
