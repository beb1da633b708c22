// Package geom holds the axis-aligned volumes used for coarse collision tests.
package geom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Box3 is an axis-aligned box in world space. X is the lane axis, Y is up and
// Z is the travel axis.
type Box3 struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBox3 returns the box spanning size from min.
func NewBox3(min, size mgl64.Vec3) Box3 {
	return Box3{Min: min, Max: min.Add(size)}
}

// CenteredBox3 returns the box of the given size centered on c.
func CenteredBox3(c, size mgl64.Vec3) Box3 {
	half := size.Mul(0.5)
	return Box3{Min: c.Sub(half), Max: c.Add(half)}
}

// Empty reports whether the box has a negative extent on any axis.
func (b Box3) Empty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

func (b Box3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Translate returns the box moved by d.
func (b Box3) Translate(d mgl64.Vec3) Box3 {
	return Box3{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Footprint projects the box onto the ground plane. The returned BB uses X
// for left/right and Z for bottom/top.
func (b Box3) Footprint() cp.BB {
	return cp.BB{L: b.Min.X(), B: b.Min.Z(), R: b.Max.X(), T: b.Max.Z()}
}

// Intersects reports whether the boxes overlap. Touching faces count as an
// overlap. Empty boxes never intersect.
func (b Box3) Intersects(o Box3) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	if b.Max.Y() < o.Min.Y() || o.Max.Y() < b.Min.Y() {
		return false
	}
	return b.Footprint().Intersects(o.Footprint())
}

// Contains reports whether p lies inside the box, faces included.
func (b Box3) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}
