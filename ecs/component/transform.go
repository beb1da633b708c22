package component

import "github.com/go-gl/mathgl/mgl64"

type Transform struct {
	Position mgl64.Vec3
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is in world units per second.
type Velocity struct {
	Linear mgl64.Vec3
}

var VelocityComponent = NewComponent[Velocity]()
