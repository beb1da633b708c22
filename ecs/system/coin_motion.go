package system

import (
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
)

// CoinMotionSystem moves visible coins by velocity * dt.
type CoinMotionSystem struct{}

func NewCoinMotionSystem() *CoinMotionSystem {
	return &CoinMotionSystem{}
}

func (s *CoinMotionSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach3(w,
		component.CoinComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, coin *component.Coin, v *component.Velocity, t *component.Transform) {
			if coin == nil || !coin.Visible || v == nil || t == nil {
				return
			}
			t.Position = t.Position.Add(v.Linear.Mul(dt))
		})
}
