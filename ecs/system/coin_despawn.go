package system

import (
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/ecs/entity"
	"github.com/milk9111/coinrunner/scene"
)

const EventCoinDespawned = "coin_despawned"

// CoinDespawnSystem removes coins that have travelled more than Behind units
// past the actor. Behind <= 0 keeps every coin.
type CoinDespawnSystem struct {
	graph  *scene.Graph
	Behind float64
	stale  []ecs.Entity
}

func NewCoinDespawnSystem(g *scene.Graph, behind float64) *CoinDespawnSystem {
	return &CoinDespawnSystem{graph: g, Behind: behind}
}

func (s *CoinDespawnSystem) Update(w *ecs.World, _ float64) {
	if s == nil || s.Behind <= 0 {
		return
	}

	actor, ok := ecs.First(w, component.ActorComponent.Kind())
	if !ok {
		return
	}
	at, ok := ecs.Get(w, actor, component.TransformComponent.Kind())
	if !ok {
		return
	}
	limit := at.Position.Z() - s.Behind

	s.stale = s.stale[:0]
	ecs.ForEach2(w, component.CoinComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Coin, t *component.Transform) {
		if t.Position.Z() < limit {
			s.stale = append(s.stale, e)
		}
	})

	for _, e := range s.stale {
		if entity.Destroy(w, s.graph, e) {
			w.Events().Push(ecs.Event{Type: EventCoinDespawned, Data: e})
		}
	}
}
