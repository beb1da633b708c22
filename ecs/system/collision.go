package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/ecs/entity"
	"github.com/milk9111/coinrunner/scene"
)

// ErrCollisionState means a coin marked as collected vanished before it could
// be removed. It is a programming error and is raised with panic.
var ErrCollisionState = errors.New("collision: collected coin is no longer in the world")

const (
	EventCoinCollected = "coin_collected"
	EventSessionWon    = "session_won"
)

// CollisionSystem checks the actor's box against every visible coin. Hits are
// counted, hidden and then removed once the scan is done.
type CollisionSystem struct {
	graph *scene.Graph
	hits  []ecs.Entity
}

func NewCollisionSystem(g *scene.Graph) *CollisionSystem {
	return &CollisionSystem{graph: g}
}

func (s *CollisionSystem) Update(w *ecs.World, _ float64) {
	if s == nil || w == nil || s.graph == nil {
		return
	}

	actor, ok := ecs.First(w, component.ActorComponent.Kind())
	if !ok {
		return
	}
	// Collision waits for the actor model.
	actorModel, ok := ecs.Get(w, actor, component.ModelComponent.Kind())
	if !ok {
		return
	}
	actorBox, ok := s.graph.Bounds(actorModel.Node)
	if !ok {
		return
	}

	scoreEntity, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		return
	}
	score, _ := ecs.Get(w, scoreEntity, component.ScoreComponent.Kind())
	if score.Won {
		return
	}

	s.hits = s.hits[:0]
	ecs.ForEach2(w, component.CoinComponent.Kind(), component.ModelComponent.Kind(), func(e ecs.Entity, coin *component.Coin, m *component.Model) {
		if score.Won || !coin.Visible {
			return
		}
		box, ok := s.graph.Bounds(m.Node)
		if !ok || !actorBox.Intersects(box) {
			return
		}

		coin.Visible = false
		s.graph.SetVisible(m.Node, false)
		score.Value++
		s.hits = append(s.hits, e)
		w.Events().Push(ecs.Event{Type: EventCoinCollected, Data: coin.ID})

		if score.Threshold > 0 && score.Value >= score.Threshold {
			score.Won = true
		}
	})

	s.removeHits(w)

	if score.Won {
		w.Events().Push(ecs.Event{Type: EventSessionWon, Data: score.Value})
	}
}

// removeHits drops the node and then the entity of every collected coin.
func (s *CollisionSystem) removeHits(w *ecs.World) {
	for _, e := range s.hits {
		if !ecs.IsAlive(w, e) {
			panic(fmt.Errorf("%w: %v", ErrCollisionState, e))
		}
		entity.Destroy(w, s.graph, e)
	}
	s.hits = s.hits[:0]
}
