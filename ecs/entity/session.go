package entity

import (
	"fmt"

	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
)

// NewSessionState creates the entity holding the score for one session.
func NewSessionState(w *ecs.World, winScore int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SessionTagComponent.Kind(), &component.SessionTag{}); err != nil {
		return 0, fmt.Errorf("session state: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.ScoreComponent.Kind(), &component.Score{Threshold: winScore}); err != nil {
		return 0, fmt.Errorf("session state: add score: %w", err)
	}
	return e, nil
}
