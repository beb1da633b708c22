package system

import (
	"github.com/milk9111/coinrunner/common"
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
)

// ActorMotionSystem eases the actor's X toward its target lane. The step is a
// fixed fraction per frame, so dt is ignored.
type ActorMotionSystem struct{}

func NewActorMotionSystem() *ActorMotionSystem {
	return &ActorMotionSystem{}
}

func (s *ActorMotionSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach4(w,
		component.ActorComponent.Kind(),
		component.LaneTrackerComponent.Kind(),
		component.TransformComponent.Kind(),
		component.ModelComponent.Kind(),
		func(e ecs.Entity, actor *component.Actor, lanes *component.LaneTracker, t *component.Transform, _ *component.Model) {
			if actor == nil || lanes == nil || t == nil {
				return
			}
			x := common.Lerp(t.Position.X(), lanes.TargetOffset(), actor.Smoothing)
			t.Position[0] = x
			lanes.Current = lanes.Nearest(x)
		})
}
