package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/scene"
)

// SceneSyncSystem copies transforms and animation poses onto scene nodes so
// that bounds queried later in the frame match this frame's positions.
type SceneSyncSystem struct {
	graph *scene.Graph
}

func NewSceneSyncSystem(g *scene.Graph) *SceneSyncSystem {
	return &SceneSyncSystem{graph: g}
}

func (s *SceneSyncSystem) Update(w *ecs.World, _ float64) {
	if s == nil || s.graph == nil {
		return
	}

	ecs.ForEach2(w, component.ModelComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Model, t *component.Transform) {
		s.graph.SetPosition(m.Node, t.Position)

		pose := mgl64.Vec3{}
		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			if clip, ok := anim.Clips[anim.Current]; ok && len(clip.Poses) > 0 {
				frame := anim.Frame
				if frame < 0 || frame >= len(clip.Poses) {
					frame = 0
				}
				pose = clip.Poses[frame]
			}
		}
		s.graph.SetPose(m.Node, pose)

		if coin, ok := ecs.Get(w, e, component.CoinComponent.Kind()); ok {
			s.graph.SetVisible(m.Node, coin.Visible)
		}
	})
}
