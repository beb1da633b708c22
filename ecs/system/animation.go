package system

import (
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
)

// AnimationSystem advances every playing animator by the frame's elapsed
// seconds and picks the pose frame to show.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		if anim == nil || !anim.Playing {
			return
		}

		clip, ok := anim.Clips[anim.Current]
		if !ok || len(clip.Poses) == 0 {
			return
		}

		anim.Time += dt
		anim.Frame = clip.Frame(anim.Time)
		if !clip.Loop && anim.Time >= clip.Duration() {
			anim.Playing = false
		}
	})
}

// Play switches the animator to clip and restarts it.
func Play(anim *component.Animator, clip string) {
	if anim == nil {
		return
	}
	if anim.Current == clip && anim.Playing {
		return
	}
	anim.Current = clip
	anim.Time = 0
	anim.Frame = 0
	anim.Playing = true
}
