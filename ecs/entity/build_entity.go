package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// BuildContext carries what component builders need beyond the world.
type BuildContext struct {
	PrefabPath string
	Graph      *scene.Graph
	// LaneOffsets seeds lane trackers; ordered left, center, right.
	LaneOffsets []float64
	// NextCoinID hands out coin ids. Nil leaves ids at zero.
	NextCoinID func() uint64
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"velocity":     addVelocity,
	"lane_tracker": addLaneTracker,
	"actor":        addActor,
	"coin":         addCoin,
	"model":        addModel,
	"animator":     addAnimator,
}

// model needs the transform for its initial node position.
var componentBuildOrder = []string{
	"transform",
	"velocity",
	"lane_tracker",
	"actor",
	"coin",
	"model",
	"animator",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildFromSpec(w, prefabPath, spec, ctx)
}

// BuildFromSpec builds an entity from an already decoded prefab so hot paths
// such as the coin spawner skip the yaml parse.
func BuildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}
	ctx.PrefabPath = prefabPath

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			Destroy(w, ctx.Graph, e)
			return 0, err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := build(name); err != nil {
				Destroy(w, ctx.Graph, e)
				return 0, err
			}
		}
	}

	return e, nil
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale == 0 {
		spec.Scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec(),
		Scale:    spec.Scale,
	})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Linear: spec.Linear.Vec()})
}

type laneTrackerSpec = prefabs.LaneTrackerComponentSpec

func addLaneTracker(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[laneTrackerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lane_tracker spec: %w", err)
	}
	if len(ctx.LaneOffsets) != 3 {
		return fmt.Errorf("lane_tracker needs 3 lane offsets, got %d", len(ctx.LaneOffsets))
	}
	return ecs.Add(w, e, component.LaneTrackerComponent.Kind(), component.NewLaneTracker(ctx.LaneOffsets, component.ParseLane(spec.Start)))
}

type actorSpec = prefabs.ActorComponentSpec

func addActor(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	return ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Smoothing: spec.Smoothing})
}

type coinSpec = prefabs.CoinComponentSpec

func addCoin(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[coinSpec](raw)
	if err != nil {
		return fmt.Errorf("decode coin spec: %w", err)
	}
	visible := true
	if spec.Visible != nil {
		visible = *spec.Visible
	}
	var id uint64
	if ctx.NextCoinID != nil {
		id = ctx.NextCoinID()
	}
	return ecs.Add(w, e, component.CoinComponent.Kind(), &component.Coin{ID: id, Visible: visible})
}

type modelSpec = prefabs.ModelComponentSpec

func addModel(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[modelSpec](raw)
	if err != nil {
		return fmt.Errorf("decode model spec: %w", err)
	}
	if spec.Asset != "" {
		return ecs.Add(w, e, component.ModelRequestComponent.Kind(), &component.ModelRequest{Asset: spec.Asset})
	}
	if spec.Shape == "" {
		return fmt.Errorf("model needs either asset or shape")
	}
	return AttachModel(w, ctx.Graph, e, scene.PrimitiveModel(ctx.PrefabPath, spec))
}

type animatorSpec = prefabs.AnimatorComponentSpec

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		anim = &component.Animator{}
	}
	anim.Current = spec.Clip
	anim.Playing = spec.Clip != ""
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), anim)
}
