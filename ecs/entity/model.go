package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/scene"
)

// AttachModel places m in the graph at the entity's transform and links the
// node to the entity. Clips are handed to the entity's animator, if any.
func AttachModel(w *ecs.World, g *scene.Graph, e ecs.Entity, m *scene.Model) error {
	if g == nil {
		return fmt.Errorf("attach model: scene graph is nil")
	}
	if m == nil {
		return fmt.Errorf("attach model: model is nil")
	}
	if !ecs.IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}

	pos := mgl64.Vec3{}
	scale := 1.0
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
		scale = t.Scale
	}

	if old, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
		g.Remove(old.Node)
	}
	node := g.Add(m, pos, scale)
	if err := ecs.Add(w, e, component.ModelComponent.Kind(), &component.Model{Name: m.Name, Node: node}); err != nil {
		g.Remove(node)
		return err
	}
	ecs.Remove(w, e, component.ModelRequestComponent.Kind())

	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		anim.Clips = m.Clips
		anim.Time = 0
		anim.Frame = 0
	}
	return nil
}

// SetPosition moves an entity and its node together.
func SetPosition(w *ecs.World, g *scene.Graph, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{Scale: 1}
	}
	t.Position = pos
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if m, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
		g.SetPosition(m.Node, pos)
	}
	return nil
}

// Destroy removes the entity's scene node, if any, and then the entity.
func Destroy(w *ecs.World, g *scene.Graph, e ecs.Entity) bool {
	if m, ok := ecs.Get(w, e, component.ModelComponent.Kind()); ok {
		g.Remove(m.Node)
	}
	return ecs.DestroyEntity(w, e)
}
