package system

import (
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/ecs/entity"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/spawnrule"
)

const (
	EventCoinSpawned = "coin_spawned"
	EventSpawnError  = "spawn_error"
)

// Source is the random draw the spawner uses. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// CoinSpawnSystem draws once per frame and adds at most one coin at the slot
// the rule picks.
type CoinSpawnSystem struct {
	rule   spawnrule.Rule
	rng    Source
	tuning *prefabs.RunnerSpec
	prefab prefabs.EntityBuildSpec
	ctx    *entity.BuildContext
}

func NewCoinSpawnSystem(rule spawnrule.Rule, rng Source, tuning *prefabs.RunnerSpec, prefab prefabs.EntityBuildSpec, ctx *entity.BuildContext) *CoinSpawnSystem {
	if rule == nil {
		rule = spawnrule.Direct{}
	}
	if ctx == nil {
		ctx = &entity.BuildContext{}
	}
	return &CoinSpawnSystem{rule: rule, rng: rng, tuning: tuning, prefab: prefab, ctx: ctx}
}

func (s *CoinSpawnSystem) Update(w *ecs.World, _ float64) {
	if s == nil || s.rng == nil || s.tuning == nil {
		return
	}

	limit := s.tuning.Spawn.Range
	slots := s.tuning.Spawn.Slots
	if limit <= 0 || len(slots) == 0 {
		return
	}

	slot, err := s.rule.Slot(s.rng.Intn(limit), len(slots), limit)
	if err != nil {
		w.Events().Push(ecs.Event{Type: EventSpawnError, Data: err})
		return
	}
	if slot == spawnrule.NoSpawn || slot < 0 || slot >= len(slots) {
		return
	}

	e, err := entity.BuildFromSpec(w, s.tuning.Coin.Prefab, s.prefab, s.ctx)
	if err != nil {
		w.Events().Push(ecs.Event{Type: EventSpawnError, Data: err})
		return
	}

	g := s.ctx.Graph
	if err := entity.SetPosition(w, g, e, slots[slot].Vec()); err != nil {
		entity.Destroy(w, g, e)
		w.Events().Push(ecs.Event{Type: EventSpawnError, Data: err})
		return
	}

	dir := s.tuning.Coin.Direction.Vec()
	if dir.Len() > 0 {
		dir = dir.Normalize()
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Linear: dir.Mul(s.tuning.Coin.Speed)})
	}

	w.Events().Push(ecs.Event{Type: EventCoinSpawned, Data: slot})
}
