// Package session owns one run of the game: its world, its scene graph and
// the systems that advance them, plus the controller that restarts a run
// once it is won.
package session

import (
	"context"
	"fmt"

	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/ecs/entity"
	"github.com/milk9111/coinrunner/ecs/system"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
	"github.com/milk9111/coinrunner/spawnrule"
)

type Status int

const (
	// StatusLoading means the actor model has not arrived yet. Coins already
	// spawn and move but nothing is collected.
	StatusLoading Status = iota
	StatusRunning
	// StatusWon is terminal for a session.
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	}
	return "unknown"
}

// GameSession is one run from score 0 to the win threshold.
type GameSession struct {
	World *ecs.World
	Graph *scene.Graph
	Actor ecs.Entity
	State ecs.Entity

	scheduler *ecs.Scheduler
	pending   <-chan scene.LoadResult
	status    Status
	nextCoin  uint64
}

type sessionDeps struct {
	tuning     *prefabs.RunnerSpec
	loader     scene.ModelLoader
	rule       spawnrule.Rule
	rng        system.Source
	coinPrefab prefabs.EntityBuildSpec
}

func newGameSession(ctx context.Context, deps sessionDeps) (*GameSession, error) {
	t := deps.tuning
	s := &GameSession{
		World: ecs.NewWorld(),
		Graph: scene.NewGraph(),
	}

	build := &entity.BuildContext{
		Graph:       s.Graph,
		LaneOffsets: t.Lanes.Offsets,
		NextCoinID: func() uint64 {
			s.nextCoin++
			return s.nextCoin
		},
	}

	actor, err := entity.BuildEntity(s.World, t.Actor.Prefab, build)
	if err != nil {
		return nil, fmt.Errorf("session: build actor: %w", err)
	}
	s.Actor = actor
	if err := s.applyTuning(t); err != nil {
		return nil, err
	}

	state, err := entity.NewSessionState(s.World, t.Score.Win)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.State = state

	s.scheduler = ecs.NewScheduler(
		system.NewAnimationSystem(),
		system.NewActorMotionSystem(),
		system.NewCoinMotionSystem(),
		system.NewSceneSyncSystem(s.Graph),
		system.NewCollisionSystem(s.Graph),
		system.NewCoinDespawnSystem(s.Graph, t.Coin.DespawnBehind),
		system.NewCoinSpawnSystem(deps.rule, deps.rng, t, deps.coinPrefab, build),
	)

	if req, ok := ecs.Get(s.World, actor, component.ModelRequestComponent.Kind()); ok {
		s.pending = scene.LoadAsync(ctx, deps.loader, req.Asset)
		s.status = StatusLoading
	} else {
		s.status = StatusRunning
	}

	return s, nil
}

// applyTuning puts the actor on its configured start lane with the
// configured smoothing.
func (s *GameSession) applyTuning(t *prefabs.RunnerSpec) error {
	lanes, ok := ecs.Get(s.World, s.Actor, component.LaneTrackerComponent.Kind())
	if !ok {
		return fmt.Errorf("session: actor prefab %q has no lane_tracker", t.Actor.Prefab)
	}
	if t.Lanes.Start != "" {
		start := component.ParseLane(t.Lanes.Start)
		lanes.Current, lanes.Target = start, start
	}

	if actor, ok := ecs.Get(s.World, s.Actor, component.ActorComponent.Kind()); ok && t.Actor.Smoothing > 0 {
		actor.Smoothing = t.Actor.Smoothing
	}

	if tr, ok := ecs.Get(s.World, s.Actor, component.TransformComponent.Kind()); ok {
		tr.Position[0] = lanes.TargetOffset()
	}
	return nil
}

func (s *GameSession) Status() Status {
	return s.status
}

// Tick advances the session by dt seconds. It only fails when the actor
// model cannot be loaded.
func (s *GameSession) Tick(dt float64) (Status, error) {
	if s.status == StatusWon {
		return s.status, nil
	}
	if err := s.pollModel(); err != nil {
		return s.status, err
	}

	s.scheduler.Update(s.World, dt)

	if score := s.score(); score != nil && score.Won {
		s.status = StatusWon
	}
	return s.status, nil
}

func (s *GameSession) pollModel() error {
	if s.pending == nil {
		return nil
	}
	select {
	case res, ok := <-s.pending:
		s.pending = nil
		if !ok {
			return fmt.Errorf("%w: loader closed without a result", scene.ErrAssetLoad)
		}
		if res.Err != nil {
			return res.Err
		}
		if err := entity.AttachModel(s.World, s.Graph, s.Actor, res.Model); err != nil {
			return fmt.Errorf("%w: attach %s: %w", scene.ErrAssetLoad, res.Name, err)
		}
		s.status = StatusRunning
	default:
	}
	return nil
}

// MoveLeft retargets the actor one lane left. It reports false at the edge.
func (s *GameSession) MoveLeft() bool {
	lanes, ok := ecs.Get(s.World, s.Actor, component.LaneTrackerComponent.Kind())
	return ok && lanes.MoveLeft()
}

func (s *GameSession) MoveRight() bool {
	lanes, ok := ecs.Get(s.World, s.Actor, component.LaneTrackerComponent.Kind())
	return ok && lanes.MoveRight()
}

func (s *GameSession) Lane() (component.Lane, component.Lane) {
	lanes, ok := ecs.Get(s.World, s.Actor, component.LaneTrackerComponent.Kind())
	if !ok {
		return component.LaneCenter, component.LaneCenter
	}
	return lanes.Current, lanes.Target
}

func (s *GameSession) Score() int {
	if score := s.score(); score != nil {
		return score.Value
	}
	return 0
}

func (s *GameSession) score() *component.Score {
	score, _ := ecs.Get(s.World, s.State, component.ScoreComponent.Kind())
	return score
}

// Coins returns the number of coins in the world.
func (s *GameSession) Coins() int {
	return ecs.Count(s.World, component.CoinComponent.Kind())
}
