package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/coinrunner/ecs/system"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
	"github.com/milk9111/coinrunner/spawnrule"
)

var ErrNotStarted = errors.New("session: controller not started")

// Config wires a controller to its collaborators. Only Tuning is required.
type Config struct {
	Tuning *prefabs.RunnerSpec
	// Loader resolves the actor model. Defaults to the prefab loader.
	Loader scene.ModelLoader
	// Rand feeds the coin spawner. Defaults to a time-seeded source.
	Rand system.Source
	// Rule overrides the spawn rule named by the tuning.
	Rule spawnrule.Rule

	// OnScore is called on every start and whenever the score changes.
	OnScore func(score int)
	// OnWin is called once per won session, before the restart.
	OnWin func(score int)
	// OnCoin is called for every collected coin.
	OnCoin func(id uint64)
}

// Controller drives the current GameSession and replaces it with a fresh one
// when it is won.
type Controller struct {
	cfg        Config
	rule       spawnrule.Rule
	coinPrefab prefabs.EntityBuildSpec

	parent  context.Context
	cancel  context.CancelFunc
	session *GameSession

	lastScore   int
	wins        int
	spawnErrors int
}

func New(cfg Config) (*Controller, error) {
	if cfg.Tuning == nil {
		return nil, fmt.Errorf("session: tuning is nil")
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if cfg.Loader == nil {
		cfg.Loader = scene.NewPrefabLoader()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{cfg: cfg}
	if err := c.loadTuning(cfg.Tuning); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) loadTuning(t *prefabs.RunnerSpec) error {
	rule := c.cfg.Rule
	if rule == nil {
		r, err := spawnrule.FromSpec(t.Spawn)
		if err != nil {
			return fmt.Errorf("session: spawn rule: %w", err)
		}
		rule = r
	}
	prefab, err := prefabs.LoadEntityBuildSpec(t.Coin.Prefab)
	if err != nil {
		return fmt.Errorf("session: coin prefab: %w", err)
	}
	c.rule = rule
	c.coinPrefab = prefab
	c.cfg.Tuning = t
	return nil
}

// Start discards any running session and begins a new one.
func (c *Controller) Start(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}
	c.parent = ctx
	sctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	s, err := newGameSession(sctx, sessionDeps{
		tuning:     c.cfg.Tuning,
		loader:     c.cfg.Loader,
		rule:       c.rule,
		rng:        c.cfg.Rand,
		coinPrefab: c.coinPrefab,
	})
	if err != nil {
		return err
	}
	c.session = s
	c.lastScore = 0
	c.spawnErrors = 0

	log.Printf("session: start %q (wins so far: %d)", c.cfg.Tuning.Name, c.wins)
	if c.cfg.OnScore != nil {
		c.cfg.OnScore(0)
	}
	return nil
}

// Close cancels any in-flight model load.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controller) MoveLeft() bool {
	if c.session == nil {
		return false
	}
	return c.session.MoveLeft()
}

func (c *Controller) MoveRight() bool {
	if c.session == nil {
		return false
	}
	return c.session.MoveRight()
}

// Tick advances the current session. When the session is won the win is
// reported, a fresh session replaces it and StatusWon is returned.
func (c *Controller) Tick(dt float64) (Status, error) {
	if c.session == nil {
		return StatusLoading, ErrNotStarted
	}

	status, err := c.session.Tick(dt)
	if err != nil {
		return status, fmt.Errorf("session: tick: %w", err)
	}

	c.dispatchEvents()

	if score := c.session.Score(); score != c.lastScore {
		c.lastScore = score
		if c.cfg.OnScore != nil {
			c.cfg.OnScore(score)
		}
	}

	if status == StatusWon {
		c.wins++
		log.Printf("session: won with score %d", c.lastScore)
		if c.cfg.OnWin != nil {
			c.cfg.OnWin(c.lastScore)
		}
		if err := c.Start(c.restartContext()); err != nil {
			return StatusWon, fmt.Errorf("session: restart: %w", err)
		}
		return StatusWon, nil
	}

	return status, nil
}

func (c *Controller) dispatchEvents() {
	for _, evt := range c.session.World.Events().Drain() {
		switch evt.Type {
		case system.EventCoinCollected:
			if id, ok := evt.Data.(uint64); ok && c.cfg.OnCoin != nil {
				c.cfg.OnCoin(id)
			}
		case system.EventSpawnError:
			// Logged once per session.
			if c.spawnErrors == 0 {
				log.Printf("session: spawn: %v", evt.Data)
			}
			c.spawnErrors++
		}
	}
}

// SetTuning swaps the gameplay tuning and restarts the session with it.
func (c *Controller) SetTuning(t *prefabs.RunnerSpec) error {
	if t == nil {
		return fmt.Errorf("session: tuning is nil")
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.loadTuning(t); err != nil {
		return err
	}
	log.Printf("session: tuning %q applied", t.Name)
	return c.Start(c.restartContext())
}

func (c *Controller) Tuning() *prefabs.RunnerSpec {
	return c.cfg.Tuning
}

func (c *Controller) Session() *GameSession {
	return c.session
}

func (c *Controller) Scene() *scene.Graph {
	if c.session == nil {
		return nil
	}
	return c.session.Graph
}

func (c *Controller) Score() int {
	if c.session == nil {
		return 0
	}
	return c.session.Score()
}

func (c *Controller) Status() Status {
	if c.session == nil {
		return StatusLoading
	}
	return c.session.Status()
}

// Wins counts sessions won since the controller was created.
func (c *Controller) Wins() int {
	return c.wins
}

func (c *Controller) restartContext() context.Context {
	if c.parent != nil {
		return c.parent
	}
	return context.Background()
}
