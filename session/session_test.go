package session

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/ecs"
	"github.com/milk9111/coinrunner/ecs/component"
	"github.com/milk9111/coinrunner/ecs/entity"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
)

// draws replays a fixed sequence and then keeps returning miss.
type draws struct {
	seq  []int
	miss int
}

func (d *draws) Intn(n int) int {
	if len(d.seq) == 0 {
		return d.miss % n
	}
	v := d.seq[0]
	d.seq = d.seq[1:]
	return v % n
}

func loadTuning(t *testing.T, win int) *prefabs.RunnerSpec {
	t.Helper()
	tuning, err := prefabs.LoadRunnerSpec("runner.yaml")
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	if win > 0 {
		tuning.Score.Win = win
	}
	return tuning
}

type recorder struct {
	scores []int
	wins   []int
	coins  []uint64
}

func newController(t *testing.T, tuning *prefabs.RunnerSpec, rng *draws) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := New(Config{
		Tuning:  tuning,
		Rand:    rng,
		OnScore: func(s int) { rec.scores = append(rec.scores, s) },
		OnWin:   func(s int) { rec.wins = append(rec.wins, s) },
		OnCoin:  func(id uint64) { rec.coins = append(rec.coins, id) },
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(c.Close)
	return c, rec
}

// waitLoaded ticks with dt=0 until the actor model arrives.
func waitLoaded(t *testing.T, c *Controller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.Status() == StatusLoading {
		if time.Now().After(deadline) {
			t.Fatal("actor model never loaded")
		}
		if _, err := c.Tick(0); err != nil {
			t.Fatalf("tick: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func placeCoin(t *testing.T, s *GameSession, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e, err := entity.BuildEntity(s.World, "coin.yaml", &entity.BuildContext{Graph: s.Graph})
	if err != nil {
		t.Fatalf("build coin: %v", err)
	}
	if err := entity.SetPosition(s.World, s.Graph, e, pos); err != nil {
		t.Fatalf("place coin: %v", err)
	}
	return e
}

func actorX(c *Controller) float64 {
	s := c.Session()
	tr, _ := ecs.Get(s.World, s.Actor, component.TransformComponent.Kind())
	return tr.Position.X()
}

var atActor = mgl64.Vec3{0, 5, -50}

func TestStartState(t *testing.T) {
	c, rec := newController(t, loadTuning(t, 0), &draws{miss: 99})

	if c.Status() != StatusLoading {
		t.Fatalf("expected loading before the model arrives, got %v", c.Status())
	}
	if c.Score() != 0 || c.Session().Coins() != 0 {
		t.Fatal("new session should have no score and no coins")
	}
	if len(rec.scores) != 1 || rec.scores[0] != 0 {
		t.Fatalf("start should report score 0, got %v", rec.scores)
	}
	if got := c.Session().World; got == nil {
		t.Fatal("expected world")
	}

	waitLoaded(t, c)
	if c.Scene().Len() != 1 {
		t.Fatalf("expected the actor node in the scene, got %d nodes", c.Scene().Len())
	}
}

func TestLaneStaysInRange(t *testing.T) {
	c, _ := newController(t, loadTuning(t, 0), &draws{miss: 99})
	rng := rand.New(rand.NewSource(7))

	want := int(component.LaneCenter)
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			moved := c.MoveLeft()
			if moved != (want > 0) {
				t.Fatalf("step %d: MoveLeft returned %v at lane %d", i, moved, want)
			}
			if moved {
				want--
			}
		} else {
			moved := c.MoveRight()
			if moved != (want < 2) {
				t.Fatalf("step %d: MoveRight returned %v at lane %d", i, moved, want)
			}
			if moved {
				want++
			}
		}
		_, target := c.Session().Lane()
		if !target.Valid() || int(target) != want {
			t.Fatalf("step %d: expected lane %d, got %v", i, want, target)
		}
	}
}

func TestFiveMoveLeftsFromCenter(t *testing.T) {
	c, _ := newController(t, loadTuning(t, 0), &draws{miss: 99})
	waitLoaded(t, c)

	want := []bool{true, false, false, false, false}
	for i, w := range want {
		if got := c.MoveLeft(); got != w {
			t.Fatalf("move %d: expected %v, got %v", i, w, got)
		}
	}
	_, target := c.Session().Lane()
	if target != component.LaneLeft {
		t.Fatalf("expected left lane, got %v", target)
	}

	for i := 0; i < 300; i++ {
		if _, err := c.Tick(1.0 / 60); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if x := actorX(c); x < 29.99 || x > 30 {
		t.Fatalf("actor should settle on the left lane offset 30, got %v", x)
	}
	if current, _ := c.Session().Lane(); current != component.LaneLeft {
		t.Fatalf("current lane should follow, got %v", current)
	}
}

func TestActorHoldsStillAtTarget(t *testing.T) {
	c, _ := newController(t, loadTuning(t, 0), &draws{miss: 99})
	waitLoaded(t, c)

	for i := 0; i < 120; i++ {
		if _, err := c.Tick(1.0 / 60); err != nil {
			t.Fatalf("tick: %v", err)
		}
		if x := actorX(c); x != 0 {
			t.Fatalf("tick %d: actor drifted to %v", i, x)
		}
	}
}

func TestSimultaneousPickups(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		c, rec := newController(t, loadTuning(t, 0), &draws{miss: 99})
		waitLoaded(t, c)

		for i := 0; i < n; i++ {
			placeCoin(t, c.Session(), atActor)
		}
		if _, err := c.Tick(0); err != nil {
			t.Fatalf("tick: %v", err)
		}

		if c.Score() != n {
			t.Fatalf("n=%d: expected score %d, got %d", n, n, c.Score())
		}
		if got := c.Session().Coins(); got != 0 {
			t.Fatalf("n=%d: expected all coins removed, got %d", n, got)
		}
		if len(rec.coins) != n {
			t.Fatalf("n=%d: expected %d coin callbacks, got %d", n, n, len(rec.coins))
		}
		if last := rec.scores[len(rec.scores)-1]; last != n {
			t.Fatalf("n=%d: score display should read %d, got %d", n, n, last)
		}
	}
}

func TestInvisibleCoinNeverCounts(t *testing.T) {
	c, _ := newController(t, loadTuning(t, 0), &draws{miss: 99})
	waitLoaded(t, c)

	e := placeCoin(t, c.Session(), atActor)
	coin, _ := ecs.Get(c.Session().World, e, component.CoinComponent.Kind())
	coin.Visible = false

	for i := 0; i < 10; i++ {
		if _, err := c.Tick(1.0 / 60); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if c.Score() != 0 {
		t.Fatalf("invisible coin counted, score %d", c.Score())
	}
}

func TestSingleWinAtThreshold(t *testing.T) {
	c, rec := newController(t, loadTuning(t, 3), &draws{miss: 99})
	waitLoaded(t, c)
	first := c.Session()

	for i := 0; i < 5; i++ {
		placeCoin(t, first, atActor)
	}
	status, err := c.Tick(0)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}

	if status != StatusWon {
		t.Fatalf("expected won, got %v", status)
	}
	if len(rec.wins) != 1 || rec.wins[0] != 3 {
		t.Fatalf("expected one win at 3, got %v", rec.wins)
	}
	if first.Score() != 3 {
		t.Fatalf("score must stop at the threshold, got %d", first.Score())
	}
	for _, s := range rec.scores {
		if s > 3 {
			t.Fatalf("score display passed the threshold: %v", rec.scores)
		}
	}

	if c.Session() == first {
		t.Fatal("expected a fresh session after the win")
	}
	if c.Score() != 0 || c.Session().Coins() != 0 {
		t.Fatalf("fresh session should be empty, score %d coins %d", c.Score(), c.Session().Coins())
	}
	if c.Wins() != 1 {
		t.Fatalf("expected 1 win, got %d", c.Wins())
	}
}

func TestSlotOneCoinReachesActor(t *testing.T) {
	c, rec := newController(t, loadTuning(t, 0), &draws{miss: 99})
	waitLoaded(t, c)

	// One draw of 1 spawns at the center slot, every later draw misses.
	c.cfg.Rand.(*draws).seq = []int{1}

	frames := 0
	for c.Score() == 0 {
		if frames > 600 {
			t.Fatal("center coin never reached the actor")
		}
		if _, err := c.Tick(1.0 / 60); err != nil {
			t.Fatalf("tick: %v", err)
		}
		frames++
		if frames == 1 && c.Session().Coins() != 1 {
			t.Fatalf("expected one coin after the first tick, got %d", c.Session().Coins())
		}
	}

	// The coin travels about 142 units at 30 units/s before touching.
	if secs := float64(frames) / 60; secs < 4 || secs > 5.5 {
		t.Fatalf("pickup after %.2fs, expected about 4.7s", secs)
	}
	if c.Score() != 1 || c.Session().Coins() != 0 {
		t.Fatalf("expected score 1 and no coins, got %d and %d", c.Score(), c.Session().Coins())
	}
	if len(rec.coins) != 1 || rec.coins[0] != 1 {
		t.Fatalf("expected coin 1 collected, got %v", rec.coins)
	}
}

func TestTwentyPickupsRestart(t *testing.T) {
	c, rec := newController(t, loadTuning(t, 0), &draws{miss: 99})
	waitLoaded(t, c)

	for i := 1; i <= 20; i++ {
		placeCoin(t, c.Session(), atActor)
		status, err := c.Tick(0)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if i < 20 && c.Score() != i {
			t.Fatalf("pickup %d: expected score %d, got %d", i, i, c.Score())
		}
		if (i == 20) != (status == StatusWon) {
			t.Fatalf("pickup %d: unexpected status %v", i, status)
		}
	}

	if len(rec.wins) != 1 || rec.wins[0] != 20 {
		t.Fatalf("expected one win at 20, got %v", rec.wins)
	}
	if c.Score() != 0 || c.Session().Coins() != 0 {
		t.Fatalf("expected reset, score %d coins %d", c.Score(), c.Session().Coins())
	}
	if c.Status() != StatusLoading {
		t.Fatalf("restarted session should reload the actor, got %v", c.Status())
	}
	if last := rec.scores[len(rec.scores)-1]; last != 0 {
		t.Fatalf("score display should reset to 0, got %d", last)
	}
	if got := rec.scores[len(rec.scores)-2]; got != 20 {
		t.Fatalf("score display should show 20 before the reset, got %d", got)
	}
}

func TestAssetLoadFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	c, err := New(Config{
		Tuning: loadTuning(t, 0),
		Rand:   &draws{miss: 99},
		Loader: scene.LoaderFunc(func(ctx context.Context, name string) (*scene.Model, error) {
			return nil, boom
		}),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := c.Tick(0)
		if err != nil {
			if !errors.Is(err, boom) || !errors.Is(err, scene.ErrAssetLoad) {
				t.Fatalf("expected loader error, got %v", err)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("load failure never surfaced")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMissingAssetIsAssetLoadError(t *testing.T) {
	s, err := scene.NewPrefabLoader().Load(context.Background(), "nobody")
	if s != nil || !errors.Is(err, scene.ErrAssetLoad) {
		t.Fatalf("expected ErrAssetLoad, got %v", err)
	}
}

func TestTickBeforeStart(t *testing.T) {
	c, err := New(Config{Tuning: loadTuning(t, 0)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := c.Tick(0); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
	if c.MoveLeft() {
		t.Fatal("move before start should be a no-op")
	}
}

func TestSetTuningRestarts(t *testing.T) {
	c, _ := newController(t, loadTuning(t, 0), &draws{miss: 99})
	waitLoaded(t, c)
	placeCoin(t, c.Session(), atActor)
	if _, err := c.Tick(0); err != nil {
		t.Fatalf("tick: %v", err)
	}

	next := loadTuning(t, 5)
	if err := c.SetTuning(next); err != nil {
		t.Fatalf("set tuning: %v", err)
	}
	if c.Score() != 0 || c.Tuning().Score.Win != 5 {
		t.Fatalf("expected restart with new tuning, score %d win %d", c.Score(), c.Tuning().Score.Win)
	}

	bad := loadTuning(t, 0)
	bad.Lanes.Offsets = []float64{1, 2}
	if err := c.SetTuning(bad); err == nil {
		t.Fatal("expected invalid tuning to be rejected")
	}
	if c.Tuning() != next {
		t.Fatal("rejected tuning must not replace the current one")
	}
}

func TestClock(t *testing.T) {
	base := time.Unix(100, 0)
	c := &Clock{MaxStep: 0.25}

	if dt := c.Step(base); dt != 0 {
		t.Fatalf("first step should be 0, got %v", dt)
	}
	if dt := c.Step(base.Add(16 * time.Millisecond)); dt != 0.016 {
		t.Fatalf("expected 0.016, got %v", dt)
	}
	if dt := c.Step(base.Add(10 * time.Second)); dt != 0.25 {
		t.Fatalf("expected capped step, got %v", dt)
	}
	c.Reset()
	if dt := c.Step(base.Add(20 * time.Second)); dt != 0 {
		t.Fatalf("step after reset should be 0, got %v", dt)
	}
}

func TestClockKeepsFractionalMilliseconds(t *testing.T) {
	now := time.Unix(100, 0)
	c := &Clock{}
	c.Step(now)

	total := 0.0
	for i := 0; i < 60; i++ {
		now = now.Add(time.Second / 60)
		total += c.Step(now)
	}
	if math.Abs(total-1) > 1e-6 {
		t.Fatalf("expected 1s after 60 frames, got %v", total)
	}
}
