package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coinrunner/audio"
	"github.com/milk9111/coinrunner/common"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/render"
	"github.com/milk9111/coinrunner/session"
)

const (
	bannerSecs  = 2.0
	chimeVolume = 0.4
	maxFrameDt  = 0.1
)

type Options struct {
	TuningPath string
	Seed       int64
	Debug      bool
}

type Game struct {
	ctrl     *session.Controller
	renderer *render.Renderer
	input    *Input
	clock    session.Clock
	chime    *audio.Player

	pauseUI    *ebitenui.UI
	pauseScore *widget.Text
	paused     bool
	quit       bool

	tuningPath string
	debug      bool
	watcher    *prefabs.Watcher

	width, height float64
}

func NewGame(ctx context.Context, opts Options) (*Game, error) {
	tuning, err := prefabs.LoadRunnerSpec(opts.TuningPath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		input:      NewInput(),
		clock:      session.Clock{MaxStep: maxFrameDt},
		chime:      audio.NewPlayer(chimeVolume),
		tuningPath: opts.TuningPath,
		debug:      opts.Debug,
		width:      common.BaseWidth,
		height:     common.BaseHeight,
	}
	g.renderer = render.NewRenderer(tuning, g.width, g.height)
	g.pauseUI = NewPauseUI(g)

	cfg := session.Config{
		Tuning: tuning,
		OnWin: func(score int) {
			g.renderer.HUD().ShowWin(bannerSecs)
		},
		OnCoin: func(uint64) {
			g.chime.PlayChime()
		},
	}
	if opts.Seed != 0 {
		cfg.Rand = newRand(opts.Seed)
	}

	g.ctrl, err = session.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := g.ctrl.Start(ctx); err != nil {
		return nil, err
	}

	if g.debug {
		g.watcher, err = prefabs.NewWatcher(
			prefabs.Dir,
			filepath.Join(prefabs.Dir, "models"),
			filepath.Join(prefabs.Dir, "scripts"),
		)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
			g.watcher = nil
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.input.Update()
	if g.input.PausePressed {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollReload()

	if g.input.LeftPressed {
		g.ctrl.MoveLeft()
	}
	if g.input.RightPressed {
		g.ctrl.MoveRight()
	}

	dt := g.clock.Step(time.Now())
	g.renderer.HUD().Update(dt)

	if _, err := g.ctrl.Tick(dt); err != nil {
		return err
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused && g.pauseScore != nil {
		g.pauseScore.Label = common.ScoreText(g.ctrl.Score())
	}
	// Time spent in the menu does not count as frame time.
	g.clock.Reset()
}

// pollReload reapplies tuning after prefab edits on disk.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadTuning(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadTuning(change prefabs.Change) {
	tuning, err := prefabs.LoadRunnerSpec(g.tuningPath)
	if err != nil {
		log.Printf("reload %s: %v", change.Path, err)
		return
	}
	if err := g.ctrl.SetTuning(tuning); err != nil {
		log.Printf("reload %s: %v", change.Path, err)
		return
	}
	g.renderer.SetTuning(tuning, g.width, g.height)
	log.Printf("reloaded tuning after change to %s", change.Path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.ctrl.Scene())

	status := ""
	if g.debug {
		status = g.ctrl.Status().String()
	}
	g.renderer.HUD().Draw(screen, g.ctrl.Score(), status)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.renderer.Camera.Resize(g.width, g.height)
	}
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.ctrl.Close()
}
