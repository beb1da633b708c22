package main

import (
	"context"
	"flag"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (status line, prefab hot reload)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	seed := flag.Int64("seed", 0, "coin spawn seed (0 uses the clock)")
	tuning := flag.String("tuning", "runner.yaml", "gameplay tuning prefab")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("coinrunner")

	if err := run(Options{TuningPath: *tuning, Seed: *seed, Debug: *debug}); err != nil {
		log.Fatal(err)
	}
}

func run(opts Options) error {
	game, err := NewGame(context.Background(), opts)
	if err != nil {
		return err
	}
	defer game.Close()

	return ebiten.RunGame(game)
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
