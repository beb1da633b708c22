package main

import (
	"context"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/coinrunner/audio"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/session"
	"github.com/milk9111/coinrunner/tty"
)

const (
	frameInterval = 16 * time.Millisecond
	bannerSecs    = 2.0
)

func main() {
	seed := flag.Int64("seed", 0, "spawn seed (0 uses the clock)")
	tuningPath := flag.String("tuning", "runner.yaml", "gameplay tuning prefab")
	logPath := flag.String("log", "", "write logs to this file")
	mute := flag.Bool("mute", false, "disable the coin chime")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*tuningPath, *seed, *mute); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func run(tuningPath string, seed int64, mute bool) error {
	tuning, err := prefabs.LoadRunnerSpec(tuningPath)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var chime *audio.Speaker
	if !mute {
		chime, err = audio.NewSpeaker(0.4)
		if err != nil {
			// The game runs fine without sound.
			log.Printf("audio: %v", err)
		}
		defer chime.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	banner := 0.0
	ctrl, err := session.New(session.Config{
		Tuning: tuning,
		Rand:   rand.New(rand.NewSource(seed)),
		OnWin:  func(int) { banner = bannerSecs },
		OnCoin: func(uint64) { chime.PlayChime() },
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	renderer := tty.NewRenderer(screen, tuning)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	clock := &session.Clock{MaxStep: 0.1}

	for {
		select {
		case ev, ok := <-events:
			if !ok || !handleEvent(ctrl, screen, ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := clock.Step(now)
			if banner > 0 {
				banner -= dt
			}
			if _, err := ctrl.Tick(dt); err != nil {
				return err
			}
			renderer.Draw(ctrl.Scene(), ctrl.Score(), ctrl.Status().String(), banner > 0)
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running.
func handleEvent(ctrl *session.Controller, screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			ctrl.MoveLeft()
		case tcell.KeyRight:
			ctrl.MoveRight()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a', 'h':
				ctrl.MoveLeft()
			case 'd', 'l':
				ctrl.MoveRight()
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
