package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadRunnerSpec(t *testing.T) {
	spec, err := LoadRunnerSpec("runner.yaml")
	if err != nil {
		t.Fatalf("LoadRunnerSpec: %v", err)
	}

	if got := spec.Lanes.Offsets; len(got) != 3 || got[0] != 30 || got[1] != 0 || got[2] != -30 {
		t.Fatalf("unexpected lane offsets %v", got)
	}
	if spec.Actor.Smoothing != 0.1 {
		t.Fatalf("smoothing = %v, want 0.1", spec.Actor.Smoothing)
	}
	if spec.Spawn.Range != 100 || len(spec.Spawn.Slots) != 3 {
		t.Fatalf("unexpected spawn spec %+v", spec.Spawn)
	}
	if spec.Spawn.Slots[1].Vec().Z() != 100 {
		t.Fatalf("slot 1 = %v", spec.Spawn.Slots[1])
	}
	if spec.Score.Win != 20 {
		t.Fatalf("win = %d, want 20", spec.Score.Win)
	}
	if spec.Coin.Direction.Vec().Z() != -1 {
		t.Fatalf("coin direction = %v", spec.Coin.Direction)
	}
}

func TestRunnerSpecValidate(t *testing.T) {
	valid := func() RunnerSpec {
		return RunnerSpec{
			Lanes: LanesSpec{Offsets: []float64{30, 0, -30}},
			Actor: ActorSpec{Smoothing: 0.1},
			Spawn: SpawnSpec{Range: 100, Slots: []Vec3{{0, 5, 100}}},
			Score: ScoreSpec{Win: 20},
			Coin:  CoinSpec{Speed: 30},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*RunnerSpec)
		wantErr string
	}{
		{"ok", func(*RunnerSpec) {}, ""},
		{"two_lanes", func(s *RunnerSpec) { s.Lanes.Offsets = []float64{1, 2} }, "lanes.offsets"},
		{"smoothing_above_one", func(s *RunnerSpec) { s.Actor.Smoothing = 1.5 }, "smoothing"},
		{"zero_range", func(s *RunnerSpec) { s.Spawn.Range = 0 }, "spawn.range"},
		{"no_slots", func(s *RunnerSpec) { s.Spawn.Slots = nil }, "spawn.slots"},
		{"zero_win", func(s *RunnerSpec) { s.Score.Win = 0 }, "score.win"},
		{"negative_speed", func(s *RunnerSpec) { s.Coin.Speed = -1 }, "coin.speed"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := valid()
			c.mutate(&s)
			err := s.Validate()
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestVec3Unmarshal(t *testing.T) {
	var ok struct {
		V Vec3 `yaml:"v"`
	}
	if err := yaml.Unmarshal([]byte("v: [1, 2.5, -3]"), &ok); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ok.V != (Vec3{1, 2.5, -3}) {
		t.Fatalf("got %v", ok.V)
	}

	var bad struct {
		V Vec3 `yaml:"v"`
	}
	if err := yaml.Unmarshal([]byte("v: [1, 2]"), &bad); err == nil {
		t.Fatalf("expected error for short vector")
	}
}

func TestYAMLColor(t *testing.T) {
	var c YAMLColor
	if err := yaml.Unmarshal([]byte(`"#ff00f7"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := color.NRGBA{R: 0xff, G: 0x00, B: 0xf7, A: 0xff}
	if got := c.RGBA8(color.NRGBA{}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}

	var empty YAMLColor
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	if got := empty.RGBA8(fallback); got != fallback {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestLoadModelSpec(t *testing.T) {
	spec, err := LoadModelSpec("boy")
	if err != nil {
		t.Fatalf("LoadModelSpec: %v", err)
	}
	run, ok := spec.Clips["run"]
	if !ok {
		t.Fatalf("expected run clip, got %v", spec.Clips)
	}
	if run.FPS <= 0 || len(run.Poses) == 0 || !run.Loop {
		t.Fatalf("unexpected run clip %+v", run)
	}

	if _, err := LoadModelSpec("missing"); err == nil {
		t.Fatalf("expected error for missing model")
	}
}

func TestLoadEntityBuildSpec(t *testing.T) {
	for _, name := range []string{"actor.yaml", "coin.yaml"} {
		spec, err := LoadEntityBuildSpec(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, ok := spec.Components["transform"]; !ok {
			t.Fatalf("%s: missing transform component", name)
		}
		model, err := DecodeComponentSpec[ModelComponentSpec](spec.Components["model"])
		if err != nil {
			t.Fatalf("%s: decode model: %v", name, err)
		}
		if model.Asset == "" && model.Shape == "" {
			t.Fatalf("%s: model has neither asset nor shape", name)
		}
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"spawn.tengo", "scripts/spawn.tengo", "prefabs/scripts/spawn_uniform.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if !strings.Contains(string(data), "slot") {
			t.Fatalf("LoadScript(%q): unexpected body", name)
		}
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	if err := os.WriteFile(filepath.Join(dir, "runner.yaml"), []byte("name: override\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load("prefabs/runner.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "name: override\n" {
		t.Fatalf("expected disk copy, got %q", data)
	}
	if _, ok := ModTime("runner.yaml"); !ok {
		t.Fatalf("expected mod time for disk copy")
	}
	if _, ok := ModTime("coin.yaml"); ok {
		t.Fatalf("embedded-only prefab should have no mod time")
	}
}

func TestWatcherReportsSpecWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "runner.yaml")
	if err := os.WriteFile(target, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Events:
		if change.Path != target || change.Script {
			t.Fatalf("unexpected change %+v", change)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}
