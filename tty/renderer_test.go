package tty

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/common"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func tuning(t *testing.T) *prefabs.RunnerSpec {
	t.Helper()
	spec, err := prefabs.LoadRunnerSpec("runner.yaml")
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	return spec
}

func rowText(s tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestCellMapping(t *testing.T) {
	screen := newScreen(t, 80, 32)
	r := NewRenderer(screen, tuning(t))

	left, _, ok := r.Cell(mgl64.Vec3{30, 0, 0})
	if !ok {
		t.Fatal("left lane should be on screen")
	}
	center, _, _ := r.Cell(mgl64.Vec3{0, 0, 0})
	right, _, _ := r.Cell(mgl64.Vec3{-30, 0, 0})
	if !(left < center && center < right) {
		t.Fatalf("+X should be left of -X, got %d %d %d", left, center, right)
	}

	_, far, _ := r.Cell(mgl64.Vec3{0, 0, 100})
	_, near, _ := r.Cell(mgl64.Vec3{0, 0, -50})
	if !(far < near) {
		t.Fatalf("far coins should be above the actor, got rows %d %d", far, near)
	}

	if _, _, ok := r.Cell(mgl64.Vec3{0, 0, -1000}); ok {
		t.Fatal("point off the road should not map")
	}
}

func TestDrawNodesAndHUD(t *testing.T) {
	screen := newScreen(t, 80, 32)
	r := NewRenderer(screen, tuning(t))

	boySpec, err := prefabs.LoadModelSpec("boy")
	if err != nil {
		t.Fatalf("load boy: %v", err)
	}
	g := scene.NewGraph()
	g.Add(scene.ModelFromSpec(boySpec), mgl64.Vec3{0, 0, -50}, 1)
	coin := &scene.Model{Shape: scene.ShapeSphere, Size: mgl64.Vec3{10, 10, 10}}
	g.Add(coin, mgl64.Vec3{30, 5, 100}, 1)
	hidden := g.Add(coin, mgl64.Vec3{-30, 5, 100}, 1)
	g.SetVisible(hidden, false)

	r.Draw(g, 7, "running", true)

	if got := rowText(screen, 0, 80); !strings.HasPrefix(got, "Score: 7") {
		t.Fatalf("expected score line, got %q", got)
	}
	if got := rowText(screen, 1, 80); !strings.HasPrefix(got, "running") {
		t.Fatalf("expected status line, got %q", got)
	}

	col, row, _ := r.Cell(mgl64.Vec3{0, 9, -50})
	if ch, _, _, _ := screen.GetContent(col, row); ch != actorRune {
		t.Fatalf("expected actor at %d,%d, got %q", col, row, ch)
	}
	col, row, _ = r.Cell(mgl64.Vec3{30, 5, 100})
	if ch, _, _, _ := screen.GetContent(col, row); ch != coinRune {
		t.Fatalf("expected coin at %d,%d, got %q", col, row, ch)
	}
	col, row, _ = r.Cell(mgl64.Vec3{-30, 5, 100})
	if ch, _, _, _ := screen.GetContent(col, row); ch == coinRune {
		t.Fatal("hidden coin should not be drawn")
	}

	found := false
	for y := 0; y < 32; y++ {
		if strings.Contains(rowText(screen, y, 80), common.WinMessage) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the win banner")
	}
}

func TestTinyScreenDoesNotPanic(t *testing.T) {
	screen := newScreen(t, 2, 2)
	r := NewRenderer(screen, tuning(t))
	g := scene.NewGraph()
	g.Add(&scene.Model{Shape: scene.ShapeSphere, Size: mgl64.Vec3{1, 1, 1}}, mgl64.Vec3{}, 1)
	r.Draw(g, 0, "", false)
}
