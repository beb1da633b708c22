// Package tty draws a top-down view of a session on a terminal with tcell.
package tty

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/coinrunner/common"
	"github.com/milk9111/coinrunner/prefabs"
	"github.com/milk9111/coinrunner/scene"
)

const (
	maxRoadCols = 61
	hudRows     = 2

	coinRune  = 'o'
	actorRune = '@'
)

var (
	roadStyle   = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	markerStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	edgeStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
)

// Renderer maps the road onto the terminal with far Z at the top and world
// +X on the left, matching the 3D view.
type Renderer struct {
	screen tcell.Screen
	road   prefabs.RoadSpec
	lanes  []float64
}

func NewRenderer(s tcell.Screen, t *prefabs.RunnerSpec) *Renderer {
	r := &Renderer{screen: s}
	r.SetTuning(t)
	return r
}

func (r *Renderer) SetTuning(t *prefabs.RunnerSpec) {
	r.road = t.Road
	r.lanes = append(r.lanes[:0], t.Lanes.Offsets...)
}

type layout struct {
	left, cols int
	top, rows  int
}

func (r *Renderer) layout() layout {
	w, h := r.screen.Size()
	cols := w - 2
	if cols > maxRoadCols {
		cols = maxRoadCols
	}
	rows := h - hudRows
	return layout{left: (w - cols) / 2, cols: cols, top: hudRows, rows: rows}
}

// Cell returns the terminal cell for a world point.
func (r *Renderer) Cell(p mgl64.Vec3) (col, row int, ok bool) {
	l := r.layout()
	if l.cols < 2 || l.rows < 2 || r.road.Width <= 0 || r.road.Length <= 0 {
		return 0, 0, false
	}
	hw, hl := r.road.Width/2, r.road.Length/2
	fx := (hw - p.X()) / r.road.Width
	fz := (hl - p.Z()) / r.road.Length
	if fx < 0 || fx > 1 || fz < 0 || fz > 1 {
		return 0, 0, false
	}
	col = l.left + int(fx*float64(l.cols-1)+0.5)
	row = l.top + int(fz*float64(l.rows-1)+0.5)
	return col, row, true
}

// Draw paints the road, every visible node, and the HUD, then shows the frame.
func (r *Renderer) Draw(g *scene.Graph, score int, status string, banner bool) {
	r.screen.Clear()
	r.drawRoad()

	for _, n := range g.Nodes() {
		if !n.Visible || n.Model == nil {
			continue
		}
		col, row, ok := r.Cell(n.Bounds().Center())
		if !ok {
			continue
		}
		ch := actorRune
		if n.Model.Shape == scene.ShapeSphere {
			ch = coinRune
		}
		r.screen.SetContent(col, row, ch, nil, tcell.StyleDefault.Foreground(toColor(n.Model.Color)).Bold(true))
	}

	r.text(0, 0, common.ScoreText(score), hudStyle)
	if status != "" {
		r.text(0, 1, status, statusStyle)
	}
	if banner {
		w, h := r.screen.Size()
		r.text((w-len(common.WinMessage))/2, h/3, common.WinMessage, bannerStyle)
	}
	r.screen.Show()
}

func (r *Renderer) drawRoad() {
	l := r.layout()
	if l.cols < 2 || l.rows < 2 {
		return
	}
	hl := r.road.Length / 2

	for row := l.top; row < l.top+l.rows; row++ {
		for col := l.left; col < l.left+l.cols; col++ {
			r.screen.SetContent(col, row, '.', nil, roadStyle)
		}
	}

	for i := 0; i+1 < len(r.lanes); i++ {
		x := (r.lanes[i] + r.lanes[i+1]) / 2
		r.column(x, hl, '¦', markerStyle)
	}
	r.column(r.road.Width/2, hl, '|', edgeStyle)
	r.column(-r.road.Width/2, hl, '|', edgeStyle)
}

func (r *Renderer) column(x, hl float64, ch rune, style tcell.Style) {
	col, _, ok := r.Cell(mgl64.Vec3{x, 0, hl})
	if !ok {
		return
	}
	l := r.layout()
	for row := l.top; row < l.top+l.rows; row++ {
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func toColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
