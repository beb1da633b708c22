package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/coinrunner/common"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// HUD draws the score line and, for a short while after a win, the win
// banner.
type HUD struct {
	face   text.Face
	banner float64
}

func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

// ShowWin keeps the win banner up for secs.
func (h *HUD) ShowWin(secs float64) {
	h.banner = secs
}

func (h *HUD) Update(dt float64) {
	if h.banner > 0 {
		h.banner -= dt
	}
}

func (h *HUD) BannerVisible() bool {
	return h.banner > 0
}

func (h *HUD) Draw(screen *ebiten.Image, score int, status string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 10)
	op.GeoM.Scale(2, 2)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, common.ScoreText(score), h.face, op)

	if status != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(12, 40)
		op.ColorScale.ScaleWithColor(colornames.Lightgrey)
		text.Draw(screen, status, h.face, op)
	}

	if h.BannerVisible() {
		w := float64(screen.Bounds().Dx())
		hgt := float64(screen.Bounds().Dy())
		tw, th := text.Measure(common.WinMessage, h.face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(-tw/2, -th/2)
		op.GeoM.Scale(3, 3)
		op.GeoM.Translate(w/2, hgt/3)
		op.ColorScale.ScaleWithColor(colornames.Gold)
		text.Draw(screen, common.WinMessage, h.face, op)
	}
}
