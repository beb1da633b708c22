package audio

import (
	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Player replays the pre-rendered chime through ebiten. Overlapping pickups
// each get their own ebiten player.
type Player struct {
	ctx *ebaudio.Context
	pcm []byte
}

func NewPlayer(volume float64) *Player {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(int(SampleRate))
	}
	return &Player{ctx: ctx, pcm: RenderF32(Chime(beep.SampleRate(ctx.SampleRate()), volume))}
}

func (p *Player) PlayChime() {
	if p == nil || len(p.pcm) == 0 {
		return
	}
	p.ctx.NewPlayerF32FromBytes(p.pcm).Play()
}
