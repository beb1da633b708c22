package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Speaker plays the chime through beep's speaker, for front-ends that do not
// run an ebiten game loop.
type Speaker struct {
	volume float64
}

func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	return &Speaker{volume: volume}, nil
}

func (s *Speaker) PlayChime() {
	if s == nil {
		return
	}
	speaker.Play(Chime(SampleRate, s.volume))
}

// Close stops anything still playing.
func (s *Speaker) Close() {
	if s == nil {
		return
	}
	speaker.Clear()
}
