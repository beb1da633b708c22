// Package audio synthesizes the coin chime with beep and plays it either
// through ebiten's audio context or beep's speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const SampleRate = beep.SampleRate(44100)

type oscillator struct {
	freq     float64
	phase    float64
	total    int
	position int
	rate     beep.SampleRate
	square   bool
}

// NewOscillator streams a sine (or square) tone for d.
func NewOscillator(freq float64, d time.Duration, square bool, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, total: rate.N(d), rate: rate, square: square}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		if o.square {
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release.
type fade struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		if f.position >= f.total {
			return i, i > 0
		}
		vol := 1.0
		if f.attack > 0 && f.position < f.attack {
			vol = float64(f.position) / float64(f.attack)
		}
		if start := f.total - f.release; f.release > 0 && f.position >= start {
			vol = float64(f.total-f.position) / float64(f.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	chimeNote1    = 70 * time.Millisecond
	chimeNote2    = 180 * time.Millisecond
	chimeAttack   = 5 * time.Millisecond
	chimeRelease1 = 20 * time.Millisecond
	chimeRelease2 = 140 * time.Millisecond
)

// Chime is a short two-note pickup sound (B5 then E6) at vol in [0,1].
func Chime(rate beep.SampleRate, vol float64) beep.Streamer {
	n1 := newFade(NewOscillator(987.77, chimeNote1, true, rate), chimeNote1, chimeAttack, chimeRelease1, rate)
	n2 := newFade(NewOscillator(1318.51, chimeNote2, true, rate), chimeNote2, chimeAttack, chimeRelease2, rate)
	return withVolume(beep.Seq(n1, n2), vol)
}

// ChimeDuration is how long Chime plays.
func ChimeDuration() time.Duration {
	return chimeNote1 + chimeNote2
}
