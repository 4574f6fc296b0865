// Package audio synthesises a short sound for each game cue and plays it
// through the system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

// SampleRate is the rate every sound is generated at.
const SampleRate = beep.SampleRate(44100)

// WaveType is an oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a wave of the given shape. Noise is seeded so the
// same sound always renders the same samples.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq) + 1)), // #nosec G404 -- audio noise, not security
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
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

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.totalSamples - e.releaseSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. log2(0) is -Inf, so 0 means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one enveloped oscillator.
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, d/10, d/2, rate)
}

// notes plays tones of equal length one after another.
func notes(d time.Duration, wave WaveType, rate beep.SampleRate, freqs ...float64) beep.Streamer {
	seq := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		seq[i] = tone(f, d, wave, rate)
	}
	return beep.Seq(seq...)
}

// --- Cue sounds ---

// Sound renders the effect for cue at the given volume, or nil for cues
// that make no sound.
func Sound(cue game.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case game.CueShot:
		s = tone(660, 70*time.Millisecond, WaveSquare, rate)
	case game.CueBrickHit:
		s = tone(0, 120*time.Millisecond, WaveNoise, rate)
	case game.CueArmoredHit:
		s = beep.Mix(
			newVolume(tone(220, 150*time.Millisecond, WaveSquare, rate), 0.6),
			newVolume(tone(330, 150*time.Millisecond, WaveSine, rate), 0.4),
		)
	case game.CueTankDestroyed:
		s = beep.Mix(
			newVolume(tone(0, 400*time.Millisecond, WaveNoise, rate), 0.7),
			newVolume(tone(70, 400*time.Millisecond, WaveSaw, rate), 0.5),
		)
	case game.CueBaseDestroyed:
		s = beep.Mix(
			newVolume(tone(0, 900*time.Millisecond, WaveNoise, rate), 0.8),
			newVolume(tone(55, 900*time.Millisecond, WaveSaw, rate), 0.6),
		)
	case game.CueTankFrozen:
		s = notes(60*time.Millisecond, WaveSine, rate, 1320, 990, 1320)
	case game.CuePowerUpSpawned:
		s = beep.Mix(
			newVolume(tone(880, 250*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(tone(1760, 250*time.Millisecond, WaveSine, rate), 0.3),
		)
	case game.CuePowerUpCollected:
		s = notes(90*time.Millisecond, WaveSine, rate, 988, 1319)
	case game.CueLevelStarted:
		s = notes(120*time.Millisecond, WaveSquare, rate, 523, 659, 784)
	case game.CueLevelComplete, game.CueVictory:
		s = notes(140*time.Millisecond, WaveSquare, rate, 523, 659, 784, 1047)
	case game.CueGameOver:
		s = notes(200*time.Millisecond, WaveSaw, rate, 392, 330, 262, 196)
	default:
		return nil
	}
	return newVolume(s, volume)
}
