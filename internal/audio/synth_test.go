package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

// drain streams s to exhaustion and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestOscillator_Length(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		samples := drain(t, NewOscillator(440, 50*time.Millisecond, wave, SampleRate))
		assert.Len(t, samples, SampleRate.N(50*time.Millisecond), "wave %d", wave)
		for _, s := range samples {
			require.GreaterOrEqual(t, s[0], -1.0)
			require.LessOrEqual(t, s[0], 1.0)
			require.Equal(t, s[0], s[1], "mono signal on both channels")
		}
	}
}

func TestOscillator_SquareLevels(t *testing.T) {
	samples := drain(t, NewOscillator(100, 20*time.Millisecond, WaveSquare, SampleRate))
	for _, s := range samples {
		assert.Contains(t, []float64{-1, 1}, s[0])
	}
}

func TestOscillator_NoiseIsRepeatable(t *testing.T) {
	a := drain(t, NewOscillator(0, 10*time.Millisecond, WaveNoise, SampleRate))
	b := drain(t, NewOscillator(0, 10*time.Millisecond, WaveNoise, SampleRate))
	assert.Equal(t, a, b)
}

func TestEnvelope_FadesInAndOut(t *testing.T) {
	d := 100 * time.Millisecond
	samples := drain(t, NewEnvelope(NewOscillator(0, d, WaveSquare, SampleRate), d, 10*time.Millisecond, 10*time.Millisecond, SampleRate))
	require.Len(t, samples, SampleRate.N(d))
	assert.Equal(t, 0.0, samples[0][0], "attack starts at zero")
	assert.Equal(t, 1.0, samples[len(samples)/2][0], "sustain at full level")
	assert.InDelta(t, 0.0, samples[len(samples)-1][0], 0.01, "release ends near zero")
}

func TestSound_EveryAudibleCue(t *testing.T) {
	for _, c := range game.AllCues() {
		s := Sound(c, SampleRate, 0.5)
		if c == game.CuePlacementFailed {
			assert.Nil(t, s, "%s is silent", c)
			continue
		}
		require.NotNil(t, s, "%s has a sound", c)
		samples := drain(t, s)
		assert.NotEmpty(t, samples, "%s renders samples", c)
		assert.Less(t, len(samples), SampleRate.N(2*time.Second), "%s stays short", c)
	}
	assert.Nil(t, Sound(game.CueNone, SampleRate, 1))
}

func TestSound_ZeroVolumeIsSilent(t *testing.T) {
	for _, s := range drain(t, Sound(game.CueShot, SampleRate, 0)) {
		require.Equal(t, 0.0, s[0])
	}
}

func TestSound_SequenceLength(t *testing.T) {
	samples := drain(t, Sound(game.CueGameOver, SampleRate, 1))
	assert.Len(t, samples, 4*SampleRate.N(200*time.Millisecond))
}
