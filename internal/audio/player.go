package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

// Player is a game.CueSink that mixes cue sounds into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	logger      *slog.Logger
}

// NewPlayer creates a player at volume in [0, 1]. Sounds queue into the
// mixer but stay silent until Init succeeds.
func NewPlayer(volume float64, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		logger: logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Info("Audio initialized", "rate", int(SampleRate), "volume", p.volume)
	return nil
}

// HandleCue implements game.CueSink.
func (p *Player) HandleCue(ev game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted {
		return
	}
	s := Sound(ev.Cue, SampleRate, p.volume)
	if s == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// ToggleMute flips the mute state and returns the new one. Muting drops
// sounds already queued.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted {
		p.clear()
	}
	return p.muted
}

// Pending reports how many sounds are still playing.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close silences everything. beep has no speaker close, so the device
// stays open with an empty mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clear()
	p.initialized = false
}

func (p *Player) clear() {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Clear()
}
