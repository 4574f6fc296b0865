// Package telemetry turns the game's cue stream into OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

const meterName = "github.com/Garsondee/Battle-Arena"

// Recorder is a game.CueSink that counts cues.
type Recorder struct {
	cues      metric.Int64Counter
	kills     metric.Int64Counter
	collected metric.Int64Counter
	level     metric.Int64ObservableGauge

	currentLevel atomic.Int64
}

// New builds a Recorder on m. A nil meter uses the global provider, which
// is a no-op until one is installed.
func New(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = otel.Meter(meterName)
	}
	r := &Recorder{}

	var err error
	r.cues, err = m.Int64Counter(
		"arena.cues",
		metric.WithDescription("Cues emitted by the simulation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cue counter: %w", err)
	}

	r.kills, err = m.Int64Counter(
		"arena.kills",
		metric.WithDescription("Tanks destroyed, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kill counter: %w", err)
	}

	r.collected, err = m.Int64Counter(
		"arena.powerups.collected",
		metric.WithDescription("Power-ups collected, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating power-up counter: %w", err)
	}

	r.level, err = m.Int64ObservableGauge(
		"arena.level",
		metric.WithDescription("Level number currently being played"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating level gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(r.level, r.currentLevel.Load())
			return nil
		},
		r.level,
	)
	if err != nil {
		return nil, fmt.Errorf("registering level callback: %w", err)
	}

	return r, nil
}

// HandleCue implements game.CueSink.
func (r *Recorder) HandleCue(ev game.Event) {
	ctx := context.Background()
	r.cues.Add(ctx, 1, metric.WithAttributes(attribute.String("cue", ev.Cue.String())))

	switch ev.Cue {
	case game.CueTankDestroyed:
		r.kills.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", ev.Detail)))
	case game.CuePowerUpCollected:
		r.collected.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", ev.Detail),
			attribute.String("player", ev.Actor),
		))
	case game.CueLevelStarted:
		r.currentLevel.Store(int64(ev.Level))
	}
}
