package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

func TestProvider_TotalsAndShutdown(t *testing.T) {
	p := NewProvider()

	r, err := New(nil)
	require.NoError(t, err)
	r.HandleCue(game.Event{Cue: game.CueLevelStarted, Level: 3})
	r.HandleCue(game.Event{Cue: game.CueShot})
	r.HandleCue(game.Event{Cue: game.CueShot})
	r.HandleCue(game.Event{Cue: game.CueTankDestroyed, Detail: "armored"})

	totals, err := p.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals["arena.cues{cue=shot}"])
	assert.Equal(t, int64(1), totals["arena.kills{kind=armored}"])
	assert.Equal(t, int64(3), totals["arena.level"])

	var logs bytes.Buffer
	require.NoError(t, p.Shutdown(context.Background(), slog.New(slog.NewTextHandler(&logs, nil))))
	assert.Contains(t, logs.String(), "arena.cues{cue=shot}")
	assert.Contains(t, logs.String(), "value=2")
}
