package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/record"
)

func openField() game.LevelSpec {
	return game.LevelSpec{
		Name: "open field",
		Enemies: []game.EnemySpec{
			{Kind: game.TankBasic, Pos: game.Position{X: 0}},
			{Kind: game.TankFast, Pos: game.Position{X: 276}},
		},
		Objects: []game.ObjectSpec{{Kind: game.BlockBase, Pos: game.Position{X: 276, Y: 552}}},
	}
}

func testConfig(runs int) reportConfig {
	return reportConfig{
		runs:     runs,
		ticks:    600,
		seedBase: 42,
		seedStep: 1,
		players:  1,
		parallel: 2,
		source:   game.LevelList{openField(), openField()},
	}
}

func TestRunAll_OrderedAndSeeded(t *testing.T) {
	all, err := runAll(context.Background(), testConfig(4))
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(all))
	}
	ids := map[string]bool{}
	for i, rs := range all {
		if rs.runIndex != i+1 {
			t.Errorf("run %d reported index %d", i+1, rs.runIndex)
		}
		if rs.seed != 42+int64(i) {
			t.Errorf("run %d seed=%d", i+1, rs.seed)
		}
		if rs.endTick == 0 || rs.endTick > 600 {
			t.Errorf("run %d end tick %d outside the limit", i+1, rs.endTick)
		}
		if rs.record == nil || rs.record.ID != rs.runID {
			t.Errorf("run %d record does not carry the run id", i+1)
		}
		ids[rs.runID.String()] = true
	}
	if len(ids) != 4 {
		t.Errorf("run ids must be unique, got %d distinct", len(ids))
	}
}

func TestRunAll_SameSeedSameMatch(t *testing.T) {
	cfg := testConfig(1)
	a, err := runAll(context.Background(), cfg)
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	b, err := runAll(context.Background(), cfg)
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	if a[0].endTick != b[0].endTick || a[0].playerShots != b[0].playerShots || a[0].enemyShots != b[0].enemyShots {
		t.Fatalf("runs diverged: %+v vs %+v", a[0], b[0])
	}
	if a[0].outcome.Description != b[0].outcome.Description {
		t.Fatalf("outcomes diverged: %s vs %s", a[0].outcome.Description, b[0].outcome.Description)
	}
}

func TestRunAll_EmptyCampaignIsVictory(t *testing.T) {
	cfg := testConfig(2)
	cfg.source = game.LevelList{}
	all, err := runAll(context.Background(), cfg)
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	for _, rs := range all {
		if rs.outcome.Outcome != game.OutcomeVictory {
			t.Errorf("run %d: expected victory, got %s", rs.runIndex, rs.outcome.Outcome)
		}
		if rs.endTick != 0 {
			t.Errorf("run %d: nothing to simulate, ran %d ticks", rs.runIndex, rs.endTick)
		}
	}
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runAll(ctx, testConfig(3)); err == nil {
		t.Fatalf("expected an error from a cancelled context")
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Actor: "E0", Category: "cue", Key: "shot"},
		{Tick: 5, Actor: "P1", Category: "cue", Key: "shot"},
		{Tick: 6, Actor: "P1", Category: "state", Key: "shot"},
	}
	if got := firstTick(entries, game.CueShot, ""); got != 3 {
		t.Errorf("first shot: got %d", got)
	}
	if got := firstTick(entries, game.CueShot, "P1"); got != 5 {
		t.Errorf("first P1 shot: got %d", got)
	}
	if got := firstTick(entries, game.CueTankFrozen, ""); got != -1 {
		t.Errorf("missing cue: got %d", got)
	}
}

func TestFormatting(t *testing.T) {
	if got := joinCounts(map[string]int{"fast": 2, "basic": 1}); got != "basic=1,fast=2" {
		t.Errorf("joinCounts: %q", got)
	}
	if got := joinCounts(nil); got != "none" {
		t.Errorf("joinCounts(nil): %q", got)
	}
	if got := avgTickString(nil); got != "n/a" {
		t.Errorf("avgTickString(nil): %q", got)
	}
	if got := avgTickString([]int{10, 20}); got != "15.0" {
		t.Errorf("avgTickString: %q", got)
	}
	if got := avg(3, 0); got != 0 {
		t.Errorf("avg with no runs: %v", got)
	}
}

func TestPrintReport(t *testing.T) {
	all, err := runAll(context.Background(), testConfig(2))
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	var buf bytes.Buffer
	for _, rs := range all {
		printRun(&buf, rs)
	}
	printAggregate(&buf, all)
	out := buf.String()

	for _, want := range []string{"--- Run 1 (seed=42", "--- Run 2 (seed=43", "=== Aggregate ===", "runs=2", "phase_marker_avg_ticks:"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestSaveRecords(t *testing.T) {
	all, err := runAll(context.Background(), testConfig(3))
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	dsn := filepath.Join(t.TempDir(), "matches.db")
	if err := saveRecords(dsn, all); err != nil {
		t.Fatalf("saveRecords: %v", err)
	}

	store, err := record.Open("sqlite", dsn, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	got, err := store.Get(all[0].runID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Seed != 42 {
		t.Errorf("stored seed=%d", got.Seed)
	}
}
