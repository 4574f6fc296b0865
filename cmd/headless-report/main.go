package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/levels"
	"github.com/Garsondee/Battle-Arena/internal/record"
)

type runStats struct {
	runIndex int
	runID    uuid.UUID
	seed     int64

	firstShotTick    int
	firstKillTick    int
	firstFreezeTick  int
	firstPowerUpTick int
	endTick          int

	playerShots  int
	enemyShots   int
	brickHits    int
	armoredHits  int
	playersLost  int
	powerUps     int
	placementBad int

	kills   map[string]int
	outcome game.MatchOutcomeReason

	record *record.MatchRecord
}

type reportConfig struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	players  int
	parallel int
	source   game.LevelSource
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var players int
	var parallel int
	var levelsDir string
	var recordDSN string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 60*60*5, "tick limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&players, "players", 1, "autopiloted players per match (1 or 2)")
	flag.IntVar(&parallel, "parallel", runtime.NumCPU(), "matches simulated at once")
	flag.StringVar(&levelsDir, "levels", "", "directory of Level<N>.xml files (default: built-in campaign)")
	flag.StringVar(&recordDSN, "record", "", "SQLite file to store match records in")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if players != 1 && players != 2 {
		fmt.Println("error: -players must be 1 or 2")
		return
	}

	var source game.LevelSource = levels.Embedded(nil)
	if levelsDir != "" {
		source = levels.Dir(levelsDir, nil)
	}
	cfg := reportConfig{
		runs:     runs,
		ticks:    ticks,
		seedBase: seedBase,
		seedStep: seedStep,
		players:  players,
		parallel: parallel,
		source:   source,
	}

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("runs=%d ticks=%d players=%d seed_base=%d seed_step=%d\n\n", runs, ticks, players, seedBase, seedStep)

	all, err := runAll(context.Background(), cfg)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(os.Stdout, rs)
	}
	printAggregate(os.Stdout, all)

	if recordDSN != "" {
		if err := saveRecords(recordDSN, all); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nrecorded %d matches to %s\n", len(all), recordDSN)
	}
}

// runAll simulates every match, at most cfg.parallel at a time, and returns
// the results in run order.
func runAll(ctx context.Context, cfg reportConfig) ([]runStats, error) {
	all := make([]runStats, cfg.runs)
	eg, ctx := errgroup.WithContext(ctx)
	if cfg.parallel > 0 {
		eg.SetLimit(cfg.parallel)
	}
	for i := 0; i < cfg.runs; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := cfg.seedBase + int64(i)*cfg.seedStep
			rs, err := runMatch(i+1, seed, cfg)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runMatch(runIndex int, seed int64, cfg reportConfig) (runStats, error) {
	ts := game.NewTestSim(
		game.WithSimSeed(seed),
		game.WithSimLevels(cfg.source),
		game.WithSimPlayers(cfg.players),
		game.WithAutoAdvance(true),
		game.WithAutopilot(),
	)
	ts.RunTicks(cfg.ticks)

	rec, err := record.NewMatchRecord(ts.Game, seed, ts.Stats)
	if err != nil {
		return runStats{}, err
	}

	entries := ts.SimLog.Entries()
	return runStats{
		runIndex:         runIndex,
		runID:            rec.ID,
		seed:             seed,
		firstShotTick:    firstTick(entries, game.CueShot, ""),
		firstKillTick:    ts.Stats.FirstKillTick,
		firstFreezeTick:  firstTick(entries, game.CueTankFrozen, ""),
		firstPowerUpTick: firstTick(entries, game.CuePowerUpCollected, ""),
		endTick:          ts.CurrentTick(),
		playerShots:      ts.Stats.PlayerShots,
		enemyShots:       ts.Stats.EnemyShots,
		brickHits:        ts.Stats.BrickHits,
		armoredHits:      ts.Stats.ArmoredHits,
		playersLost:      ts.Stats.PlayersLost,
		powerUps:         ts.Stats.Collected(),
		placementBad:     ts.Stats.PlacementFailures,
		kills:            ts.Stats.Kills,
		outcome:          ts.Outcome(),
		record:           rec,
	}, nil
}

func firstTick(entries []game.SimLogEntry, cue game.Cue, actor string) int {
	for _, e := range entries {
		if e.Category != "cue" || e.Key != cue.String() {
			continue
		}
		if actor == "" || e.Actor == actor {
			return e.Tick
		}
	}
	return -1
}

func saveRecords(dsn string, all []runStats) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	store, err := record.Open("sqlite", dsn, log)
	if err != nil {
		return err
	}
	defer store.Close()
	for _, rs := range all {
		if err := store.Save(rs.record); err != nil {
			return fmt.Errorf("saving run %d: %w", rs.runIndex, err)
		}
	}
	return nil
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	fmt.Fprintf(w, "outcome: %s (%s) level=%d cleared=%d end_tick=%d\n",
		rs.outcome.Outcome, rs.outcome.Description, rs.outcome.Level, rs.outcome.LevelsCleared, rs.endTick)
	fmt.Fprintf(w, "phase_markers: first_shot=%d first_kill=%d first_freeze=%d first_powerup=%d\n",
		rs.firstShotTick, rs.firstKillTick, rs.firstFreezeTick, rs.firstPowerUpTick)
	fmt.Fprintf(w, "event_totals: player_shots=%d enemy_shots=%d brick_hits=%d armored_hits=%d players_lost=%d powerups=%d placement_failed=%d\n",
		rs.playerShots, rs.enemyShots, rs.brickHits, rs.armoredHits, rs.playersLost, rs.powerUps, rs.placementBad)
	fmt.Fprintf(w, "kills: %s\n", joinCounts(rs.kills))
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	outcomes := map[string]int{}
	kills := map[string]int{}
	totalCleared := 0
	totalPlayerShots := 0
	totalEnemyShots := 0
	totalLost := 0
	totalPowerUps := 0
	killTicks := make([]int, 0, len(all))
	endTicks := make([]int, 0, len(all))

	for _, rs := range all {
		outcomes[rs.outcome.Outcome.String()]++
		for k, n := range rs.kills {
			kills[k] += n
		}
		totalCleared += rs.outcome.LevelsCleared
		totalPlayerShots += rs.playerShots
		totalEnemyShots += rs.enemyShots
		totalLost += rs.playersLost
		totalPowerUps += rs.powerUps
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		endTicks = append(endTicks, rs.endTick)
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d\n", len(all))
	fmt.Fprintf(w, "outcomes: %s\n", joinCounts(outcomes))
	fmt.Fprintf(w, "avg_per_run: levels_cleared=%.1f player_shots=%.1f enemy_shots=%.1f players_lost=%.1f powerups=%.1f\n",
		avg(totalCleared, len(all)), avg(totalPlayerShots, len(all)), avg(totalEnemyShots, len(all)), avg(totalLost, len(all)), avg(totalPowerUps, len(all)))
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_kill=%s match_end=%s\n", avgTickString(killTicks), avgTickString(endTicks))
	fmt.Fprintf(w, "kills: %s\n", joinCounts(kills))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}
