package game

import (
	"fmt"
)

// TestSim is a headless match harness used by tests and the headless
// report. It wraps a Game with deterministic seeding, a fixed time step,
// an optional autopilot and structured logging.
type TestSim struct {
	Game      *Game
	SimLog    *SimLog
	Stats     *MatchStats
	Autopilot *Autopilot
	DT        float64

	seed        int64
	players     int
	levels      LevelSource
	rules       Rules
	sinks       []CueSink
	autoAdvance bool
	verbose     bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, levels, rules, players, verbose; applied first
	simOptDriver                      // autopilot; applied after the game exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithSimLevels sets the campaign.
func WithSimLevels(src LevelSource) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.levels = src
	}}
}

// WithSimRules overrides the level policies.
func WithSimRules(r Rules) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rules = r
	}}
}

// WithSimPlayers selects one- or two-player mode.
func WithSimPlayers(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.players = n
	}}
}

// WithTickRate sets the fixed step to 1/hz seconds.
func WithTickRate(hz int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		if hz > 0 {
			ts.DT = 1.0 / float64(hz)
		}
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithSimSink attaches an extra cue consumer.
func WithSimSink(s CueSink) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.sinks = append(ts.sinks, s)
	}}
}

// WithAutoAdvance moves on to the next level as soon as one is cleared.
func WithAutoAdvance(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.autoAdvance = v
	}}
}

// WithAutopilot lets the harness drive the player tanks.
func WithAutopilot() SimOption {
	return SimOption{simOptDriver, func(ts *TestSim) {
		ts.Autopilot = NewAutopilot(ts.seed ^ 0x5eed)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, levels, rules, players, verbose)
//  2. Game construction with the log and stats attached
//  3. Drivers
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		DT:      1.0 / 60,
		seed:    1,
		players: 1,
		rules:   DefaultRules(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Stats = NewMatchStats()

	gameOpts := []Option{
		WithSeed(ts.seed),
		WithRules(ts.rules),
		WithPlayers(ts.players),
		WithCueSink(ts.SimLog),
		WithCueSink(ts.Stats),
	}
	for _, s := range ts.sinks {
		gameOpts = append(gameOpts, WithCueSink(s))
	}
	ts.Game = New(ts.levels, gameOpts...)

	for _, o := range opts {
		if o.kind == simOptDriver {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
// It stops early once the game reaches a terminal state.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		if ts.Game.State().Terminal() {
			return
		}
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if ts.Game.State().Terminal() {
			break
		}
		ts.runOneTick()
		if predicate(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

// runOneTick drives one frame the way a front-end would.
func (ts *TestSim) runOneTick() {
	g := ts.Game
	prevState := g.State()
	prevLevel := g.LevelNumber()

	if g.State() == StateLevelComplete && ts.autoAdvance {
		g.AdvanceLevel()
	}
	if ts.Autopilot != nil {
		ts.Autopilot.Step(g, ts.DT)
	}
	g.Tick(ts.DT)

	// --- Post-tick logging ---

	tick := g.TickCount()
	if g.LevelNumber() != prevLevel {
		ts.SimLog.Add(tick, g.LevelNumber(), "--", "state", "level",
			fmt.Sprintf("%d → %d", prevLevel, g.LevelNumber()), float64(g.LevelNumber()))
	}
	if g.State() != prevState {
		ts.SimLog.Add(tick, g.LevelNumber(), "--", "state", "change",
			fmt.Sprintf("%s → %s", prevState, g.State()), 0)
	}
	if !ts.verbose || g.Level() == nil {
		return
	}
	for _, t := range g.Level().Tanks() {
		ts.SimLog.AddVerbose(tick, g.LevelNumber(), t.Label(), "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", t.pos.X, t.pos.Y), 0)
		ts.SimLog.AddVerbose(tick, g.LevelNumber(), t.Label(), "status", "health",
			fmt.Sprintf("%d", t.health), float64(t.health))
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Game.TickCount()
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick    int
	State   State
	Level   int
	Tanks   []TankSnapshot
	Bullets int
}

// TankSnapshot is a lightweight copy of a tank's state at a tick.
type TankSnapshot struct {
	Label  string
	Kind   TankKind
	X, Y   float64
	Facing Direction
	Health int
	Frozen bool
}

// Snapshot returns the current state of all tanks in the level.
func (ts *TestSim) Snapshot() SimSnapshot {
	g := ts.Game
	snap := SimSnapshot{Tick: g.TickCount(), State: g.State(), Level: g.LevelNumber()}
	if g.Level() == nil {
		return snap
	}
	snap.Bullets = len(g.Level().Bullets())
	for _, t := range g.Level().Tanks() {
		snap.Tanks = append(snap.Tanks, TankSnapshot{
			Label:  t.label,
			Kind:   t.kind,
			X:      t.pos.X,
			Y:      t.pos.Y,
			Facing: t.facing,
			Health: t.health,
			Frozen: t.IsFrozen(),
		})
	}
	return snap
}

// Outcome classifies the match so far.
func (ts *TestSim) Outcome() MatchOutcomeReason {
	return DetermineMatchOutcome(ts.Game, ts.Stats)
}
