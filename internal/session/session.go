// Package session owns one playable match for an interactive front-end:
// the Game, its log and stats sinks, pause state, restarts and recording
// the result when the match ends.
package session

import (
	"log/slog"
	"time"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/record"
)

// Recorder stores finished matches. *record.Store satisfies it.
type Recorder interface {
	Save(rec *record.MatchRecord) error
}

// Config is everything a Session needs to start matches.
type Config struct {
	Source  game.LevelSource
	Rules   game.Rules
	Seed    int64 // 0 picks a seed from the clock for every match
	Sinks   []game.CueSink
	Store   Recorder // optional
	Logger  *slog.Logger
	LogSize int // ticks covered by Report; 0 means 10 seconds at 60 Hz
}

// Session runs matches one after another.
type Session struct {
	cfg    Config
	logger *slog.Logger

	game     *game.Game
	log      *game.SimLog
	stats    *game.MatchStats
	seed     int64
	players  int
	paused   bool
	recorded bool
}

// New prepares a session. No match runs until Start.
func New(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogSize <= 0 {
		cfg.LogSize = 600
	}
	return &Session{cfg: cfg, logger: cfg.Logger}
}

// Start begins a new campaign for one or two players. A match still in
// progress is recorded as abandoned.
func (s *Session) Start(players int) {
	if s.game != nil && !s.recorded {
		s.record("abandoned")
	}
	s.seed = s.cfg.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.players = players
	s.log = game.NewSimLog(false)
	s.stats = game.NewMatchStats()
	s.paused = false
	s.recorded = false

	opts := []game.Option{
		game.WithSeed(s.seed),
		game.WithRules(s.cfg.Rules),
		game.WithPlayers(players),
		game.WithCueSink(s.log),
		game.WithCueSink(s.stats),
	}
	for _, sink := range s.cfg.Sinks {
		opts = append(opts, game.WithCueSink(sink))
	}
	s.game = game.New(s.cfg.Source, opts...)
	s.logger.Info("Match started", "seed", s.seed, "players", s.game.PlayerCount(), "level", s.game.LevelNumber())
	s.finishIfOver()
}

// Restart begins a fresh campaign with the same player count.
func (s *Session) Restart() {
	if s.game == nil {
		return
	}
	s.Start(s.players)
}

// Active reports whether a match has been started.
func (s *Session) Active() bool { return s.game != nil }

// Hold sets a player's movement intent; DirNone releases it.
func (s *Session) Hold(slot int, dir game.Direction) {
	if s.game == nil {
		return
	}
	if dir == game.DirNone {
		s.game.ReleaseDirection(slot)
		return
	}
	s.game.HoldDirection(slot, dir)
}

// Fire shoots along the player's facing.
func (s *Session) Fire(slot int) {
	if s.game == nil || s.paused {
		return
	}
	s.game.PlayerShoot(slot, game.DirNone)
}

// Advance moves on after a cleared level.
func (s *Session) Advance() {
	if s.game == nil || s.game.State() != game.StateLevelComplete {
		return
	}
	s.game.AdvanceLevel()
	s.logger.Info("Level started", "level", s.game.LevelNumber(), "name", s.game.LevelName())
	s.finishIfOver()
}

// TogglePause flips pause and returns the new state.
func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether Step is suspended.
func (s *Session) Paused() bool { return s.paused }

// Step advances the match by dt seconds unless paused.
func (s *Session) Step(dt float64) {
	if s.game == nil || s.paused {
		return
	}
	s.game.Tick(dt)
	s.finishIfOver()
}

func (s *Session) finishIfOver() {
	if s.recorded || !s.game.State().Terminal() {
		return
	}
	out := game.DetermineMatchOutcome(s.game, s.stats)
	s.logger.Info("Match over",
		"outcome", out.Outcome.String(),
		"reason", out.Description,
		"level", out.Level,
		"kills", out.EnemiesDestroyed,
	)
	s.record("")
}

// record saves the current match once. note replaces the outcome
// description when set.
func (s *Session) record(note string) {
	s.recorded = true
	if s.cfg.Store == nil {
		return
	}
	rec, err := record.NewMatchRecord(s.game, s.seed, s.stats)
	if err != nil {
		s.logger.Error("Building match record", "error", err)
		return
	}
	if note != "" {
		rec.Description = note
	}
	if err := s.cfg.Store.Save(rec); err != nil {
		s.logger.Error("Saving match record", "error", err)
	}
}

// Report is the debug report for the recent past of the match.
func (s *Session) Report() string {
	if s.game == nil {
		return ""
	}
	return game.DebugReport(s.game, s.log, s.seed, s.cfg.LogSize)
}

func (s *Session) Game() *game.Game        { return s.game }
func (s *Session) Log() *game.SimLog       { return s.log }
func (s *Session) Stats() *game.MatchStats { return s.stats }
func (s *Session) Seed() int64             { return s.seed }
