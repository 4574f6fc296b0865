// Package record persists finished matches to a SQL database through gorm.
// SQLite is the default backend; Postgres is used when configured.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

var (
	// ErrUnknownDriver is returned by Open for drivers other than sqlite and postgres.
	ErrUnknownDriver = errors.New("unknown record driver")
	// ErrNotOpen is returned by every Store method after Close.
	ErrNotOpen = errors.New("record store is not open")
)

// MatchRecord is one finished (or abandoned) match.
type MatchRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt         time.Time `gorm:"index"`
	Seed              int64
	Players           int
	Outcome           string `gorm:"index"`
	Description       string
	Level             int
	LevelName         string
	LevelsCleared     int
	EnemiesDestroyed  int
	PlayersLost       int
	PlayerShots       int
	EnemyShots        int
	PowerUpsCollected int
	Ticks             int
	Kills             datatypes.JSON `json:"kills"`
}

// NewMatchRecord captures a game and its stats. stats may be nil.
func NewMatchRecord(g *game.Game, seed int64, stats *game.MatchStats) (*MatchRecord, error) {
	out := game.DetermineMatchOutcome(g, stats)
	rec := &MatchRecord{
		ID:            uuid.New(),
		Seed:          seed,
		Players:       g.PlayerCount(),
		Outcome:       out.Outcome.String(),
		Description:   out.Description,
		Level:         out.Level,
		LevelName:     g.LevelName(),
		LevelsCleared: out.LevelsCleared,
		Ticks:         g.TickCount(),
		Kills:         datatypes.JSON("{}"),
	}
	if stats != nil {
		rec.EnemiesDestroyed = stats.EnemiesDestroyed()
		rec.PlayersLost = stats.PlayersLost
		rec.PlayerShots = stats.PlayerShots
		rec.EnemyShots = stats.EnemyShots
		rec.PowerUpsCollected = stats.Collected()
		kills, err := json.Marshal(stats.Kills)
		if err != nil {
			return nil, fmt.Errorf("encoding kills: %w", err)
		}
		rec.Kills = kills
	}
	return rec, nil
}

// KillCounts decodes the per-kind kill tally.
func (r *MatchRecord) KillCounts() (map[string]int, error) {
	out := map[string]int{}
	if len(r.Kills) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.Kills, &out); err != nil {
		return nil, fmt.Errorf("decoding kills: %w", err)
	}
	return out, nil
}

// OutcomeCount is one row of Store.Summary.
type OutcomeCount struct {
	Outcome string
	Matches int64
}

// Store saves and queries match records.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the given driver and migrates the schema. For sqlite an
// empty dsn means a private in-memory database.
func Open(driver, dsn string, log zerolog.Logger) (*Store, error) {
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite", "":
		if dsn == "" {
			dsn = "file::memory:"
		}
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		log.Info().Str("path", dsn).Msg("Using SQLite match records")
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
		log.Info().Msg("Using Postgres match records")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}
	return OpenDB(db, log)
}

// OpenDB wraps an existing connection and migrates the schema.
func OpenDB(db *gorm.DB, log zerolog.Logger) (*Store, error) {
	if err := db.AutoMigrate(&MatchRecord{}); err != nil {
		return nil, fmt.Errorf("migrating match records: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Save inserts rec, assigning an ID if it has none.
func (s *Store) Save(rec *MatchRecord) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("saving match %s: %w", rec.ID, err)
	}
	s.log.Debug().
		Str("id", rec.ID.String()).
		Str("outcome", rec.Outcome).
		Int64("seed", rec.Seed).
		Msg("Match recorded")
	return nil
}

// Get loads one match by ID.
func (s *Store) Get(id uuid.UUID) (*MatchRecord, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	var rec MatchRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("loading match %s: %w", id, err)
	}
	return &rec, nil
}

// Recent returns up to limit matches, newest first.
func (s *Store) Recent(limit int) ([]MatchRecord, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	var recs []MatchRecord
	if err := s.db.Order("created_at desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return recs, nil
}

// Summary counts matches per outcome, ordered by outcome name.
func (s *Store) Summary() ([]OutcomeCount, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	var rows []OutcomeCount
	err := s.db.Model(&MatchRecord{}).
		Select("outcome, count(*) as matches").
		Group("outcome").
		Order("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summarising matches: %w", err)
	}
	return rows, nil
}

// Close releases the connection. The store is unusable afterwards.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrNotOpen
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
