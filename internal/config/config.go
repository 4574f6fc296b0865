package config

import (
	"fmt"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "battle_arena.cfg.json"

// RecordConfig holds match record storage settings
type RecordConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Driver  string `json:"driver" mapstructure:"driver"` // sqlite or postgres
	DSN     string `json:"dsn" mapstructure:"dsn"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Defaults remain
// in effect when the file is missing; the error is still returned so the
// caller can warn about it.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./arenalogs")

	viper.SetDefault("game.players", 1)
	viper.SetDefault("game.seed", 0) // 0 picks a seed from the clock
	viper.SetDefault("game.tickRate", 60)

	def := game.DefaultRules()
	viper.SetDefault("rules.powerUpChance", def.PowerUpChance)
	viper.SetDefault("rules.placementAttempts", def.PlacementAttempts)
	viper.SetDefault("rules.leaveWrecks", def.LeaveWrecks)

	viper.SetDefault("levels.dir", "") // empty uses the built-in campaign

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.5)

	viper.SetDefault("record.enabled", false)
	viper.SetDefault("record.driver", "sqlite")
	viper.SetDefault("record.dsn", "./arena_matches.db")

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("otel.logFile", "")

	viper.SetDefault("window.scale", 1.0)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Rules converts the rules.* keys to game rules.
func Rules() game.Rules {
	return game.Rules{
		PowerUpChance:     viper.GetFloat64("rules.powerUpChance"),
		PlacementAttempts: viper.GetInt("rules.placementAttempts"),
		LeaveWrecks:       viper.GetBool("rules.leaveWrecks"),
	}
}

// Record returns the record.* section.
func Record() (RecordConfig, error) {
	var rc RecordConfig
	if err := viper.UnmarshalKey("record", &rc); err != nil {
		return rc, fmt.Errorf("error decoding record config: %w", err)
	}
	return rc, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
