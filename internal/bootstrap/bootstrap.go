// Package bootstrap turns the configuration file into a ready session:
// logging, telemetry, match records, audio and the level campaign.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/Garsondee/Battle-Arena/internal/audio"
	"github.com/Garsondee/Battle-Arena/internal/config"
	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/levels"
	"github.com/Garsondee/Battle-Arena/internal/logging"
	"github.com/Garsondee/Battle-Arena/internal/record"
	"github.com/Garsondee/Battle-Arena/internal/session"
	"github.com/Garsondee/Battle-Arena/internal/telemetry"
)

// Options selects how a front-end is wired.
type Options struct {
	Program   string // log file prefix
	ConfigDir string
	// ConsoleFallback logs to stdout when the log file cannot be opened.
	// The terminal front-end owns the console and leaves it off.
	ConsoleFallback bool
	// NoAudio skips the speaker regardless of configuration.
	NoAudio bool
}

// Env is everything a front-end needs to run matches.
type Env struct {
	Logger   *slog.Logger
	Session  *session.Session
	Audio    *audio.Player // nil when disabled or unavailable
	TickRate int
	Players  int
	Scale    float64

	logs        *logging.SlogManager
	logFile     *os.File
	otelFile    *os.File
	logProvider *sdklog.LoggerProvider
	metrics     *telemetry.Provider
	store       *record.Store
}

// Setup loads configuration from opts.ConfigDir and builds the session.
// A missing configuration file is not an error; defaults apply.
func Setup(opts Options) (*Env, error) {
	if opts.Program == "" {
		opts.Program = "arena"
	}
	cfgErr := config.Load(opts.ConfigDir)

	env := &Env{
		TickRate: config.GetInt("game.tickRate"),
		Players:  config.GetInt("game.players"),
		Scale:    config.GetFloat64("window.scale"),
		logs:     logging.NewSlogManager(),
	}
	if err := env.setupLogging(opts); err != nil {
		return nil, err
	}
	log := env.Logger
	if cfgErr != nil {
		log.Warn("Using default configuration", "error", cfgErr)
	}

	var sinks []game.CueSink
	if config.GetBool("telemetry.enabled") {
		env.metrics = telemetry.NewProvider()
		rec, err := telemetry.New(nil)
		if err != nil {
			_ = env.Close(context.Background())
			return nil, err
		}
		sinks = append(sinks, rec)
		log.Info("Telemetry enabled")
	}

	if config.GetBool("audio.enabled") && !opts.NoAudio {
		p := audio.NewPlayer(config.GetFloat64("audio.volume"), log)
		if err := p.Init(); err != nil {
			log.Warn("Audio unavailable", "error", err)
		} else {
			env.Audio = p
			sinks = append(sinks, p)
		}
	}

	rc, err := config.Record()
	if err != nil {
		_ = env.Close(context.Background())
		return nil, err
	}
	var store session.Recorder
	if rc.Enabled {
		env.store, err = record.Open(rc.Driver, rc.DSN, env.zerologger())
		if err != nil {
			_ = env.Close(context.Background())
			return nil, err
		}
		store = env.store
	}

	var source game.LevelSource
	if dir := config.GetString("levels.dir"); dir != "" {
		source = levels.Dir(dir, log)
		log.Info("Loading levels from directory", "dir", dir)
	} else {
		source = levels.Embedded(log)
	}

	env.Session = session.New(session.Config{
		Source:  source,
		Rules:   config.Rules(),
		Seed:    config.GetInt64("game.seed"),
		Sinks:   sinks,
		Store:   store,
		Logger:  log,
		LogSize: 10 * env.TickRate,
	})
	return env, nil
}

func (e *Env) setupLogging(opts Options) error {
	start := time.Now()
	var file io.Writer
	f, err := logging.OpenLogFile(config.GetString("logsDir"), opts.Program, start)
	switch {
	case err == nil:
		e.logFile = f
		file = f
	case !opts.ConsoleFallback:
		return err
	}

	if path := config.GetString("otel.logFile"); path != "" {
		of, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 -- path from config
		if err != nil {
			e.closeFiles()
			return fmt.Errorf("opening otel log file: %w", err)
		}
		e.otelFile = of
		e.logProvider, err = logging.NewLogProvider(of, time.Second)
		if err != nil {
			e.closeFiles()
			return err
		}
	}

	e.logs.Setup(file, config.GetString("logLevel"), e.logProvider)
	e.Logger = e.logs.Logger()
	if e.logFile == nil {
		e.Logger.Warn("Logging to console", "error", err)
	}
	return nil
}

// zerologger writes store diagnostics next to the session log.
func (e *Env) zerologger() zerolog.Logger {
	if e.logFile == nil {
		return zerolog.Nop()
	}
	return zerolog.New(e.logFile).With().Timestamp().Str("component", "record").Logger()
}

// Close releases everything Setup opened. It is safe to call more than once.
func (e *Env) Close(ctx context.Context) error {
	var errs []error
	if e.Audio != nil {
		e.Audio.Close()
		e.Audio = nil
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			errs = append(errs, err)
		}
		e.store = nil
	}
	if e.metrics != nil {
		if err := e.metrics.Shutdown(ctx, e.Logger); err != nil {
			errs = append(errs, err)
		}
		e.metrics = nil
	}
	if e.logProvider != nil {
		if err := e.logs.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := e.logProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		e.logProvider = nil
	}
	errs = append(errs, e.closeFiles())
	return errors.Join(errs...)
}

func (e *Env) closeFiles() error {
	var errs []error
	for _, f := range []**os.File{&e.logFile, &e.otelFile} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil {
			errs = append(errs, err)
		}
		*f = nil
	}
	return errors.Join(errs...)
}
