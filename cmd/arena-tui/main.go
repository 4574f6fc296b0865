package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Battle-Arena/internal/bootstrap"
	"github.com/Garsondee/Battle-Arena/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", ".", "directory holding battle_arena.cfg.json")
	noAudio := flag.Bool("mute", false, "start without sound")
	flag.Parse()

	env, err := bootstrap.Setup(bootstrap.Options{
		Program:   "battle-arena-tui",
		ConfigDir: *configDir,
		NoAudio:   *noAudio,
	})
	if err != nil {
		return err
	}
	defer env.Close(context.Background())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tui.Options{
		TickRate: env.TickRate,
		Players:  env.Players,
		Logger:   env.Logger,
	}
	if env.Audio != nil {
		opts.Muter = env.Audio
	}
	err = tui.New(screen, env.Session, opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
