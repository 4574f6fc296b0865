package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Battle-Arena/internal/bootstrap"
	"github.com/Garsondee/Battle-Arena/internal/view"
)

func main() {
	configDir := flag.String("config", ".", "directory holding battle_arena.cfg.json")
	flag.Parse()

	env, err := bootstrap.Setup(bootstrap.Options{
		Program:         "battle-arena",
		ConfigDir:       *configDir,
		ConsoleFallback: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			log.Print(err)
		}
	}()

	opts := view.Options{
		TickRate: env.TickRate,
		Scale:    env.Scale,
		Players:  env.Players,
		Logger:   env.Logger,
	}
	if env.Audio != nil {
		opts.Muter = env.Audio
	}
	app := view.New(env.Session, opts)

	ebiten.SetWindowTitle("Battle Arena")
	ebiten.SetWindowSize(app.WindowSize())
	ebiten.SetTPS(env.TickRate)
	if err := ebiten.RunGame(app); err != nil {
		env.Logger.Error("Game loop failed", "error", err)
	}
}
