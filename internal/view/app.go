// Package view is the windowed front-end: it draws the arena with ebiten
// and turns keyboard input into session commands.
package view

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/session"
)

const (
	hudWidth     = 220
	screenWidth  = game.ArenaWidth + hudWidth
	screenHeight = game.ArenaHeight
	flashFrames  = 120
)

// Muter toggles sound. *audio.Player satisfies it.
type Muter interface {
	ToggleMute() bool
}

// Options configures an App.
type Options struct {
	TickRate  int     // simulation ticks per second
	Scale     float64 // window scale factor
	Players   int     // menu entry highlighted at start
	Muter     Muter   // optional
	Clipboard func(string) error
	Logger    *slog.Logger
}

// App implements ebiten.Game.
type App struct {
	sess    *session.Session
	ctl     *Controller
	opts    Options
	logger  *slog.Logger
	dt      float64
	frame   int
	showHUD bool
	flash   string
	flashN  int
	face    text.Face
	keys    Keyboard
}

// New wraps a session in a window front-end.
func New(sess *session.Session, opts Options) *App {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctl := NewController(sess)
	ctl.Menu().Highlight(opts.Players)
	return &App{
		sess:    sess,
		ctl:     ctl,
		opts:    opts,
		logger:  opts.Logger,
		dt:      1 / float64(opts.TickRate),
		showHUD: true,
		face:    text.NewGoXFace(basicfont.Face7x13),
		keys:    ebitenKeys{},
	}
}

// WindowSize is the outer window size for the configured scale.
func (a *App) WindowSize() (int, int) {
	return int(float64(screenWidth) * a.opts.Scale), int(float64(screenHeight) * a.opts.Scale)
}

// Update handles input then advances the match one tick.
func (a *App) Update() error {
	a.frame++
	if a.flashN > 0 {
		a.flashN--
	}
	for _, act := range a.ctl.Handle(a.keys) {
		if err := a.apply(act); err != nil {
			return err
		}
	}
	if !a.ctl.InMenu() {
		a.sess.Step(a.dt)
	}
	return nil
}

// apply performs the app-level side of an action. ebiten.Termination ends
// the run loop cleanly.
func (a *App) apply(act Action) error {
	switch act {
	case ActionQuit:
		a.logger.Info("Quit requested")
		return ebiten.Termination
	case ActionCopyReport:
		if err := a.opts.Clipboard(a.sess.Report()); err != nil {
			a.logger.Warn("Copying report to clipboard", "error", err)
			a.setFlash("clipboard unavailable")
			return nil
		}
		a.setFlash("report copied")
	case ActionMute:
		if a.opts.Muter == nil {
			a.setFlash("audio disabled")
			return nil
		}
		if a.opts.Muter.ToggleMute() {
			a.setFlash("sound off")
		} else {
			a.setFlash("sound on")
		}
	case ActionToggleHUD:
		a.showHUD = !a.showHUD
	case ActionRestart:
		a.setFlash(fmt.Sprintf("restarted, seed %d", a.sess.Seed()))
	}
	return nil
}

func (a *App) setFlash(msg string) {
	a.flash = msg
	a.flashN = flashFrames
}

// Draw renders the menu or the match.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	if a.ctl.InMenu() {
		a.drawMenu(screen)
		return
	}
	g := a.sess.Game()
	if lvl := g.Level(); lvl != nil {
		drawArena(screen, lvl, a.frame, a.face)
	}
	if a.showHUD {
		a.drawHUD(screen)
	}
	if b := a.sess.Banner(); b != "" {
		a.drawBanner(screen, b)
	}
}

// Layout keeps a fixed logical screen; ebiten scales it to the window.
func (a *App) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}
