// Package tui is the terminal front-end. It renders the arena as a grid of
// characters with tcell and drives the same session as the window view.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/session"
)

// latchTicks is how long a key press keeps a tank moving. Terminals send
// no key-up events, so movement lasts until the auto-repeat stops.
const latchTicks = 30

// Muter toggles sound. *audio.Player satisfies it.
type Muter interface {
	ToggleMute() bool
}

// Options configures an App.
type Options struct {
	TickRate  int
	Players   int // menu entry highlighted at start
	Muter     Muter
	Clipboard func(string) error
	Logger    *slog.Logger
}

// App drives a session from terminal events.
type App struct {
	screen tcell.Screen
	sess   *session.Session
	opts   Options
	logger *slog.Logger

	menu   session.Menu
	inMenu bool
	frame  int
	latch  [2]int
	flash  string
	flashN int
}

// New attaches a session to an initialised screen.
func New(screen tcell.Screen, sess *session.Session, opts Options) *App {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	a := &App{screen: screen, sess: sess, opts: opts, logger: opts.Logger, inMenu: true}
	a.menu.Highlight(opts.Players)
	return a
}

// Run polls input on its own goroutine and ticks the match on a ticker
// until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.opts.TickRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Tick()
			a.Draw()
		}
	}
}

// HandleEvent processes one terminal event and reports whether to keep
// running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(k tcell.Key, r rune) bool {
	if a.inMenu {
		return a.handleMenuKey(k, r)
	}
	if k == tcell.KeyEscape {
		a.inMenu = true
		return true
	}

	g := a.sess.Game()
	if k == tcell.KeyRune {
		switch r {
		case 'w', 'W':
			a.hold(1, game.DirUp)
		case 's', 'S':
			a.hold(1, game.DirDown)
		case 'a', 'A':
			a.hold(1, game.DirLeft)
		case 'd', 'D':
			a.hold(1, game.DirRight)
		case ' ':
			a.sess.Fire(1)
		case 'p', 'P':
			a.sess.TogglePause()
		case 'n', 'N':
			a.sess.Advance()
		case 'r', 'R':
			a.sess.Restart()
			a.latch = [2]int{}
			a.setFlash(fmt.Sprintf("restarted, seed %d", a.sess.Seed()))
		case 'c', 'C':
			a.copyReport()
		case 'm', 'M':
			a.toggleMute()
		}
		return true
	}

	if g.PlayerCount() < 2 {
		return true
	}
	switch k {
	case tcell.KeyUp:
		a.hold(2, game.DirUp)
	case tcell.KeyDown:
		a.hold(2, game.DirDown)
	case tcell.KeyLeft:
		a.hold(2, game.DirLeft)
	case tcell.KeyRight:
		a.hold(2, game.DirRight)
	case tcell.KeyEnter:
		if g.State() == game.StateLevelComplete {
			a.sess.Advance()
		} else {
			a.sess.Fire(2)
		}
	}
	return true
}

func (a *App) handleMenuKey(k tcell.Key, r rune) bool {
	switch {
	case k == tcell.KeyUp || (k == tcell.KeyRune && (r == 'w' || r == 'W')):
		a.menu.Up()
	case k == tcell.KeyDown || (k == tcell.KeyRune && (r == 's' || r == 'S')):
		a.menu.Down()
	case k == tcell.KeyEnter || (k == tcell.KeyRune && r == ' '):
		choice := a.menu.Select()
		if choice == session.ChoiceExit {
			return false
		}
		a.sess.Start(choice.Players())
		a.latch = [2]int{}
		a.inMenu = false
	case k == tcell.KeyEscape:
		return false
	}
	return true
}

func (a *App) hold(slot int, dir game.Direction) {
	a.sess.Hold(slot, dir)
	a.latch[slot-1] = latchTicks
}

func (a *App) copyReport() {
	if err := a.opts.Clipboard(a.sess.Report()); err != nil {
		a.logger.Warn("Copying report to clipboard", "error", err)
		a.setFlash("clipboard unavailable")
		return
	}
	a.setFlash("report copied")
}

func (a *App) toggleMute() {
	if a.opts.Muter == nil {
		a.setFlash("audio disabled")
		return
	}
	if a.opts.Muter.ToggleMute() {
		a.setFlash("sound off")
	} else {
		a.setFlash("sound on")
	}
}

func (a *App) setFlash(msg string) {
	a.flash = msg
	a.flashN = 2 * a.opts.TickRate
}

// Tick expires movement latches and advances the match one step.
func (a *App) Tick() {
	a.frame++
	if a.flashN > 0 {
		a.flashN--
	}
	if a.inMenu {
		return
	}
	for i := range a.latch {
		if a.latch[i] == 0 {
			continue
		}
		a.latch[i]--
		if a.latch[i] == 0 {
			a.sess.Hold(i+1, game.DirNone)
		}
	}
	a.sess.Step(1 / float64(a.opts.TickRate))
}
