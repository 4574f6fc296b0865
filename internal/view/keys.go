package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Battle-Arena/internal/game"
	"github.com/Garsondee/Battle-Arena/internal/session"
)

// Keyboard is the key state the controller reads each frame.
type Keyboard interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Action is a front-end command that is not a tank control.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionNext
	ActionRestart
	ActionCopyReport
	ActionMute
	ActionToggleHUD
	ActionMenu
)

// binding is one player's control set.
type binding struct {
	slot int
	dirs [4]ebiten.Key // in game.Cardinals order
	fire ebiten.Key
}

var bindings = [2]binding{
	{slot: 1, dirs: [4]ebiten.Key{ebiten.KeyW, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD}, fire: ebiten.KeySpace},
	{slot: 2, dirs: [4]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight}, fire: ebiten.KeyEnter},
}

var globalKeys = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyEscape, ActionMenu},
	{ebiten.KeyP, ActionPause},
	{ebiten.KeyN, ActionNext},
	{ebiten.KeyR, ActionRestart},
	{ebiten.KeyC, ActionCopyReport},
	{ebiten.KeyM, ActionMute},
	{ebiten.KeyH, ActionToggleHUD},
}

// heldDirection picks a slot's movement: a key pressed this frame wins,
// then the previous direction while its key stays down, then any key
// still held in Cardinals order.
func heldDirection(kb Keyboard, b binding, prev game.Direction) game.Direction {
	for i, k := range b.dirs {
		if kb.JustPressed(k) {
			return game.Cardinals[i]
		}
	}
	for i, k := range b.dirs {
		if game.Cardinals[i] == prev && kb.Pressed(k) {
			return prev
		}
	}
	for i, k := range b.dirs {
		if kb.Pressed(k) {
			return game.Cardinals[i]
		}
	}
	return game.DirNone
}

// Controller maps keys to session commands. It starts on the title menu.
type Controller struct {
	sess   *session.Session
	menu   session.Menu
	inMenu bool
}

// NewController returns a controller showing the menu.
func NewController(sess *session.Session) *Controller {
	return &Controller{sess: sess, inMenu: true}
}

// InMenu reports whether the title menu is showing.
func (c *Controller) InMenu() bool { return c.inMenu }

// Menu exposes the menu for drawing.
func (c *Controller) Menu() *session.Menu { return &c.menu }

// Handle applies one frame of input. Tank controls go straight to the
// session; everything else is returned for the app to act on.
func (c *Controller) Handle(kb Keyboard) []Action {
	if c.inMenu {
		return c.handleMenu(kb)
	}

	var acts []Action
	for _, gk := range globalKeys {
		if !kb.JustPressed(gk.key) {
			continue
		}
		switch gk.action {
		case ActionMenu:
			c.inMenu = true
			return []Action{ActionMenu}
		case ActionPause:
			c.sess.TogglePause()
		case ActionNext:
			c.sess.Advance()
		case ActionRestart:
			c.sess.Restart()
		}
		acts = append(acts, gk.action)
	}

	g := c.sess.Game()
	for _, b := range bindings[:g.PlayerCount()] {
		c.sess.Hold(b.slot, heldDirection(kb, b, g.Held(b.slot)))
		if kb.JustPressed(b.fire) {
			if b.slot == 2 && g.State() == game.StateLevelComplete {
				c.sess.Advance()
				continue
			}
			c.sess.Fire(b.slot)
		}
	}
	return acts
}

func (c *Controller) handleMenu(kb Keyboard) []Action {
	switch {
	case kb.JustPressed(ebiten.KeyArrowUp) || kb.JustPressed(ebiten.KeyW):
		c.menu.Up()
	case kb.JustPressed(ebiten.KeyArrowDown) || kb.JustPressed(ebiten.KeyS):
		c.menu.Down()
	case kb.JustPressed(ebiten.KeyEnter) || kb.JustPressed(ebiten.KeySpace):
		choice := c.menu.Select()
		if choice == session.ChoiceExit {
			return []Action{ActionQuit}
		}
		c.sess.Start(choice.Players())
		c.inMenu = false
	case kb.JustPressed(ebiten.KeyEscape):
		return []Action{ActionQuit}
	}
	return nil
}
