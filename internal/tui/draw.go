package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Battle-Arena/internal/session"
)

var helpLines = []string{
	"P1 WASD move  SPACE fire",
	"P2 arrows     ENTER fire",
	"N next  R restart  P pause",
	"M mute  C copy  ESC menu",
}

func (a *App) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

// Draw renders the current frame and shows it.
func (a *App) Draw() {
	a.screen.Clear()
	if a.inMenu {
		a.drawMenu()
		a.screen.Show()
		return
	}

	if lvl := a.sess.Game().Level(); lvl != nil {
		a.drawBorder()
		for row, line := range renderArena(lvl, a.frame) {
			for col, g := range line {
				a.screen.SetContent(col+1, row+1, g.r, nil, g.style)
			}
		}
	}

	for i, l := range a.sess.StatusLines() {
		a.text(hudCol, 1+i, l, styleDefault)
	}
	for i, l := range helpLines {
		a.text(hudCol, arenaRows+1-len(helpLines)+i, l, styleDim)
	}
	if b := a.sess.Banner(); b != "" {
		a.text(1, bannerRow, b, styleBright)
	}
	if a.flashN > 0 {
		a.text(hudCol, bannerRow, a.flash, styleBright)
	}
	a.screen.Show()
}

func (a *App) drawBorder() {
	w, h := arenaCols+1, arenaRows+1
	for x := 1; x < w; x++ {
		a.screen.SetContent(x, 0, '─', nil, styleBorder)
		a.screen.SetContent(x, h, '─', nil, styleBorder)
	}
	for y := 1; y < h; y++ {
		a.screen.SetContent(0, y, '│', nil, styleBorder)
		a.screen.SetContent(w, y, '│', nil, styleBorder)
	}
	a.screen.SetContent(0, 0, '┌', nil, styleBorder)
	a.screen.SetContent(w, 0, '┐', nil, styleBorder)
	a.screen.SetContent(0, h, '└', nil, styleBorder)
	a.screen.SetContent(w, h, '┘', nil, styleBorder)
}

func (a *App) drawMenu() {
	w, _ := a.screen.Size()
	w = max(w, minColumns)
	a.text((w-len(session.Title))/2, 3, session.Title, styleBright)
	for i, l := range a.menu.Lines() {
		st := styleDefault
		if i == a.menu.Selected() {
			st = styleBright
		}
		a.text((w-len(l))/2, 6+i*2, l, st)
	}
}
