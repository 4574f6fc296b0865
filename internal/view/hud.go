package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Battle-Arena/internal/session"
)

const (
	lineH = 16
	padX  = 10
	padY  = 10

	arenaWidth = float32(screenWidth - hudWidth)
)

var helpLines = []string{
	"P1  WASD move  SPACE fire",
	"P2  arrows  ENTER fire",
	"N next level  R restart",
	"P pause  M mute  H hud",
	"C copy report  ESC menu",
}

func (a *App) drawHUD(screen *ebiten.Image) {
	x := float32(screenWidth - hudWidth)
	vector.FillRect(screen, x, 0, hudWidth, screenHeight, colPanel, false)
	vector.StrokeLine(screen, x, 0, x, screenHeight, 1.0, colPanelEdge, false)

	ty := float64(padY)
	for _, l := range a.sess.StatusLines() {
		drawText(screen, a.face, l, float64(x)+padX, ty, 1, colText)
		ty += lineH
	}

	ty = screenHeight - float64(len(helpLines)+2)*lineH
	if a.flashN > 0 {
		drawText(screen, a.face, a.flash, float64(x)+padX, ty, 1, colHighlight)
	}
	ty += lineH
	for _, l := range helpLines {
		drawText(screen, a.face, l, float64(x)+padX, ty, 1, colPanelEdge)
		ty += lineH
	}
}

func (a *App) drawBanner(screen *ebiten.Image, msg string) {
	const k = 2
	w := float32(len(msg)*7*k + padX*2)
	h := float32(13*k + padY*2)
	bx := (arenaWidth - w) / 2
	by := (screenHeight - h) / 2
	vector.FillRect(screen, bx, by, w, h, colPanel, false)
	vector.StrokeRect(screen, bx, by, w, h, 1.0, colPanelEdge, false)
	drawText(screen, a.face, msg, float64(bx)+padX, float64(by)+padY, k, colHighlight)
}

func (a *App) drawMenu(screen *ebiten.Image) {
	const titleK = 5
	tw := float64(len(session.Title) * 7 * titleK)
	drawText(screen, a.face, session.Title, (screenWidth-tw)/2, 140, titleK, colHighlight)

	m := a.ctl.Menu()
	for i, l := range m.Lines() {
		c := colText
		if i == m.Selected() {
			c = colHighlight
		}
		lw := float64(len(l) * 7 * 3)
		drawText(screen, a.face, l, (screenWidth-lw)/2, 300+float64(i)*50, 3, c)
	}
}
