package view

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

var (
	colBackground = color.RGBA{R: 8, G: 8, B: 10, A: 255}
	colArena      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colBrick      = color.RGBA{R: 156, G: 74, B: 0, A: 255}
	colMortar     = color.RGBA{R: 90, G: 40, B: 0, A: 255}
	colSteel      = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	colSteelLight = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	colWater      = color.RGBA{R: 40, G: 80, B: 200, A: 255}
	colWaterLight = color.RGBA{R: 110, G: 150, B: 240, A: 255}
	colForest     = color.RGBA{R: 40, G: 120, B: 30, A: 235}
	colBase       = color.RGBA{R: 230, G: 200, B: 60, A: 255}
	colWreck      = color.RGBA{R: 60, G: 55, B: 50, A: 255}
	colBullet     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	colText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colHighlight  = color.RGBA{R: 173, G: 255, B: 47, A: 255}
	colPanel      = color.RGBA{R: 6, G: 10, B: 6, A: 220}
	colPanelEdge  = color.RGBA{R: 60, G: 100, B: 60, A: 180}
	colShield     = color.RGBA{R: 255, G: 255, B: 255, A: 160}
)

// tankColor picks a body colour by kind and player slot.
func tankColor(t *game.Tank) color.RGBA {
	switch t.Kind() {
	case game.TankPlayer:
		if t.Slot() == 2 {
			return color.RGBA{R: 60, G: 170, B: 60, A: 255}
		}
		return color.RGBA{R: 220, G: 190, B: 40, A: 255}
	case game.TankArmored:
		return color.RGBA{R: 170, G: 170, B: 200, A: 255}
	case game.TankFast:
		return color.RGBA{R: 200, G: 120, B: 200, A: 255}
	case game.TankPowerful:
		return color.RGBA{R: 220, G: 70, B: 60, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

var powerUpLetters = map[game.PowerUpKind]string{
	game.PowerUpGrenade: "G",
	game.PowerUpHelmet:  "H",
	game.PowerUpStar:    "S",
	game.PowerUpShovel:  "V",
}

// animFrame is the two-frame sprite index: it alternates every 6 frames
// while the tank moves and rests on 0 otherwise.
func animFrame(t *game.Tank, frame int) int {
	if !t.IsMoving() {
		return 0
	}
	return (frame / 6) % 2
}

// drawArena renders one level. Forest is drawn last so it hides tanks.
func drawArena(screen *ebiten.Image, lvl *game.Level, frame int, face text.Face) {
	vector.FillRect(screen, 0, 0, game.ArenaWidth, game.ArenaHeight, colArena, false)

	for _, b := range lvl.Blocks() {
		if b.Kind() != game.BlockForest {
			drawBlock(screen, b, frame)
		}
	}
	for _, p := range lvl.PowerUps() {
		drawPowerUp(screen, p, frame, face)
	}
	for _, t := range lvl.Tanks() {
		if t.IsAlive() {
			drawTank(screen, t, frame)
		}
	}
	for _, b := range lvl.Bullets() {
		if b.Active() {
			r := b.Bounds()
			vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colBullet, false)
		}
	}
	for _, b := range lvl.Blocks() {
		if b.Kind() == game.BlockForest {
			drawBlock(screen, b, frame)
		}
	}
}

func drawBlock(screen *ebiten.Image, b *game.Block, frame int) {
	r := b.Bounds()
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)

	switch b.Kind() {
	case game.BlockBrick:
		vector.FillRect(screen, x, y, w, h, colBrick, false)
		// mortar courses, offset every other row
		rows := 4
		rh := h / float32(rows)
		for i := 1; i < rows; i++ {
			vector.StrokeLine(screen, x, y+rh*float32(i), x+w, y+rh*float32(i), 1.0, colMortar, false)
		}
		for i := 0; i < rows; i++ {
			off := w / 2
			if i%2 == 1 {
				off = w / 4
			}
			vector.StrokeLine(screen, x+off, y+rh*float32(i), x+off, y+rh*float32(i+1), 1.0, colMortar, false)
		}
		// wear shows as darker fill once hit
		if b.Life() > 0 && b.Life() < 3 {
			vector.FillRect(screen, x, y, w, h, color.RGBA{A: uint8(40 * (3 - b.Life()))}, false)
		}
	case game.BlockSteel:
		vector.FillRect(screen, x, y, w, h, colSteel, false)
		vector.FillRect(screen, x+w/4, y+h/4, w/2, h/2, colSteelLight, false)
		vector.StrokeRect(screen, x, y, w, h, 1.0, colSteelLight, false)
	case game.BlockWater:
		vector.FillRect(screen, x, y, w, h, colWater, false)
		shift := float32((frame / 20) % 2 * 6)
		for i := float32(8); i < h; i += 12 {
			vector.StrokeLine(screen, x+4+shift, y+i, x+w/2+shift, y+i, 1.0, colWaterLight, false)
		}
	case game.BlockForest:
		vector.FillRect(screen, x, y, w, h, colForest, false)
		for i := float32(6); i < w; i += 12 {
			vector.FillCircle(screen, x+i, y+i, 5, color.RGBA{R: 20, G: 80, B: 20, A: 255}, false)
		}
	case game.BlockBase:
		vector.FillRect(screen, x+4, y+4, w-8, h-8, colBase, false)
		vector.StrokeLine(screen, x+w/2, y+6, x+w/2, y+h-6, 3.0, colArena, false)
		vector.StrokeLine(screen, x+8, y+h/3, x+w-8, y+h/3, 3.0, colArena, false)
	case game.BlockWreck:
		vector.FillRect(screen, x, y, w, h, colWreck, false)
		vector.StrokeLine(screen, x, y, x+w, y+h, 2.0, colArena, false)
		vector.StrokeLine(screen, x+w, y, x, y+h, 2.0, colArena, false)
	}
}

func drawTank(screen *ebiten.Image, t *game.Tank, frame int) {
	// frozen tanks blink
	if t.IsFrozen() && (frame/8)%2 == 1 {
		return
	}
	r := t.Bounds()
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	body := tankColor(t)
	dark := color.RGBA{R: body.R / 2, G: body.G / 2, B: body.B / 2, A: 255}

	vector.FillRect(screen, x+4, y+4, w-8, h-8, body, false)

	// treads run along the axis of travel; the two animation frames
	// shift the tread marks by half a link
	phase := float32(animFrame(t, frame)) * 4
	horizontal := t.Facing() == game.DirLeft || t.Facing() == game.DirRight
	if horizontal {
		vector.FillRect(screen, x, y, w, 6, dark, false)
		vector.FillRect(screen, x, y+h-6, w, 6, dark, false)
		for i := phase; i < w; i += 8 {
			vector.StrokeLine(screen, x+i, y, x+i, y+6, 1.0, body, false)
			vector.StrokeLine(screen, x+i, y+h-6, x+i, y+h, 1.0, body, false)
		}
	} else {
		vector.FillRect(screen, x, y, 6, h, dark, false)
		vector.FillRect(screen, x+w-6, y, 6, h, dark, false)
		for i := phase; i < h; i += 8 {
			vector.StrokeLine(screen, x, y+i, x+6, y+i, 1.0, body, false)
			vector.StrokeLine(screen, x+w-6, y+i, x+w, y+i, 1.0, body, false)
		}
	}

	cx, cy := x+w/2, y+h/2
	vector.FillCircle(screen, cx, cy, w/5, dark, false)
	dx, dy := t.Facing().Delta()
	if dx == 0 && dy == 0 {
		dy = -1
	}
	vector.StrokeLine(screen, cx, cy, cx+float32(dx)*w/2, cy+float32(dy)*h/2, 4.0, dark, false)

	if t.IsInvulnerable() {
		vector.StrokeCircle(screen, cx, cy, w/2+3, 2.0, colShield, false)
	}
	if t.HasInstaKill() {
		vector.FillCircle(screen, cx, cy, 3, colHighlight, false)
	}
}

func drawPowerUp(screen *ebiten.Image, p *game.PowerUp, frame int, face text.Face) {
	if (frame/15)%2 == 1 {
		return
	}
	r := p.Bounds()
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	vector.FillRect(screen, x+6, y+6, w-12, h-12, color.RGBA{R: 200, G: 30, B: 30, A: 230}, false)
	vector.StrokeRect(screen, x+6, y+6, w-12, h-12, 2.0, colText, false)
	drawText(screen, face, powerUpLetters[p.Kind()], float64(x+w/2-7), float64(y+h/2-13), 2, colText)
}

// drawText prints s with its top-left corner at (x, y), scaled by k.
func drawText(dst *ebiten.Image, face text.Face, s string, x, y, k float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
