package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

// Each arena cell is two terminal columns wide and one row high.
const (
	cellCols   = 2
	arenaCols  = game.GridCells * cellCols
	arenaRows  = game.GridCells
	hudCol     = arenaCols + 3
	bannerRow  = arenaRows + 2
	minColumns = hudCol + 28
)

// glyph is one terminal cell.
type glyph struct {
	r     rune
	style tcell.Style
}

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleBorder  = styleDefault.Foreground(tcell.ColorDarkGreen)
	styleBright  = styleDefault.Foreground(tcell.ColorGreenYellow)
	styleDim     = styleDefault.Foreground(tcell.ColorGray)
)

var blockGlyphs = map[game.BlockKind]glyph{
	game.BlockBrick:  {'▓', styleDefault.Foreground(tcell.ColorMaroon)},
	game.BlockSteel:  {'█', styleDefault.Foreground(tcell.ColorSilver)},
	game.BlockWater:  {'≈', styleDefault.Foreground(tcell.ColorBlue)},
	game.BlockForest: {'♣', styleDefault.Foreground(tcell.ColorGreen)},
	game.BlockBase:   {'Ω', styleDefault.Foreground(tcell.ColorYellow)},
	game.BlockWreck:  {'x', styleDefault.Foreground(tcell.ColorDarkGray)},
}

var facingGlyphs = map[game.Direction]rune{
	game.DirNone:  '▲',
	game.DirUp:    '▲',
	game.DirDown:  '▼',
	game.DirLeft:  '◀',
	game.DirRight: '▶',
}

var powerUpRunes = map[game.PowerUpKind]rune{
	game.PowerUpGrenade: 'G',
	game.PowerUpHelmet:  'H',
	game.PowerUpStar:    'S',
	game.PowerUpShovel:  'V',
}

func tankStyle(t *game.Tank) tcell.Style {
	switch t.Kind() {
	case game.TankPlayer:
		if t.Slot() == 2 {
			return styleDefault.Foreground(tcell.ColorLime)
		}
		return styleDefault.Foreground(tcell.ColorGold)
	case game.TankArmored:
		return styleDefault.Foreground(tcell.ColorLightSteelBlue)
	case game.TankFast:
		return styleDefault.Foreground(tcell.ColorFuchsia)
	case game.TankPowerful:
		return styleDefault.Foreground(tcell.ColorRed)
	default:
		return styleDefault
	}
}

// cellOf maps an arena point to its grid cell, clamped to the arena.
func cellOf(p game.Position) (col, row int) {
	col = min(max(int(p.X)/game.CellSize, 0), game.GridCells-1)
	row = min(max(int(p.Y)/game.CellSize, 0), game.GridCells-1)
	return col, row
}

// centre is the middle of an anchored cell-sized box.
func centre(p game.Position) game.Position {
	return game.Position{X: p.X + game.CellSize/2, Y: p.Y + game.CellSize/2}
}

// renderArena lays out one level as a grid of glyphs, arenaRows by
// arenaCols. Forest goes on top, as it hides tanks in the window view.
func renderArena(lvl *game.Level, frame int) [][]glyph {
	grid := make([][]glyph, arenaRows)
	for r := range grid {
		grid[r] = make([]glyph, arenaCols)
		for c := range grid[r] {
			grid[r][c] = glyph{' ', styleDefault}
		}
	}
	put := func(p game.Position, g glyph) {
		col, row := cellOf(p)
		grid[row][col*cellCols] = g
		grid[row][col*cellCols+1] = g
	}

	var forest []*game.Block
	for _, b := range lvl.Blocks() {
		if b.Kind() == game.BlockForest {
			forest = append(forest, b)
			continue
		}
		put(centre(b.Position()), blockGlyphs[b.Kind()])
	}
	for _, p := range lvl.PowerUps() {
		if (frame/15)%2 == 0 {
			put(centre(p.Position()), glyph{powerUpRunes[p.Kind()], styleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)})
		}
	}
	for _, t := range lvl.Tanks() {
		if !t.IsAlive() || (t.IsFrozen() && (frame/8)%2 == 1) {
			continue
		}
		st := tankStyle(t)
		if t.IsInvulnerable() {
			st = st.Bold(true).Underline(true)
		}
		col, row := cellOf(centre(t.Position()))
		body := facingGlyphs[t.Facing()]
		grid[row][col*cellCols] = glyph{body, st}
		grid[row][col*cellCols+1] = glyph{trackRune(t, frame), st}
	}
	for _, b := range lvl.Bullets() {
		if !b.Active() {
			continue
		}
		r := b.Bounds()
		col, row := cellOf(game.Position{X: r.X + r.W/2, Y: r.Y + r.H/2})
		grid[row][col*cellCols] = glyph{'•', styleDefault}
	}
	for _, b := range forest {
		put(centre(b.Position()), blockGlyphs[game.BlockForest])
	}
	return grid
}

// trackRune is the two-frame tread beside a tank's body.
func trackRune(t *game.Tank, frame int) rune {
	if t.IsMoving() && (frame/6)%2 == 1 {
		return '='
	}
	return '-'
}
