package game

// Arena geometry in pixels. The playfield is a 13x13 grid of square cells.
const (
	ArenaWidth  = 600
	ArenaHeight = 600
	GridCells   = 13
	CellSize    = ArenaWidth / GridCells // 46

	// TankSize is the side of a tank's collision box, 90% of a cell.
	TankSize  = CellSize * 9 / 10
	TankInset = (CellSize - TankSize) / 2

	BulletSize  = 10
	BulletSpeed = 400.0

	// muzzleOffset pushes a fresh bullet past the tank's leading edge.
	muzzleOffset = 6
)

// Position is an immutable point in arena pixels. Tanks and blocks are
// anchored at their top-left corner.
type Position struct {
	X, Y float64
}

// Move returns p displaced by dist along dir.
func (p Position) Move(dir Direction, dist float64) Position {
	dx, dy := dir.Delta()
	return Position{X: p.X + dx*dist, Y: p.Y + dy*dist}
}

// clampToArena keeps a cell-sized footprint anchored at p inside the arena.
func clampToArena(p Position) Position {
	return Position{
		X: clamp(p.X, 0, ArenaWidth-CellSize),
		Y: clamp(p.Y, 0, ArenaHeight-CellSize),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Direction is one of the four cardinal directions. DirNone is the zero
// value and stands for "not supplied".
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Cardinals lists the four real directions in sampling order.
var Cardinals = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit vector for d. Screen Y grows downwards.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether r and o overlap with positive area. Boxes that
// only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the point lies inside r (edges inclusive).
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ArenaRect is the full playfield.
var ArenaRect = Rect{W: ArenaWidth, H: ArenaHeight}

// tankBox is the collision box for a tank anchored at p.
func tankBox(p Position) Rect {
	return Rect{X: p.X + TankInset, Y: p.Y + TankInset, W: TankSize, H: TankSize}
}
