package game

// PowerUpKind identifies a pickup.
type PowerUpKind int

const (
	PowerUpGrenade PowerUpKind = iota // destroys every living enemy
	PowerUpHelmet                     // temporary invulnerability
	PowerUpStar                       // insta-kill shots
	PowerUpShovel                     // collected without effect

	powerUpKindCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpGrenade:
		return "grenade"
	case PowerUpHelmet:
		return "helmet"
	case PowerUpStar:
		return "star"
	case PowerUpShovel:
		return "shovel"
	default:
		return "unknown"
	}
}

// PowerUp is a pickup lying in the arena.
type PowerUp struct {
	kind PowerUpKind
	pos  Position
}

// NewPowerUp creates a cell-sized pickup anchored at pos.
func NewPowerUp(kind PowerUpKind, pos Position) *PowerUp {
	return &PowerUp{kind: kind, pos: pos}
}

func (p *PowerUp) Kind() PowerUpKind  { return p.kind }
func (p *PowerUp) Position() Position { return p.pos }

// Bounds is the pickup's collision box.
func (p *PowerUp) Bounds() Rect {
	return Rect{X: p.pos.X, Y: p.pos.Y, W: CellSize, H: CellSize}
}
