package game

import (
	"fmt"
	"math/rand"
)

// --- Kinds ---

// TankKind selects a tank's stat profile.
type TankKind int

const (
	TankPlayer TankKind = iota
	TankBasic
	TankArmored
	TankFast
	TankPowerful
)

func (k TankKind) String() string {
	switch k {
	case TankPlayer:
		return "player"
	case TankBasic:
		return "basic"
	case TankArmored:
		return "armored"
	case TankFast:
		return "fast"
	case TankPowerful:
		return "powerful"
	default:
		return "unknown"
	}
}

// EnemyKinds lists the AI tank kinds.
var EnemyKinds = []TankKind{TankBasic, TankArmored, TankFast, TankPowerful}

// TankProfile is the data that distinguishes one tank kind from another.
type TankProfile struct {
	Speed     float64 // pixels per second
	MaxHealth int
	Recharge  float64 // seconds between enemy shots
	Enemy     bool
	Armored   bool
}

var tankProfiles = map[TankKind]TankProfile{
	TankPlayer:   {Speed: 150, MaxHealth: 3, Recharge: 2},
	TankBasic:    {Speed: 150, MaxHealth: 1, Recharge: 2, Enemy: true},
	TankArmored:  {Speed: 150, MaxHealth: 3, Recharge: 2, Enemy: true, Armored: true},
	TankFast:     {Speed: 200, MaxHealth: 1, Recharge: 2, Enemy: true},
	TankPowerful: {Speed: 150, MaxHealth: 1, Recharge: 1, Enemy: true},
}

// Profile returns the stat profile for the kind.
func (k TankKind) Profile() TankProfile {
	return tankProfiles[k]
}

// Status effect durations in seconds.
const (
	FreezeDuration          = 3.0
	InvulnerabilityDuration = 10.0
)

// --- Tank ---

// Tank is a player or AI tank. Position is the top-left corner of the cell
// the tank occupies; its collision box is inset inside that cell.
type Tank struct {
	kind    TankKind
	profile TankProfile
	slot    int // 1 or 2 for players, 0 for enemies
	label   string

	pos    Position
	prev   Position
	facing Direction
	moving bool
	health int

	frozen         float64 // seconds remaining
	invulnerable   float64 // seconds remaining
	instaKill      bool
	bulletInFlight bool

	brain *EnemyBrain // nil for players
}

func newTank(kind TankKind, pos Position) *Tank {
	p := kind.Profile()
	return &Tank{
		kind:    kind,
		profile: p,
		pos:     pos,
		prev:    pos,
		facing:  DirUp,
		health:  p.MaxHealth,
	}
}

// NewPlayerTank creates the tank for player slot 1 or 2.
func NewPlayerTank(slot int, pos Position) *Tank {
	t := newTank(TankPlayer, pos)
	t.slot = slot
	t.label = fmt.Sprintf("P%d", slot)
	return t
}

// NewEnemyTank creates an AI tank. rng seeds its wander and fire cooldown.
func NewEnemyTank(id int, kind TankKind, pos Position, rng *rand.Rand) *Tank {
	if !kind.Profile().Enemy {
		kind = TankBasic
	}
	t := newTank(kind, pos)
	t.label = fmt.Sprintf("E%d", id)
	t.brain = newEnemyBrain(t.profile.Recharge, rng)
	return t
}

// Move drives the tank along dir for dt seconds, clamped to the arena.
// Obstacles are resolved afterwards by CollideBlock and CollideTank.
func (t *Tank) Move(dir Direction, dt float64) {
	if t.IsFrozen() || !t.IsAlive() || dir == DirNone {
		return
	}
	t.facing = dir
	t.prev = t.pos
	t.pos = clampToArena(t.pos.Move(dir, t.profile.Speed*dt))
	t.moving = true
}

// destination is where Move would put the tank, without committing.
func (t *Tank) destination(dir Direction, dt float64) Position {
	return clampToArena(t.pos.Move(dir, t.profile.Speed*dt))
}

// CollideBlock rolls the tank back when it overlaps an impassable block.
func (t *Tank) CollideBlock(b *Block) bool {
	if !b.Exists() || !b.BlocksMovement() || !t.Bounds().Intersects(b.Bounds()) {
		return false
	}
	t.rollback()
	return true
}

// CollideTank rolls the tank back when it overlaps another living tank.
func (t *Tank) CollideTank(o *Tank) bool {
	if o == nil || o == t || !o.IsAlive() || !t.Bounds().Intersects(o.Bounds()) {
		return false
	}
	t.rollback()
	return true
}

func (t *Tank) rollback() {
	t.pos = t.prev
	t.moving = false
}

// settle makes the current position the rollback point for the next tick.
func (t *Tank) settle() {
	t.prev = t.pos
}

// Shoot spawns a bullet from the tank's muzzle. DirNone fires along the
// current facing. The one-bullet rule is enforced by callers.
func (t *Tank) Shoot(dir Direction) *Bullet {
	if dir == DirNone {
		dir = t.facing
	}
	return NewBullet(t.muzzle(dir), dir, t)
}

// muzzle is the spawn point of a bullet fired along dir: centred on the
// cell and pushed just beyond its leading edge.
func (t *Tank) muzzle(dir Direction) Position {
	centre := float64(CellSize-BulletSize) / 2
	far := float64(CellSize - BulletSize + muzzleOffset)
	x, y := t.pos.X+centre, t.pos.Y+centre
	switch dir {
	case DirUp:
		y = t.pos.Y - muzzleOffset
	case DirDown:
		y = t.pos.Y + far
	case DirLeft:
		x = t.pos.X - muzzleOffset
	case DirRight:
		x = t.pos.X + far
	}
	return Position{X: x, Y: y}
}

// --- Status effects ---

func (t *Tank) Freeze()               { t.frozen = FreezeDuration }
func (t *Tank) GrantInvulnerability() { t.invulnerable = InvulnerabilityDuration }

// GrantInstaKill makes every later shot lethal. It lasts until the tank dies.
func (t *Tank) GrantInstaKill() { t.instaKill = true }

// TickStatus counts down timed effects.
func (t *Tank) TickStatus(dt float64) {
	t.frozen = max(0, t.frozen-dt)
	t.invulnerable = max(0, t.invulnerable-dt)
}

func (t *Tank) IsFrozen() bool       { return t.frozen > 0 }
func (t *Tank) IsInvulnerable() bool { return t.invulnerable > 0 }
func (t *Tank) HasInstaKill() bool   { return t.instaKill }

// FrozenFor and InvulnerableFor report the remaining effect time in seconds.
func (t *Tank) FrozenFor() float64       { return t.frozen }
func (t *Tank) InvulnerableFor() float64 { return t.invulnerable }

// --- Life ---

func (t *Tank) IsAlive() bool { return t.health > 0 }
func (t *Tank) Kill()         { t.health = 0 }
func (t *Tank) Health() int   { return t.health }

// --- Bullet bookkeeping ---

func (t *Tank) HasBulletInFlight() bool { return t.bulletInFlight }
func (t *Tank) MarkBulletInFlight()     { t.bulletInFlight = true }
func (t *Tank) clearBullet()            { t.bulletInFlight = false }

// --- Identity ---

func (t *Tank) Kind() TankKind        { return t.kind }
func (t *Tank) Profile() TankProfile  { return t.profile }
func (t *Tank) Label() string         { return t.label }
func (t *Tank) Slot() int             { return t.slot }
func (t *Tank) IsEnemy() bool         { return t.profile.Enemy }
func (t *Tank) IsPlayerOne() bool     { return t.kind == TankPlayer && t.slot == 1 }
func (t *Tank) IsPlayerTwo() bool     { return t.kind == TankPlayer && t.slot == 2 }
func (t *Tank) IsArmored() bool       { return t.profile.Armored }
func (t *Tank) Brain() *EnemyBrain    { return t.brain }
func (t *Tank) Position() Position    { return t.pos }
func (t *Tank) Facing() Direction     { return t.facing }
func (t *Tank) IsMoving() bool        { return t.moving }
func (t *Tank) SetMoving(moving bool) { t.moving = moving }

// Bounds is the tank's collision box.
func (t *Tank) Bounds() Rect { return tankBox(t.pos) }

// opposes reports whether a bullet from t and a hit on o are player versus
// player, which stuns instead of damaging.
func (t *Tank) opposes(o *Tank) bool {
	return (t.IsPlayerOne() && o.IsPlayerTwo()) || (t.IsPlayerTwo() && o.IsPlayerOne())
}
