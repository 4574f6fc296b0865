package game

// HitResult describes how a bullet contact with a tank was resolved.
type HitResult int

const (
	HitNone      HitResult = iota // no contact
	HitFriendly                   // enemy on enemy, absorbed without damage
	HitFrozen                     // player on player, target stunned
	HitDamaged                    // target lost health
	HitArmored                    // target lost health, armour rang
	HitDeflected                  // target invulnerable, no damage
	HitPierced                    // target invulnerable, killed by insta-kill
)

func (r HitResult) String() string {
	switch r {
	case HitFriendly:
		return "friendly"
	case HitFrozen:
		return "frozen"
	case HitDamaged:
		return "damaged"
	case HitArmored:
		return "armored"
	case HitDeflected:
		return "deflected"
	case HitPierced:
		return "pierced"
	default:
		return "none"
	}
}

// Bullet travels in a straight line until it hits something or leaves the
// arena. The owner is referenced, not owned.
type Bullet struct {
	pos    Position
	dir    Direction
	speed  float64
	active bool
	owner  *Tank
}

// NewBullet creates an active bullet travelling at BulletSpeed.
func NewBullet(pos Position, dir Direction, owner *Tank) *Bullet {
	return &Bullet{pos: pos, dir: dir, speed: BulletSpeed, active: true, owner: owner}
}

// Advance moves the bullet dt seconds along its direction.
func (b *Bullet) Advance(dt float64) {
	b.pos = b.pos.Move(b.dir, b.speed*dt)
}

// OutOfBounds reports whether the bullet's anchor has left the arena.
func (b *Bullet) OutOfBounds(arena Rect) bool {
	return !arena.Contains(b.pos)
}

// HitBlock resolves contact with a block and reports whether the bullet
// touched it. The block absorbs the bullet when it blocks bullets.
func (b *Bullet) HitBlock(blk *Block) bool {
	if !b.active || !b.Bounds().Intersects(blk.Bounds()) {
		return false
	}
	if blk.OnBulletImpact() {
		b.Impact()
	}
	return true
}

// HitTank resolves contact with any tank other than the owner.
func (b *Bullet) HitTank(t *Tank) HitResult {
	if !b.active || t == b.owner || !b.Bounds().Intersects(t.Bounds()) {
		return HitNone
	}
	b.Impact()

	owner := b.owner
	if owner != nil && owner.IsEnemy() && t.IsEnemy() {
		return HitFriendly
	}
	if owner != nil && owner.opposes(t) {
		t.Freeze()
		return HitFrozen
	}

	shielded := t.IsInvulnerable()
	if owner != nil && owner.HasInstaKill() {
		// insta-kill ignores invulnerability
		t.health = 0
		if shielded {
			return HitPierced
		}
		return HitDamaged
	}
	if shielded {
		return HitDeflected
	}
	t.health--
	if t.IsArmored() {
		return HitArmored
	}
	return HitDamaged
}

// HitBullet annihilates both bullets when they overlap.
func (b *Bullet) HitBullet(o *Bullet) bool {
	if o == b || !b.active || !o.active || !b.Bounds().Intersects(o.Bounds()) {
		return false
	}
	b.Impact()
	o.Impact()
	return true
}

// Impact deactivates the bullet and frees the owner to fire again.
func (b *Bullet) Impact() {
	b.active = false
	if b.owner != nil {
		b.owner.clearBullet()
	}
}

func (b *Bullet) Active() bool         { return b.active }
func (b *Bullet) Owner() *Tank         { return b.owner }
func (b *Bullet) Position() Position   { return b.pos }
func (b *Bullet) Direction() Direction { return b.dir }

// Bounds is the bullet's collision box.
func (b *Bullet) Bounds() Rect {
	return Rect{X: b.pos.X, Y: b.pos.Y, W: BulletSize, H: BulletSize}
}
