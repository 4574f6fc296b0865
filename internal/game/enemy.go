package game

import "math/rand"

// Wander timing in seconds.
const (
	wanderMin      = 1.0
	wanderSpread   = 1.5 // durations are drawn from [wanderMin, wanderMin+wanderSpread)
	stuckThreshold = 2.0
)

// EnemyBrain drives an AI tank: it wanders in a random cardinal direction
// for a random time, avoids driving into other tanks, picks a new heading
// when it stops making progress, and counts down its fire cooldown.
type EnemyBrain struct {
	rng *rand.Rand

	dir    Direction
	wander float64 // seconds left on the current heading

	stuck   float64
	last    Position
	hasLast bool

	cooldown float64
	recharge float64
}

func newEnemyBrain(recharge float64, rng *rand.Rand) *EnemyBrain {
	b := &EnemyBrain{
		rng:      rng,
		recharge: recharge,
		cooldown: rng.Float64() * recharge,
	}
	b.resample()
	return b
}

func (b *EnemyBrain) resample() {
	b.dir = b.randomDirection()
	b.wander = wanderMin + b.rng.Float64()*wanderSpread
}

func (b *EnemyBrain) randomDirection() Direction {
	return Cardinals[b.rng.Intn(len(Cardinals))]
}

// Update runs one AI step for t. tanks is the level's tank collection.
func (b *EnemyBrain) Update(t *Tank, dt float64, tanks []*Tank) {
	b.wander -= dt
	if b.wander <= 0 {
		b.resample()
	}

	b.tryMove(t, dt, tanks)
	t.SetMoving(!t.IsFrozen())

	if b.hasLast && t.pos == b.last {
		b.stuck += dt
	} else {
		b.stuck = 0
		b.last = t.pos
		b.hasLast = true
	}
	if b.stuck > stuckThreshold {
		b.dir = b.randomDirection()
		b.stuck = 0
		b.tryMove(t, dt, tanks)
	}

	if b.cooldown > 0 {
		b.cooldown -= dt
	}
}

func (b *EnemyBrain) tryMove(t *Tank, dt float64, tanks []*Tank) {
	if destinationOccupied(t, t.destination(b.dir, dt), tanks) {
		return
	}
	t.Move(b.dir, dt)
}

// destinationOccupied reports whether t's box at dest would overlap any
// other living tank.
func destinationOccupied(t *Tank, dest Position, tanks []*Tank) bool {
	box := tankBox(dest)
	for _, o := range tanks {
		if o != t && o.IsAlive() && box.Intersects(o.Bounds()) {
			return true
		}
	}
	return false
}

// CanFire reports whether the cooldown has elapsed.
func (b *EnemyBrain) CanFire() bool { return b.cooldown <= 0 }

// ResetCooldown starts a full recharge after a shot.
func (b *EnemyBrain) ResetCooldown() { b.cooldown = b.recharge }

func (b *EnemyBrain) Direction() Direction { return b.dir }
func (b *EnemyBrain) Cooldown() float64    { return b.cooldown }
func (b *EnemyBrain) StuckFor() float64    { return b.stuck }
