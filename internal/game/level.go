package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrArenaSaturated is returned when no free spot for a power-up could be
// found within the placement budget.
var ErrArenaSaturated = errors.New("arena saturated: no free spot for power-up")

// Level owns the entities of one stage and advances them each tick.
type Level struct {
	arena    Rect
	rules    Rules
	rng      *rand.Rand
	sink     CueSink
	blocks   []*Block
	tanks    []*Tank
	bullets  []*Bullet
	powerUps []*PowerUp
	spawns   map[int]Position

	hasBase bool
	rolls   int // power-up rolls performed
}

// NewLevel creates an empty level sharing the given generator.
func NewLevel(rng *rand.Rand, rules Rules) *Level {
	return &Level{
		arena:  ArenaRect,
		rules:  rules.normalized(),
		rng:    rng,
		spawns: map[int]Position{},
	}
}

// SetCueSink routes the level's cues. A nil sink discards them.
func (l *Level) SetCueSink(s CueSink) { l.sink = s }

func (l *Level) emit(c Cue, pos Position, actor, detail string) {
	if l.sink == nil {
		return
	}
	l.sink.HandleCue(Event{Cue: c, Pos: pos, Actor: actor, Detail: detail})
}

// --- Population ---

func (l *Level) AddTank(t *Tank)       { l.tanks = append(l.tanks, t) }
func (l *Level) AddBullet(b *Bullet)   { l.bullets = append(l.bullets, b) }
func (l *Level) AddPowerUp(p *PowerUp) { l.powerUps = append(l.powerUps, p) }

// AddBlock places terrain. Adding a base makes the level losable.
func (l *Level) AddBlock(b *Block) {
	if b.kind == BlockBase {
		l.hasBase = true
	}
	l.blocks = append(l.blocks, b)
}

// SetSpawn declares where a player slot enters this level.
func (l *Level) SetSpawn(slot int, p Position) { l.spawns[slot] = p }

// Spawn returns the declared entry point for slot, if any.
func (l *Level) Spawn(slot int) (Position, bool) {
	p, ok := l.spawns[slot]
	return p, ok
}

// RemovePowerUp takes a collected pickup off the field.
func (l *Level) RemovePowerUp(p *PowerUp) {
	for i, q := range l.powerUps {
		if q == p {
			l.powerUps = append(l.powerUps[:i], l.powerUps[i+1:]...)
			return
		}
	}
}

// --- Queries ---

func (l *Level) Blocks() []*Block     { return l.blocks }
func (l *Level) Tanks() []*Tank       { return l.tanks }
func (l *Level) Bullets() []*Bullet   { return l.bullets }
func (l *Level) PowerUps() []*PowerUp { return l.powerUps }
func (l *Level) Arena() Rect          { return l.arena }
func (l *Level) Rules() Rules         { return l.rules }
func (l *Level) PowerUpRolls() int    { return l.rolls }

// Enemies returns the AI tanks still in the collection, dead or alive.
func (l *Level) Enemies() []*Tank {
	var out []*Tank
	for _, t := range l.tanks {
		if t.IsEnemy() {
			out = append(out, t)
		}
	}
	return out
}

// IsComplete reports whether no enemy tanks remain in the level.
func (l *Level) IsComplete() bool {
	for _, t := range l.tanks {
		if t.IsEnemy() {
			return false
		}
	}
	return true
}

// FindBase returns the standing base block, or nil if the level has none.
func (l *Level) FindBase() *Block {
	for _, b := range l.blocks {
		if b.kind == BlockBase && b.Exists() {
			return b
		}
	}
	return nil
}

// BaseDestroyed reports whether the level had a base and none is standing.
func (l *Level) BaseDestroyed() bool {
	if !l.hasBase {
		return false
	}
	for _, b := range l.blocks {
		if b.kind == BlockBase && b.Exists() {
			return false
		}
	}
	return true
}

// --- Tick ---

// Update advances the level by dt seconds. Player movement is applied by
// the caller before Update runs.
func (l *Level) Update(dt float64) {
	// 1. Tanks: death bookkeeping, timers, AI.
	for _, t := range l.tanks {
		if !t.IsAlive() {
			if t.IsEnemy() {
				l.rollPowerUp()
			}
			l.emit(CueTankDestroyed, t.pos, t.label, t.kind.String())
			continue
		}
		t.TickStatus(dt)
		if t.brain != nil {
			t.brain.Update(t, dt, l.tanks)
		}
	}

	// 2. Collect the dead.
	l.removeDeadTanks()
	l.removeMissingBlocks()

	// 3. Bullets, by index so deactivation never skips an entry.
	for i := 0; i < len(l.bullets); i++ {
		b := l.bullets[i]
		if !b.Active() {
			continue
		}
		b.Advance(dt)
		if b.OutOfBounds(l.arena) {
			b.Impact()
			continue
		}
		l.bulletVsBlocks(b)
		if !b.Active() {
			continue
		}
		l.bulletVsTanks(b)
		if !b.Active() {
			continue
		}
		for j := 0; j < len(l.bullets); j++ {
			if j != i && b.HitBullet(l.bullets[j]) {
				break
			}
		}
	}

	// 4. Drop spent bullets.
	l.removeInactiveBullets()
}

func (l *Level) bulletVsBlocks(b *Bullet) {
	for _, blk := range l.blocks {
		if !blk.Exists() {
			continue
		}
		if b.HitBlock(blk) {
			if c := blk.ImpactCue(); c != CueNone {
				l.emit(c, blk.pos, blk.kind.String(), "")
			}
		}
		if !b.Active() {
			return
		}
	}
}

func (l *Level) bulletVsTanks(b *Bullet) {
	for _, t := range l.tanks {
		if !t.IsAlive() || t == b.owner {
			continue
		}
		switch b.HitTank(t) {
		case HitNone:
			continue
		case HitArmored, HitDeflected, HitPierced:
			l.emit(CueArmoredHit, t.pos, t.label, "")
		case HitFrozen:
			l.emit(CueTankFrozen, t.pos, t.label, "")
		}
		return
	}
}

func (l *Level) removeDeadTanks() {
	kept := l.tanks[:0]
	for _, t := range l.tanks {
		if t.IsAlive() {
			kept = append(kept, t)
			continue
		}
		if l.rules.LeaveWrecks {
			l.blocks = append(l.blocks, newWreck(t.pos))
		}
	}
	clear(l.tanks[len(kept):])
	l.tanks = kept
}

func (l *Level) removeMissingBlocks() {
	kept := l.blocks[:0]
	for _, b := range l.blocks {
		if b.Exists() {
			kept = append(kept, b)
		}
	}
	clear(l.blocks[len(kept):])
	l.blocks = kept
}

func (l *Level) removeInactiveBullets() {
	kept := l.bullets[:0]
	for _, b := range l.bullets {
		if b.Active() {
			kept = append(kept, b)
		}
	}
	clear(l.bullets[len(kept):])
	l.bullets = kept
}

// --- Power-ups ---

// rollPowerUp is the enemy-death drop: with the configured chance, a random
// pickup is placed somewhere free.
func (l *Level) rollPowerUp() {
	l.rolls++
	if l.rng.Float64() >= l.rules.PowerUpChance {
		return
	}
	kind := PowerUpKind(l.rng.Intn(int(powerUpKindCount)))
	_, _ = l.SpawnPowerUp(kind) // exhaustion is reported as a cue
}

// SpawnPowerUp places a pickup at a uniformly random spot that overlaps no
// block or living tank.
func (l *Level) SpawnPowerUp(kind PowerUpKind) (*PowerUp, error) {
	maxX := l.arena.W - CellSize
	maxY := l.arena.H - CellSize
	for range l.rules.PlacementAttempts {
		pos := Position{X: l.rng.Float64() * maxX, Y: l.rng.Float64() * maxY}
		p := NewPowerUp(kind, pos)
		if l.occupied(p.Bounds()) {
			continue
		}
		l.powerUps = append(l.powerUps, p)
		l.emit(CuePowerUpSpawned, pos, kind.String(), "")
		return p, nil
	}
	err := fmt.Errorf("placing %s after %d attempts: %w", kind, l.rules.PlacementAttempts, ErrArenaSaturated)
	l.emit(CuePlacementFailed, Position{}, kind.String(), err.Error())
	return nil, err
}

func (l *Level) occupied(r Rect) bool {
	for _, b := range l.blocks {
		if b.Exists() && r.Intersects(b.Bounds()) {
			return true
		}
	}
	for _, t := range l.tanks {
		// a dead tank is about to turn into a wreck
		if (t.IsAlive() || l.rules.LeaveWrecks) && r.Intersects(t.Bounds()) {
			return true
		}
	}
	return false
}
