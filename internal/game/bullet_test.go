package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bulletInto returns an active bullet from owner sitting inside target's box.
func bulletInto(owner, target *Tank) *Bullet {
	p := target.Position()
	return NewBullet(Position{X: p.X + 18, Y: p.Y + 18}, DirUp, owner)
}

func TestHitTank_EnemyOnEnemyIsFriendly(t *testing.T) {
	rng := testRand()
	shooter := NewEnemyTank(0, TankBasic, Position{X: 0, Y: 0}, rng)
	target := NewEnemyTank(1, TankBasic, Position{X: 200, Y: 200}, rng)
	shooter.MarkBulletInFlight()

	b := bulletInto(shooter, target)
	assert.Equal(t, HitFriendly, b.HitTank(target))
	assert.Equal(t, 1, target.Health())
	assert.False(t, b.Active())
	assert.False(t, shooter.HasBulletInFlight())
}

func TestHitTank_PlayerOnPlayerFreezes(t *testing.T) {
	p1 := NewPlayerTank(1, Position{X: 0, Y: 0})
	p2 := NewPlayerTank(2, Position{X: 200, Y: 200})

	b := bulletInto(p1, p2)
	assert.Equal(t, HitFrozen, b.HitTank(p2))
	assert.Equal(t, 3, p2.Health())
	assert.True(t, p2.IsFrozen())
	assert.Equal(t, FreezeDuration, p2.FrozenFor())
}

func TestHitTank_PlayerDamagesEnemy(t *testing.T) {
	p1 := NewPlayerTank(1, Position{X: 0, Y: 0})
	e := NewEnemyTank(0, TankBasic, Position{X: 200, Y: 200}, testRand())

	assert.Equal(t, HitDamaged, bulletInto(p1, e).HitTank(e))
	assert.False(t, e.IsAlive())
}

func TestHitTank_EnemyDamagesPlayer(t *testing.T) {
	e := NewEnemyTank(0, TankBasic, Position{X: 0, Y: 0}, testRand())
	p1 := NewPlayerTank(1, Position{X: 200, Y: 200})

	assert.Equal(t, HitDamaged, bulletInto(e, p1).HitTank(p1))
	assert.Equal(t, 2, p1.Health())
}

func TestHitTank_ArmoredNeedsThreeHits(t *testing.T) {
	p1 := NewPlayerTank(1, Position{X: 0, Y: 0})
	e := NewEnemyTank(0, TankArmored, Position{X: 200, Y: 200}, testRand())

	for i := 0; i < 3; i++ {
		require.True(t, e.IsAlive())
		assert.Equal(t, HitArmored, bulletInto(p1, e).HitTank(e))
	}
	assert.False(t, e.IsAlive())
}

func TestHitTank_InvulnerableDeflects(t *testing.T) {
	e := NewEnemyTank(0, TankBasic, Position{X: 0, Y: 0}, testRand())
	p1 := NewPlayerTank(1, Position{X: 200, Y: 200})
	p1.GrantInvulnerability()

	b := bulletInto(e, p1)
	assert.Equal(t, HitDeflected, b.HitTank(p1))
	assert.Equal(t, 3, p1.Health())
	assert.False(t, b.Active(), "a deflected bullet is still spent")
}

func TestHitTank_InstaKill(t *testing.T) {
	p1 := NewPlayerTank(1, Position{X: 0, Y: 0})
	p1.GrantInstaKill()

	armored := NewEnemyTank(0, TankArmored, Position{X: 200, Y: 200}, testRand())
	assert.Equal(t, HitDamaged, bulletInto(p1, armored).HitTank(armored))
	assert.False(t, armored.IsAlive(), "one lethal shot kills an armored tank")

	// player-vs-player stays a freeze even with insta-kill
	p2 := NewPlayerTank(2, Position{X: 300, Y: 300})
	assert.Equal(t, HitFrozen, bulletInto(p1, p2).HitTank(p2))
	assert.True(t, p2.IsAlive())
}

func TestHitTank_InstaKillBypassesInvulnerability(t *testing.T) {
	e := NewEnemyTank(0, TankBasic, Position{X: 0, Y: 0}, testRand())
	e.GrantInstaKill()
	p1 := NewPlayerTank(1, Position{X: 200, Y: 200})
	p1.GrantInvulnerability()

	assert.Equal(t, HitPierced, bulletInto(e, p1).HitTank(p1))
	assert.False(t, p1.IsAlive())
}

func TestHitTank_SkipsOwnerAndMisses(t *testing.T) {
	p1 := NewPlayerTank(1, Position{X: 100, Y: 100})
	b := bulletInto(p1, p1)
	assert.Equal(t, HitNone, b.HitTank(p1))
	assert.True(t, b.Active())

	far := NewEnemyTank(0, TankBasic, Position{X: 400, Y: 400}, testRand())
	assert.Equal(t, HitNone, b.HitTank(far))
	assert.True(t, b.Active())
}

func TestHitBlock_WaterLetsBulletsThrough(t *testing.T) {
	water := NewBlock(BlockWater, Position{X: 100, Y: 100})
	b := NewBullet(Position{X: 110, Y: 110}, DirUp, nil)

	assert.True(t, b.HitBlock(water), "contact is still reported")
	assert.True(t, b.Active())
	assert.True(t, water.Exists())
}

func TestHitBlock_BrickAbsorbs(t *testing.T) {
	brick := NewBlock(BlockBrick, Position{X: 100, Y: 100})
	owner := NewPlayerTank(1, Position{})
	owner.MarkBulletInFlight()
	b := NewBullet(Position{X: 110, Y: 110}, DirUp, owner)

	assert.True(t, b.HitBlock(brick))
	assert.False(t, b.Active())
	assert.Equal(t, 2, brick.Life())
	assert.False(t, owner.HasBulletInFlight())
}

func TestHitBullet_AnnihilatesBoth(t *testing.T) {
	a := NewBullet(Position{X: 100, Y: 100}, DirRight, nil)
	b := NewBullet(Position{X: 105, Y: 105}, DirLeft, nil)

	assert.False(t, a.HitBullet(a), "a bullet never hits itself")
	assert.True(t, a.Active())

	assert.True(t, a.HitBullet(b))
	assert.False(t, a.Active())
	assert.False(t, b.Active())
	assert.False(t, b.HitBullet(a), "inactive bullets do not collide")
}

func TestBulletOutOfBounds(t *testing.T) {
	b := NewBullet(Position{X: 300, Y: 5}, DirUp, nil)
	assert.False(t, b.OutOfBounds(ArenaRect))
	b.Advance(0.1)
	assert.Equal(t, -35.0, b.Position().Y)
	assert.True(t, b.OutOfBounds(ArenaRect))
}
