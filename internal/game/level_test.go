package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cueRecorder collects every event a level or game emits.
type cueRecorder struct {
	events []Event
}

func (r *cueRecorder) HandleCue(ev Event) { r.events = append(r.events, ev) }

func (r *cueRecorder) count(c Cue) int {
	n := 0
	for _, ev := range r.events {
		if ev.Cue == c {
			n++
		}
	}
	return n
}

func (r *cueRecorder) last(c Cue) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Cue == c {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func noDropRules() Rules {
	r := DefaultRules()
	r.PowerUpChance = 0
	return r
}

func newTestLevel(rules Rules) (*Level, *cueRecorder) {
	rec := &cueRecorder{}
	l := NewLevel(testRand(), rules)
	l.SetCueSink(rec)
	return l, rec
}

func TestLevelUpdate_RemovesDeadTankAndRollsOnce(t *testing.T) {
	l, rec := newTestLevel(noDropRules())
	e := NewEnemyTank(0, TankBasic, Position{X: 276, Y: 276}, testRand())
	l.AddTank(e)
	e.Kill()

	l.Update(1.0 / 60)
	assert.Empty(t, l.Tanks())
	assert.Equal(t, 1, l.PowerUpRolls())
	assert.Equal(t, 1, rec.count(CueTankDestroyed))

	l.Update(1.0 / 60)
	assert.Equal(t, 1, l.PowerUpRolls(), "a removed tank is never rolled again")
	assert.True(t, l.IsComplete())
}

func TestLevelUpdate_DeadPlayerDoesNotRoll(t *testing.T) {
	l, rec := newTestLevel(DefaultRules())
	p := NewPlayerTank(1, Position{X: 100, Y: 100})
	l.AddTank(p)
	p.Kill()

	l.Update(1.0 / 60)
	assert.Equal(t, 0, l.PowerUpRolls())
	ev, ok := rec.last(CueTankDestroyed)
	require.True(t, ok)
	assert.Equal(t, "P1", ev.Actor)
}

func TestLevelUpdate_LeavesWreck(t *testing.T) {
	l, _ := newTestLevel(noDropRules())
	e := NewEnemyTank(0, TankBasic, Position{X: 276, Y: 276}, testRand())
	l.AddTank(e)
	e.Kill()
	l.Update(1.0 / 60)

	require.Len(t, l.Blocks(), 1)
	assert.Equal(t, BlockWreck, l.Blocks()[0].Kind())

	rules := noDropRules()
	rules.LeaveWrecks = false
	l2, _ := newTestLevel(rules)
	e2 := NewEnemyTank(0, TankBasic, Position{X: 276, Y: 276}, testRand())
	l2.AddTank(e2)
	e2.Kill()
	l2.Update(1.0 / 60)
	assert.Empty(t, l2.Blocks())
}

func TestLevelUpdate_BulletKillsEnemy(t *testing.T) {
	l, rec := newTestLevel(noDropRules())
	p := NewPlayerTank(1, Position{X: 500, Y: 500})
	e := NewEnemyTank(0, TankBasic, Position{X: 100, Y: 100}, testRand())
	e.brain = nil // keep it still
	l.AddTank(p)
	l.AddTank(e)

	p.MarkBulletInFlight()
	l.AddBullet(NewBullet(Position{X: 118, Y: 150}, DirUp, p))

	l.Update(0.05) // 20px up: inside the enemy box
	assert.False(t, e.IsAlive())
	assert.Empty(t, l.Bullets())
	assert.False(t, p.HasBulletInFlight())

	l.Update(0.05)
	assert.True(t, l.IsComplete())
	assert.Equal(t, 1, rec.count(CueTankDestroyed))
}

func TestLevelUpdate_BulletLeavesArena(t *testing.T) {
	l, _ := newTestLevel(noDropRules())
	p := NewPlayerTank(1, Position{X: 300, Y: 300})
	l.AddTank(p)
	p.MarkBulletInFlight()
	l.AddBullet(NewBullet(Position{X: 300, Y: 5}, DirUp, p))

	l.Update(0.1)
	assert.Empty(t, l.Bullets())
	assert.False(t, p.HasBulletInFlight())
}

func TestLevelUpdate_BulletThroughWater(t *testing.T) {
	l, _ := newTestLevel(noDropRules())
	l.AddBlock(NewBlock(BlockWater, Position{X: 92, Y: 92}))
	b := NewBullet(Position{X: 110, Y: 150}, DirUp, nil)
	l.AddBullet(b)

	l.Update(0.05)
	assert.True(t, b.Active())
	require.Len(t, l.Blocks(), 1)
}

func TestLevelUpdate_BrickCue(t *testing.T) {
	l, rec := newTestLevel(noDropRules())
	brick := NewBlock(BlockBrick, Position{X: 92, Y: 92})
	l.AddBlock(brick)
	l.AddBullet(NewBullet(Position{X: 110, Y: 150}, DirUp, nil))

	l.Update(0.05)
	assert.Equal(t, 2, brick.Life())
	assert.Equal(t, 1, rec.count(CueBrickHit))
}

func TestLevelUpdate_BaseDestroyed(t *testing.T) {
	l, rec := newTestLevel(noDropRules())
	l.AddBlock(NewBlock(BlockBase, Position{X: 276, Y: 552}))
	require.False(t, l.BaseDestroyed())

	l.AddBullet(NewBullet(Position{X: 290, Y: 560}, DirUp, nil))
	l.Update(1.0 / 60)

	assert.True(t, l.BaseDestroyed())
	assert.Nil(t, l.FindBase())
	assert.Equal(t, 1, rec.count(CueBaseDestroyed))
}

func TestLevel_NoBaseNeverDestroyed(t *testing.T) {
	l, _ := newTestLevel(noDropRules())
	l.Update(1.0 / 60)
	assert.False(t, l.BaseDestroyed())
}

func TestLevelUpdate_BulletsCancel(t *testing.T) {
	l, _ := newTestLevel(noDropRules())
	a := NewBullet(Position{X: 100, Y: 300}, DirRight, nil)
	b := NewBullet(Position{X: 114, Y: 300}, DirLeft, nil)
	l.AddBullet(a)
	l.AddBullet(b)

	l.Update(0.01) // they meet within the tick
	assert.False(t, a.Active())
	assert.False(t, b.Active())
	assert.Empty(t, l.Bullets())
}

func TestLevelUpdate_ArmoredCue(t *testing.T) {
	l, rec := newTestLevel(noDropRules())
	p := NewPlayerTank(1, Position{X: 500, Y: 500})
	e := NewEnemyTank(0, TankArmored, Position{X: 100, Y: 100}, testRand())
	e.brain = nil
	l.AddTank(p)
	l.AddTank(e)
	l.AddBullet(NewBullet(Position{X: 118, Y: 150}, DirUp, p))

	l.Update(0.05)
	assert.Equal(t, 2, e.Health())
	assert.Equal(t, 1, rec.count(CueArmoredHit))
}

func TestLevelUpdate_InstaKillArmoredCue(t *testing.T) {
	for _, tc := range []struct {
		name     string
		shielded bool
		cues     int
	}{
		{"invulnerable target still rings", true, 1},
		{"armour does not ring on a lethal shot", false, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, rec := newTestLevel(noDropRules())
			p := NewPlayerTank(1, Position{X: 500, Y: 500})
			p.GrantInstaKill()
			e := NewEnemyTank(0, TankArmored, Position{X: 100, Y: 100}, testRand())
			e.brain = nil
			if tc.shielded {
				e.GrantInvulnerability()
			}
			l.AddTank(p)
			l.AddTank(e)
			l.AddBullet(NewBullet(Position{X: 118, Y: 150}, DirUp, p))

			l.Update(0.05)
			assert.Equal(t, 0, e.Health())
			assert.Equal(t, tc.cues, rec.count(CueArmoredHit))
		})
	}
}

// Killing N enemies one update at a time with drops disabled completes the
// level without spawning a single power-up.
func TestLevelUpdate_KillOneAtATime(t *testing.T) {
	const n = 5
	l, rec := newTestLevel(noDropRules())
	for i := 0; i < n; i++ {
		e := NewEnemyTank(i, TankBasic, Position{X: float64(i * 2 * CellSize)}, testRand())
		e.brain = nil
		l.AddTank(e)
	}

	for i := 0; i < n; i++ {
		require.False(t, l.IsComplete(), "kill %d", i)
		enemies := l.Enemies()
		require.Len(t, enemies, n-i)
		enemies[0].Kill()
		l.Update(testDT)
	}

	assert.True(t, l.IsComplete())
	assert.Empty(t, l.PowerUps())
	assert.Equal(t, n, l.PowerUpRolls())
	assert.Equal(t, n, rec.count(CueTankDestroyed))
	assert.Zero(t, rec.count(CuePowerUpSpawned))
}

func TestSpawnPowerUp_ChanceOne(t *testing.T) {
	rules := DefaultRules()
	rules.PowerUpChance = 1
	l, rec := newTestLevel(rules)
	e := NewEnemyTank(0, TankBasic, Position{X: 0, Y: 0}, testRand())
	l.AddTank(e)
	e.Kill()

	l.Update(1.0 / 60)
	require.Len(t, l.PowerUps(), 1)
	assert.Equal(t, 1, rec.count(CuePowerUpSpawned))

	pu := l.PowerUps()[0]
	for _, b := range l.Blocks() {
		assert.False(t, pu.Bounds().Intersects(b.Bounds()), "power-up overlaps %s", b.Kind())
	}
}

func TestSpawnPowerUp_AvoidsObstacles(t *testing.T) {
	l, _ := newTestLevel(DefaultRules())
	for i := 0; i < 200; i++ {
		pu, err := l.SpawnPowerUp(PowerUpKind(i % 4))
		if err != nil {
			break
		}
		l.RemovePowerUp(pu)
		l.AddBlock(NewBlock(BlockSteel, pu.Position()))
	}
	// none of the steel placed on accepted spots may overlap each other
	blocks := l.Blocks()
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			require.False(t, blocks[i].Bounds().Intersects(blocks[j].Bounds()))
		}
	}
}

func TestSpawnPowerUp_SaturatedArena(t *testing.T) {
	l, rec := newTestLevel(DefaultRules())
	for r := 0; r < GridCells; r++ {
		for c := 0; c < GridCells; c++ {
			l.AddBlock(NewBlock(BlockSteel, Position{X: float64(c * CellSize), Y: float64(r * CellSize)}))
		}
	}

	pu, err := l.SpawnPowerUp(PowerUpStar)
	assert.Nil(t, pu)
	require.ErrorIs(t, err, ErrArenaSaturated)
	assert.Contains(t, err.Error(), "star")
	assert.Equal(t, 1, rec.count(CuePlacementFailed))
	assert.Empty(t, l.PowerUps())
}

func TestLevel_IsCompleteCountsUnremovedDead(t *testing.T) {
	l, _ := newTestLevel(noDropRules())
	e := NewEnemyTank(0, TankBasic, Position{}, testRand())
	l.AddTank(e)
	e.Kill()
	assert.False(t, l.IsComplete(), "dead enemies still count until the next update")
	assert.Len(t, l.Enemies(), 1)
}

func TestBuildLevel(t *testing.T) {
	spec := LevelSpec{
		Name:   "fixture",
		Spawns: map[int]Position{2: {X: 10, Y: 20}},
		Enemies: []EnemySpec{
			{Kind: TankBasic, Pos: Position{X: 0, Y: 0}},
			{Kind: TankFast, Pos: Position{X: 92, Y: 0}},
		},
		Objects: []ObjectSpec{
			{Kind: BlockBrick, Pos: Position{X: 184, Y: 184}},
			{Kind: BlockBase, Pos: Position{X: 276, Y: 552}},
		},
	}
	l := BuildLevel(spec, testRand(), DefaultRules())

	require.Len(t, l.Enemies(), 2)
	assert.Equal(t, "E1", l.Enemies()[1].Label())
	assert.Equal(t, TankFast, l.Enemies()[1].Kind())
	assert.Len(t, l.Blocks(), 2)
	assert.NotNil(t, l.FindBase())

	p, ok := l.Spawn(2)
	assert.True(t, ok)
	assert.Equal(t, Position{X: 10, Y: 20}, p)
	_, ok = l.Spawn(1)
	assert.False(t, ok)
}

func TestLevelSpec_IsEmpty(t *testing.T) {
	assert.True(t, LevelSpec{}.IsEmpty())
	assert.False(t, LevelSpec{Objects: []ObjectSpec{{Kind: BlockBase}}}.IsEmpty())
	assert.False(t, LevelSpec{Enemies: []EnemySpec{{Kind: TankBasic}}}.IsEmpty())
	assert.True(t, LevelSpec{Objects: []ObjectSpec{{Kind: BlockBrick}}}.IsEmpty())
}
