package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// --- Generators ---

// drawLevel builds a random but well-formed level: enemies on the top row,
// scattered brick in the middle rows, and optionally a base at the bottom.
func drawLevel(t *rapid.T) LevelSpec {
	n := rapid.IntRange(1, 5).Draw(t, "enemies")
	cols := rapid.SliceOfNDistinct(rapid.IntRange(0, GridCells-1), n, n, rapid.ID[int]).Draw(t, "cols")
	spec := LevelSpec{Name: "generated"}
	for i, c := range cols {
		kind := rapid.SampledFrom(EnemyKinds).Draw(t, fmt.Sprintf("kind%d", i))
		spec.Enemies = append(spec.Enemies, EnemySpec{Kind: kind, Pos: Position{X: float64(c * CellSize)}})
	}
	bricks := rapid.SliceOfNDistinct(rapid.IntRange(0, GridCells*7-1), 0, 20, rapid.ID[int]).Draw(t, "bricks")
	for _, c := range bricks {
		spec.Objects = append(spec.Objects, ObjectSpec{
			Kind: BlockBrick,
			Pos:  Position{X: float64((c % GridCells) * CellSize), Y: float64((2 + c/GridCells) * CellSize)},
		})
	}
	if rapid.Bool().Draw(t, "base") {
		spec.Objects = append(spec.Objects, ObjectSpec{Kind: BlockBase, Pos: Position{X: 276, Y: 552}})
	}
	return spec
}

func drawSim(t *rapid.T) *TestSim {
	spec := drawLevel(t)
	rules := DefaultRules()
	rules.PowerUpChance = rapid.Float64Range(0, 1).Draw(t, "chance")
	return NewTestSim(
		WithSimSeed(rapid.Int64Range(1, 1<<40).Draw(t, "seed")),
		WithSimLevels(LevelList{spec}),
		WithSimRules(rules),
		WithSimPlayers(rapid.IntRange(1, 2).Draw(t, "players")),
		WithAutopilot(),
	)
}

// --- Whole-match invariants ---

func TestInvariant_MatchProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ts := drawSim(t)
		for i := 0; i < 300 && ts.Game.State() == StateRunning; i++ {
			lvl := ts.Game.Level()
			var dead []*Tank
			frozen := map[*Tank]Position{}
			for _, tank := range lvl.Tanks() {
				if !tank.IsAlive() {
					dead = append(dead, tank)
				}
				if tank.IsAlive() && tank.FrozenFor() > ts.DT {
					frozen[tank] = tank.Position()
				}
			}

			ts.RunTicks(1)
			lvl = ts.Game.Level()

			// dead tanks are gone after one update
			for _, d := range dead {
				for _, tank := range lvl.Tanks() {
					if tank == d {
						t.Fatalf("T=%d dead tank %s still in level", ts.CurrentTick(), d.Label())
					}
				}
			}

			// frozen tanks stay put
			for tank, pos := range frozen {
				if tank.IsAlive() && tank.Position() != pos {
					t.Fatalf("T=%d frozen tank %s moved from %v to %v", ts.CurrentTick(), tank.Label(), pos, tank.Position())
				}
			}

			// one bullet per owner, tracked by the flag
			owned := map[*Tank]int{}
			for _, b := range lvl.Bullets() {
				if b.Active() && b.Owner() != nil {
					owned[b.Owner()]++
				}
			}
			for _, tank := range lvl.Tanks() {
				if owned[tank] > 1 {
					t.Fatalf("T=%d tank %s has %d bullets in flight", ts.CurrentTick(), tank.Label(), owned[tank])
				}
				if tank.HasBulletInFlight() != (owned[tank] == 1) {
					t.Fatalf("T=%d tank %s flag=%t active=%d", ts.CurrentTick(), tank.Label(), tank.HasBulletInFlight(), owned[tank])
				}
			}

			// tanks stay inside the arena and health agrees with life
			for _, tank := range lvl.Tanks() {
				p := tank.Position()
				if p.X < 0 || p.Y < 0 || p.X > ArenaWidth-CellSize || p.Y > ArenaHeight-CellSize {
					t.Fatalf("T=%d tank %s out of bounds at %v", ts.CurrentTick(), tank.Label(), p)
				}
				if tank.Health() < 0 {
					t.Fatalf("T=%d tank %s has negative health %d", ts.CurrentTick(), tank.Label(), tank.Health())
				}
			}
		}
	})
}

func TestInvariant_SameSeedSameMatch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := drawLevel(t)
		seed := rapid.Int64Range(1, 1<<40).Draw(t, "seed")
		run := func() (SimSnapshot, string) {
			ts := NewTestSim(WithSimSeed(seed), WithSimLevels(LevelList{spec}), WithAutopilot())
			ts.RunTicks(240)
			return ts.Snapshot(), ts.SimLog.Format()
		}
		s1, log1 := run()
		s2, log2 := run()
		if log1 != log2 {
			t.Fatalf("logs diverged for seed %d", seed)
		}
		require.Equal(t, s1, s2)
	})
}

// --- Entity-level properties ---

func TestInvariant_NoEnemyFriendlyFire(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rng := testRand()
		shooter := NewEnemyTank(0, rapid.SampledFrom(EnemyKinds).Draw(t, "shooter"), Position{}, rng)
		target := NewEnemyTank(1, rapid.SampledFrom(EnemyKinds).Draw(t, "target"), Position{X: 276, Y: 276}, rng)
		if rapid.Bool().Draw(t, "instakill") {
			shooter.GrantInstaKill()
		}
		before := target.Health()

		res := bulletInto(shooter, target).HitTank(target)
		if res != HitFriendly {
			t.Fatalf("enemy on enemy resolved as %s", res)
		}
		if target.Health() != before {
			t.Fatalf("health changed from %d to %d", before, target.Health())
		}
	})
}

func TestInvariant_BulletCollisionSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ax := rapid.Float64Range(0, 100).Draw(t, "ax")
		ay := rapid.Float64Range(0, 100).Draw(t, "ay")
		bx := rapid.Float64Range(0, 100).Draw(t, "bx")
		by := rapid.Float64Range(0, 100).Draw(t, "by")

		a1, b1 := NewBullet(Position{ax, ay}, DirUp, nil), NewBullet(Position{bx, by}, DirDown, nil)
		a2, b2 := NewBullet(Position{ax, ay}, DirUp, nil), NewBullet(Position{bx, by}, DirDown, nil)
		hit1 := a1.HitBullet(b1)
		hit2 := b2.HitBullet(a2)
		if hit1 != hit2 {
			t.Fatalf("asymmetric collision: a→b=%t b→a=%t", hit1, hit2)
		}
		if hit1 && (a1.Active() || b1.Active()) {
			t.Fatalf("colliding bullets must both deactivate")
		}
		if !hit1 && (!a1.Active() || !b1.Active()) {
			t.Fatalf("missed bullets must stay active")
		}
	})
}

func TestInvariant_FrozenTankDoesNotMove(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := Position{
			X: rapid.Float64Range(0, ArenaWidth-CellSize).Draw(t, "x"),
			Y: rapid.Float64Range(0, ArenaHeight-CellSize).Draw(t, "y"),
		}
		tank := NewPlayerTank(rapid.IntRange(1, 2).Draw(t, "slot"), start)
		tank.Freeze()
		dt := rapid.Float64Range(0.001, FreezeDuration-0.001).Draw(t, "dt")
		tank.Move(rapid.SampledFrom(Cardinals[:]).Draw(t, "dir"), dt)
		if tank.Position() != start {
			t.Fatalf("frozen tank moved from %v to %v", start, tank.Position())
		}
	})
}

func TestInvariant_MoveStaysInArena(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tank := NewPlayerTank(1, Position{
			X: rapid.Float64Range(0, ArenaWidth-CellSize).Draw(t, "x"),
			Y: rapid.Float64Range(0, ArenaHeight-CellSize).Draw(t, "y"),
		})
		tank.Move(rapid.SampledFrom(Cardinals[:]).Draw(t, "dir"), rapid.Float64Range(0, 10).Draw(t, "dt"))
		p := tank.Position()
		if p.X < 0 || p.Y < 0 || p.X > ArenaWidth-CellSize || p.Y > ArenaHeight-CellSize {
			t.Fatalf("tank left the arena: %v", p)
		}
	})
}
