package game

import (
	"math"
	"math/rand"
)

// Autopilot plays the player slots through the public command surface. It
// paths toward the nearest enemy over the cell grid, blasts brick in its
// way, and shoots at any enemy lined up on its row or column. When no path
// exists, or it is stuck against another tank, it wanders like an enemy.
// Headless runs use it to exercise whole matches.
type Autopilot struct {
	rng    *rand.Rand
	dir    [2]Direction
	wander [2]float64
	last   [2]Position
}

// NewAutopilot creates an autopilot with its own generator so that it does
// not perturb the game's random sequence.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- gameplay randomness
}

// Step issues commands for every living player. Call it before Game.Tick.
func (a *Autopilot) Step(g *Game, dt float64) {
	if g.State() != StateRunning {
		return
	}
	for slot := 1; slot <= g.PlayerCount(); slot++ {
		p := g.Player(slot)
		if p == nil || !p.IsAlive() {
			continue
		}
		i := slot - 1
		a.wander[i] -= dt
		blocked := a.dir[i] != DirNone && p.Position() == a.last[i]
		if a.wander[i] <= 0 || blocked {
			dir, brick := planStep(g.Level(), p)
			if dir == DirNone || (blocked && a.rng.Float64() < 0.3) {
				a.dir[i] = Cardinals[a.rng.Intn(len(Cardinals))]
				a.wander[i] = 0.5 + a.rng.Float64()*1.5
			} else {
				a.dir[i] = dir
				a.wander[i] = autopilotReplan
				if brick && safeToFire(g.Level(), p, dir) {
					g.PlayerShoot(slot, dir)
				}
			}
		}
		a.last[i] = p.Position()
		g.HoldDirection(slot, a.dir[i])

		if dir := alignedEnemy(g.Level(), p); dir != DirNone {
			g.PlayerShoot(slot, dir)
		} else if a.rng.Float64() < 0.02 && safeToFire(g.Level(), p, DirNone) {
			g.PlayerShoot(slot, DirNone)
		}
	}
}

// autopilotReplan is how long a planned heading is held before replanning.
const autopilotReplan = 0.4

// planStep returns the heading toward the next cell on the path to the
// nearest living enemy, and whether that cell is brick to shoot through.
func planStep(lvl *Level, p *Tank) (Direction, bool) {
	if lvl == nil {
		return DirNone, false
	}
	var target *Tank
	bestDist := math.Inf(1)
	for _, t := range lvl.tanks {
		if !t.IsEnemy() || !t.IsAlive() {
			continue
		}
		if d := math.Abs(t.pos.X-p.pos.X) + math.Abs(t.pos.Y-p.pos.Y); d < bestDist {
			target, bestDist = t, d
		}
	}
	if target == nil {
		return DirNone, false
	}

	grid := NewNavGrid(lvl)
	path := grid.FindPath(p.pos, target.pos)
	if len(path) < 2 {
		return DirNone, false
	}
	next := CellAnchor(path[1][0], path[1][1])
	dx, dy := next.X-p.pos.X, next.Y-p.pos.Y
	var dir Direction
	switch {
	case math.Abs(dx) >= math.Abs(dy) && dx > 0:
		dir = DirRight
	case math.Abs(dx) >= math.Abs(dy):
		dir = DirLeft
	case dy > 0:
		dir = DirDown
	default:
		dir = DirUp
	}
	return dir, grid.IsBrick(path[1][0], path[1][1])
}

// alignedEnemy returns the direction of the nearest living enemy sharing
// p's row or column with a clear line of fire, or DirNone.
func alignedEnemy(lvl *Level, p *Tank) Direction {
	if lvl == nil {
		return DirNone
	}
	best, bestDist := DirNone, math.Inf(1)
	half := float64(CellSize) / 2
	for _, t := range lvl.tanks {
		if !t.IsEnemy() || !t.IsAlive() || !HasLineOfFire(lvl, p.pos, t.pos) {
			continue
		}
		dx := t.pos.X - p.pos.X
		dy := t.pos.Y - p.pos.Y
		switch {
		case math.Abs(dx) < half && math.Abs(dy) < bestDist:
			bestDist = math.Abs(dy)
			best = DirDown
			if dy < 0 {
				best = DirUp
			}
		case math.Abs(dy) < half && math.Abs(dx) < bestDist:
			bestDist = math.Abs(dx)
			best = DirRight
			if dx < 0 {
				best = DirLeft
			}
		}
	}
	return best
}
