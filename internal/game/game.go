package game

import (
	"math/rand"
)

// State is the top-level match state.
type State int

const (
	StateRunning State = iota
	StateLevelComplete
	StateGameOver
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a new Game can leave this state.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateVictory
}

// Game runs a campaign of levels for one or two players. It is owned by a
// single goroutine; nothing in it is safe for concurrent use.
type Game struct {
	source  LevelSource
	rules   Rules
	rng     *rand.Rand
	sinks   fanout
	players int

	level     *Level
	levelNum  int
	levelName string
	tanks     [2]*Tank     // by slot-1
	held      [2]Direction // movement intents by slot-1
	state     State
	loadErr   error

	tick    int
	elapsed float64
}

// Option configures a Game.
type Option func(*Game)

// WithSeed makes every random draw reproducible.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithRules overrides the level policies.
func WithRules(r Rules) Option {
	return func(g *Game) { g.rules = r }
}

// WithPlayers selects one- or two-player mode.
func WithPlayers(n int) Option {
	return func(g *Game) {
		if n == 2 {
			g.players = 2
		} else {
			g.players = 1
		}
	}
}

// WithCueSink adds a consumer of the cue stream. Sinks are called in the
// order they were added.
func WithCueSink(s CueSink) Option {
	return func(g *Game) {
		if s != nil {
			g.sinks = append(g.sinks, s)
		}
	}
}

// New starts a campaign at level 1. A source with no playable first level
// yields a Game already in StateVictory.
func New(source LevelSource, opts ...Option) *Game {
	g := &Game{
		source:  source,
		rules:   DefaultRules(),
		players: 1,
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay randomness
	}
	g.rules = g.rules.normalized()
	g.startLevel(1)
	return g
}

func (g *Game) emit(c Cue, pos Position, actor, detail string) {
	g.stamp(Event{Cue: c, Pos: pos, Actor: actor, Detail: detail})
}

// stamp adds tick and level context to a cue and fans it out.
func (g *Game) stamp(ev Event) {
	ev.Tick = g.tick
	ev.Level = g.levelNum
	g.sinks.HandleCue(ev)
}

// startLevel loads level n and spawns fresh player tanks. A missing,
// unreadable or empty level ends the campaign in victory.
func (g *Game) startLevel(n int) {
	if g.source == nil || !g.source.Exists(n) {
		g.finish(StateVictory, "no level", n)
		return
	}
	spec, err := g.source.Load(n)
	if err != nil {
		g.loadErr = err
		g.finish(StateVictory, err.Error(), n)
		return
	}
	if spec.IsEmpty() {
		g.finish(StateVictory, "empty level", n)
		return
	}

	lvl := BuildLevel(spec, g.rng, g.rules)
	lvl.SetCueSink(CueSinkFunc(g.stamp))
	g.level = lvl
	g.levelNum = n
	g.levelName = spec.Name
	g.held = [2]Direction{}
	g.tanks = [2]*Tank{}
	for slot := 1; slot <= g.players; slot++ {
		pos, ok := lvl.Spawn(slot)
		if !ok {
			pos = DefaultSpawn(slot)
		}
		p := NewPlayerTank(slot, pos)
		g.tanks[slot-1] = p
		lvl.AddTank(p)
	}
	g.state = StateRunning
	g.emit(CueLevelStarted, Position{}, "--", spec.Name)
}

func (g *Game) finish(s State, detail string, n int) {
	g.state = s
	g.held = [2]Direction{}
	cue := CueVictory
	if s == StateGameOver {
		cue = CueGameOver
	}
	ev := Event{Cue: cue, Actor: "--", Detail: detail}
	ev.Tick = g.tick
	ev.Level = n
	g.sinks.HandleCue(ev)
}

// --- Commands ---

// MoveTank moves any tank of the current level. Nil, dead, or frozen
// tanks and a stopped game make it a no-op.
func (g *Game) MoveTank(t *Tank, dir Direction, dt float64) {
	if g.state != StateRunning || t == nil || !t.IsAlive() {
		return
	}
	t.Move(dir, dt)
}

// HoldDirection records a held movement key for a player slot.
func (g *Game) HoldDirection(slot int, dir Direction) {
	if slot < 1 || slot > 2 {
		return
	}
	g.held[slot-1] = dir
}

// ReleaseDirection clears a slot's movement intent.
func (g *Game) ReleaseDirection(slot int) {
	if slot < 1 || slot > 2 {
		return
	}
	g.held[slot-1] = DirNone
	if p := g.Player(slot); p != nil {
		p.SetMoving(false)
	}
}

// Held returns the movement intent of a slot.
func (g *Game) Held(slot int) Direction {
	if slot < 1 || slot > 2 {
		return DirNone
	}
	return g.held[slot-1]
}

// AdvanceMovement applies held movement intents for dt seconds.
func (g *Game) AdvanceMovement(dt float64) {
	for slot := 1; slot <= 2; slot++ {
		if dir := g.held[slot-1]; dir != DirNone {
			g.MoveTank(g.Player(slot), dir, dt)
		}
	}
}

// PlayerShoot fires for a player slot. DirNone fires along the tank's
// facing. A second bullet while one is in flight is ignored.
func (g *Game) PlayerShoot(slot int, dir Direction) {
	if g.state != StateRunning {
		return
	}
	p := g.Player(slot)
	if p == nil || !p.IsAlive() || p.HasBulletInFlight() {
		return
	}
	g.fire(p, dir)
}

func (g *Game) fire(t *Tank, dir Direction) {
	b := t.Shoot(dir)
	t.MarkBulletInFlight()
	g.level.AddBullet(b)
	g.emit(CueShot, b.Position(), t.label, b.Direction().String())
}

// Tick applies held movement then advances the simulation.
func (g *Game) Tick(dt float64) {
	g.AdvanceMovement(dt)
	g.Update(dt)
}

// Update advances the running level by dt seconds: level entities, the
// player collision pass, enemy fire, then the state check.
func (g *Game) Update(dt float64) {
	if g.state != StateRunning {
		return
	}
	g.tick++
	g.elapsed += dt

	g.level.Update(dt)
	g.resolveCollisions()
	g.enemiesFire()
	g.evaluate()

	for _, t := range g.level.tanks {
		t.settle()
	}
}

func (g *Game) resolveCollisions() {
	lvl := g.level
	for _, t := range lvl.tanks {
		if !t.IsAlive() {
			continue
		}
		for _, b := range lvl.blocks {
			if t.CollideBlock(b) {
				break
			}
		}
	}

	for _, p := range g.livePlayers() {
		for _, o := range lvl.tanks {
			if p.CollideTank(o) {
				break
			}
		}
	}

	pickups := append([]*PowerUp(nil), lvl.powerUps...)
	for _, pu := range pickups {
		for _, p := range g.livePlayers() {
			if !p.Bounds().Intersects(pu.Bounds()) {
				continue
			}
			g.applyPowerUp(p, pu)
			lvl.RemovePowerUp(pu)
			g.emit(CuePowerUpCollected, pu.pos, p.label, pu.kind.String())
			break
		}
	}
}

func (g *Game) applyPowerUp(p *Tank, pu *PowerUp) {
	switch pu.kind {
	case PowerUpGrenade:
		for _, t := range g.level.tanks {
			if t.IsEnemy() && t.IsAlive() {
				t.Kill()
			}
		}
	case PowerUpHelmet:
		p.GrantInvulnerability()
	case PowerUpStar:
		p.GrantInstaKill()
	case PowerUpShovel:
		// collected, no effect
	}
}

func (g *Game) enemiesFire() {
	for _, t := range g.level.tanks {
		if t.brain == nil || !t.IsAlive() || !t.brain.CanFire() || t.HasBulletInFlight() {
			continue
		}
		g.fire(t, DirNone)
		t.brain.ResetCooldown()
	}
}

func (g *Game) evaluate() {
	// game over is terminal and wins over a level cleared in the same tick
	switch {
	case g.level.BaseDestroyed():
		g.finish(StateGameOver, "base destroyed", g.levelNum)
	case len(g.livePlayers()) == 0:
		g.finish(StateGameOver, "players destroyed", g.levelNum)
	case g.level.IsComplete():
		g.state = StateLevelComplete
		g.emit(CueLevelComplete, Position{}, "--", "")
	}
}

// AdvanceLevel moves to the next level. It is ignored once the campaign
// has ended.
func (g *Game) AdvanceLevel() {
	if g.state.Terminal() {
		return
	}
	g.startLevel(g.levelNum + 1)
}

// --- Accessors ---

func (g *Game) State() State        { return g.state }
func (g *Game) LevelNumber() int    { return g.levelNum }
func (g *Game) LevelName() string   { return g.levelName }
func (g *Game) Level() *Level       { return g.level }
func (g *Game) TickCount() int      { return g.tick }
func (g *Game) Elapsed() float64    { return g.elapsed }
func (g *Game) PlayerCount() int    { return g.players }
func (g *Game) Rules() Rules        { return g.rules }
func (g *Game) LoadErr() error      { return g.loadErr }
func (g *Game) Rand() *rand.Rand    { return g.rng }
func (g *Game) TwoPlayerMode() bool { return g.players == 2 }

// Player returns the tank for slot 1 or 2, or nil.
func (g *Game) Player(slot int) *Tank {
	if slot < 1 || slot > 2 {
		return nil
	}
	return g.tanks[slot-1]
}

func (g *Game) livePlayers() []*Tank {
	var out []*Tank
	for _, p := range g.tanks {
		if p != nil && p.IsAlive() {
			out = append(out, p)
		}
	}
	return out
}
