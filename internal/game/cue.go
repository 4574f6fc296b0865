package game

// Cue is a named signal emitted by the simulation for presentation layers
// (sound, effects, statistics). The core never depends on how a cue is used.
type Cue int

const (
	CueNone Cue = iota
	CueShot
	CueBrickHit
	CueArmoredHit
	CueTankDestroyed
	CueBaseDestroyed
	CueTankFrozen
	CuePowerUpSpawned
	CuePowerUpCollected
	CuePlacementFailed
	CueLevelStarted
	CueLevelComplete
	CueGameOver
	CueVictory

	cueCount
)

var cueNames = [cueCount]string{
	CueNone:             "none",
	CueShot:             "shot",
	CueBrickHit:         "brick_hit",
	CueArmoredHit:       "armored_hit",
	CueTankDestroyed:    "tank_destroyed",
	CueBaseDestroyed:    "base_destroyed",
	CueTankFrozen:       "tank_frozen",
	CuePowerUpSpawned:   "powerup_spawned",
	CuePowerUpCollected: "powerup_collected",
	CuePlacementFailed:  "placement_failed",
	CueLevelStarted:     "level_started",
	CueLevelComplete:    "level_complete",
	CueGameOver:         "game_over",
	CueVictory:          "victory",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// AllCues lists every cue a sink can receive.
func AllCues() []Cue {
	out := make([]Cue, 0, cueCount-1)
	for c := CueShot; c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

// Event is one emitted cue with the context it happened in. Tick and Level
// are stamped by the Game; events raised directly on a bare Level carry 0.
type Event struct {
	Cue    Cue
	Tick   int
	Level  int
	Pos    Position
	Actor  string // tank label, block kind, or "--" for global events
	Detail string
}

// CueSink consumes events. Sinks run synchronously on the simulation
// goroutine and must not call back into the Game.
type CueSink interface {
	HandleCue(ev Event)
}

// CueSinkFunc adapts a plain function to CueSink.
type CueSinkFunc func(ev Event)

func (f CueSinkFunc) HandleCue(ev Event) { f(ev) }

// fanout forwards every event to each sink in order.
type fanout []CueSink

func (f fanout) HandleCue(ev Event) {
	for _, s := range f {
		s.HandleCue(ev)
	}
}
