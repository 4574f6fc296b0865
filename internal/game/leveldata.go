package game

import (
	"fmt"
	"math/rand"
)

// EnemySpec places one AI tank.
type EnemySpec struct {
	Kind TankKind
	Pos  Position
}

// ObjectSpec places one terrain block.
type ObjectSpec struct {
	Kind BlockKind
	Pos  Position
}

// LevelSpec is a parsed level description. Positions are top-left anchors,
// already recentred from whatever the source format uses.
type LevelSpec struct {
	Name    string
	Spawns  map[int]Position // by player slot
	Enemies []EnemySpec
	Objects []ObjectSpec
}

// HasBase reports whether the description contains a base block.
func (s LevelSpec) HasBase() bool {
	for _, o := range s.Objects {
		if o.Kind == BlockBase {
			return true
		}
	}
	return false
}

// IsEmpty reports a description with nothing to fight for: no enemies and
// no base. Such a level ends the campaign.
func (s LevelSpec) IsEmpty() bool {
	return len(s.Enemies) == 0 && !s.HasBase()
}

// DefaultSpawn is where a player slot enters when the level declares none.
func DefaultSpawn(slot int) Position {
	if slot == 2 {
		return Position{X: 550, Y: 500}
	}
	return Position{X: 250, Y: 500}
}

// BuildLevel instantiates a description. Player tanks are not created here.
func BuildLevel(spec LevelSpec, rng *rand.Rand, rules Rules) *Level {
	l := NewLevel(rng, rules)
	for slot, p := range spec.Spawns {
		l.SetSpawn(slot, p)
	}
	for _, o := range spec.Objects {
		l.AddBlock(NewBlock(o.Kind, o.Pos))
	}
	for i, e := range spec.Enemies {
		l.AddTank(NewEnemyTank(i, e.Kind, e.Pos, rng))
	}
	return l
}

// LevelSource supplies numbered level descriptions, starting at 1.
type LevelSource interface {
	Exists(n int) bool
	Load(n int) (LevelSpec, error)
}

// LevelList is an in-memory LevelSource; entry 0 is level 1.
type LevelList []LevelSpec

func (ll LevelList) Exists(n int) bool { return n >= 1 && n <= len(ll) }

func (ll LevelList) Load(n int) (LevelSpec, error) {
	if !ll.Exists(n) {
		return LevelSpec{}, fmt.Errorf("level %d: not in list of %d", n, len(ll))
	}
	return ll[n-1], nil
}
