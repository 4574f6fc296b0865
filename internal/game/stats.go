package game

import (
	"fmt"
	"sort"
	"strings"
)

// MatchStats tallies the cue stream of one match. Attach it with
// WithCueSink.
type MatchStats struct {
	PlayerShots       int
	EnemyShots        int
	BrickHits         int
	ArmoredHits       int
	Freezes           int
	Kills             map[string]int // destroyed enemies by kind
	PlayersLost       int
	PowerUpsSpawned   int
	PowerUpsCollected map[string]int // by power-up kind
	PlacementFailures int
	LevelsStarted     int
	LevelsCleared     int
	BaseLost          bool
	FirstKillTick     int
	LastTick          int
}

// NewMatchStats returns zeroed stats.
func NewMatchStats() *MatchStats {
	return &MatchStats{
		Kills:             map[string]int{},
		PowerUpsCollected: map[string]int{},
		FirstKillTick:     -1,
	}
}

// HandleCue implements CueSink.
func (ms *MatchStats) HandleCue(ev Event) {
	ms.LastTick = ev.Tick
	switch ev.Cue {
	case CueShot:
		if strings.HasPrefix(ev.Actor, "P") {
			ms.PlayerShots++
		} else {
			ms.EnemyShots++
		}
	case CueBrickHit:
		ms.BrickHits++
	case CueArmoredHit:
		ms.ArmoredHits++
	case CueTankFrozen:
		ms.Freezes++
	case CueTankDestroyed:
		if ev.Detail == TankPlayer.String() {
			ms.PlayersLost++
			return
		}
		ms.Kills[ev.Detail]++
		if ms.FirstKillTick < 0 {
			ms.FirstKillTick = ev.Tick
		}
	case CueBaseDestroyed:
		ms.BaseLost = true
	case CuePowerUpSpawned:
		ms.PowerUpsSpawned++
	case CuePowerUpCollected:
		ms.PowerUpsCollected[ev.Detail]++
	case CuePlacementFailed:
		ms.PlacementFailures++
	case CueLevelStarted:
		ms.LevelsStarted++
	case CueLevelComplete:
		ms.LevelsCleared++
	}
}

// EnemiesDestroyed is the total of Kills.
func (ms *MatchStats) EnemiesDestroyed() int {
	n := 0
	for _, v := range ms.Kills {
		n += v
	}
	return n
}

// Collected is the total of PowerUpsCollected.
func (ms *MatchStats) Collected() int {
	n := 0
	for _, v := range ms.PowerUpsCollected {
		n += v
	}
	return n
}

// Format renders the stats as key=value lines.
func (ms *MatchStats) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "shots: player=%d enemy=%d\n", ms.PlayerShots, ms.EnemyShots)
	fmt.Fprintf(&sb, "hits: brick=%d armored=%d frozen=%d\n", ms.BrickHits, ms.ArmoredHits, ms.Freezes)
	fmt.Fprintf(&sb, "kills: total=%d %s first_kill_tick=%d players_lost=%d base_lost=%t\n",
		ms.EnemiesDestroyed(), joinCounts(ms.Kills), ms.FirstKillTick, ms.PlayersLost, ms.BaseLost)
	fmt.Fprintf(&sb, "powerups: spawned=%d collected=%d %s placement_failed=%d\n",
		ms.PowerUpsSpawned, ms.Collected(), joinCounts(ms.PowerUpsCollected), ms.PlacementFailures)
	fmt.Fprintf(&sb, "levels: started=%d cleared=%d\n", ms.LevelsStarted, ms.LevelsCleared)
	return sb.String()
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "[]"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
