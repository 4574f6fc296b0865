package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Level    int
	Actor    string  // tank label e.g. "P1", "E3", a block kind, or "--" for global events
	Category string  // cue, state, move, status
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] L1 E3   cue       tank_destroyed   armored
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] L%d %-4s %-9s %-16s %s",
		e.Tick, e.Level, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation. It is a
// CueSink, so attaching it to a Game records every cue. It is unbounded and
// machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// status entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// HandleCue records a cue under the "cue" category.
func (sl *SimLog) HandleCue(ev Event) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     ev.Tick,
		Level:    ev.Level,
		Actor:    ev.Actor,
		Category: "cue",
		Key:      ev.Cue.String(),
		Value:    ev.Detail,
	})
}

// Add records a new entry.
func (sl *SimLog) Add(tick, level int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Level:    level,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick, level int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, level, actor, category, key, value, numVal)
}

// Verbose reports whether per-tick entries are being recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterCue returns the entries recorded for one cue.
func (sl *SimLog) FilterCue(c Cue) []SimLogEntry {
	return sl.Filter("cue", c.String())
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// CountCue returns how many times a cue was recorded.
func (sl *SimLog) CountCue(c Cue) int {
	return len(sl.FilterCue(c))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the game state.
func (sl *SimLog) Summary(g *Game) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", g.TickCount())
	fmt.Fprintf(&sb, "State: %s  level=%d  elapsed=%.1fs\n", g.State(), g.LevelNumber(), g.Elapsed())

	for slot := 1; slot <= g.PlayerCount(); slot++ {
		p := g.Player(slot)
		if p == nil {
			continue
		}
		fmt.Fprintf(&sb, "%s: health=%d pos=(%.0f,%.0f) facing=%s frozen=%.1fs invuln=%.1fs instakill=%t\n",
			p.Label(), p.Health(), p.pos.X, p.pos.Y, p.facing, p.frozen, p.invulnerable, p.instaKill)
	}

	if lvl := g.Level(); lvl != nil {
		byKind := map[TankKind]int{}
		for _, t := range lvl.Enemies() {
			byKind[t.kind]++
		}
		sb.WriteString("Enemies: ")
		for _, k := range EnemyKinds {
			if n := byKind[k]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", k, n)
			}
		}
		if len(byKind) == 0 {
			sb.WriteString("none")
		}
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "Field: blocks=%d bullets=%d powerups=%d\n",
			len(lvl.blocks), len(lvl.bullets), len(lvl.powerUps))
	}

	fmt.Fprintf(&sb, "Cues: shots=%d destroyed=%d armored=%d frozen=%d powerups=%d/%d\n",
		sl.CountCue(CueShot), sl.CountCue(CueTankDestroyed), sl.CountCue(CueArmoredHit),
		sl.CountCue(CueTankFrozen), sl.CountCue(CuePowerUpCollected), sl.CountCue(CuePowerUpSpawned))
	return sb.String()
}
