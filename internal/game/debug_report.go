package game

import (
	"fmt"
	"strings"
)

// DebugReport renders the last lastTicks ticks of a match as plain text:
// a header, every tank's current status, and the log entries in range.
// sl may be nil.
func DebugReport(g *Game, sl *SimLog, seed int64, lastTicks int) string {
	if g == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}

	toTick := g.TickCount()
	fromTick := max(toTick-lastTicks+1, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Battle Arena debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] ticks=%d\n", seed, fromTick, toTick, toTick-fromTick+1)
	fmt.Fprintf(&b, "state=%s level=%d (%s) players=%d\n\n", g.State(), g.LevelNumber(), g.LevelName(), g.PlayerCount())

	lvl := g.Level()
	if lvl == nil {
		b.WriteString("(no level loaded)\n")
		return b.String()
	}

	b.WriteString("== tanks ==\n")
	for _, t := range lvl.Tanks() {
		fmt.Fprintf(&b, "%-4s %-8s pos=(%.0f,%.0f) facing=%-5s health=%d%s\n",
			t.Label(), t.Kind(), t.Position().X, t.Position().Y, t.Facing(), t.Health(), tankFlags(t))
		if br := t.Brain(); br != nil {
			fmt.Fprintf(&b, "     brain: dir=%s cooldown=%.2f stuck=%.2f\n", br.Direction(), br.Cooldown(), br.StuckFor())
		}
	}

	fmt.Fprintf(&b, "\n== field ==\nblocks=%d bullets=%d powerups=%d rolls=%d base=%s\n",
		len(lvl.Blocks()), len(lvl.Bullets()), len(lvl.PowerUps()), lvl.PowerUpRolls(), baseStatus(lvl))
	for _, p := range lvl.PowerUps() {
		fmt.Fprintf(&b, "  %s at (%.0f,%.0f)\n", p.Kind(), p.Position().X, p.Position().Y)
	}

	if sl != nil {
		b.WriteString("\n== log ==\n")
		entries := sl.FormatRange(fromTick, toTick)
		if entries == "" {
			b.WriteString("(no entries in range)\n")
		} else {
			b.WriteString(entries)
		}
	}
	return b.String()
}

func tankFlags(t *Tank) string {
	var flags []string
	if t.IsFrozen() {
		flags = append(flags, fmt.Sprintf("frozen=%.1fs", t.FrozenFor()))
	}
	if t.IsInvulnerable() {
		flags = append(flags, fmt.Sprintf("helmet=%.1fs", t.InvulnerableFor()))
	}
	if t.HasInstaKill() {
		flags = append(flags, "star")
	}
	if t.HasBulletInFlight() {
		flags = append(flags, "firing")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, " ") + "]"
}

func baseStatus(l *Level) string {
	switch {
	case l.BaseDestroyed():
		return "destroyed"
	case l.FindBase() != nil:
		return "standing"
	default:
		return "none"
	}
}
