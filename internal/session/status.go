package session

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

// StatusLines summarises the match for a HUD: level, players, enemies
// left, and a banner for any state other than running.
func (s *Session) StatusLines() []string {
	if s.game == nil {
		return nil
	}
	g := s.game
	lines := []string{fmt.Sprintf("LEVEL %d  %s", g.LevelNumber(), g.LevelName())}

	for slot := 1; slot <= g.PlayerCount(); slot++ {
		p := g.Player(slot)
		if p == nil || !p.IsAlive() {
			lines = append(lines, fmt.Sprintf("P%d  DOWN", slot))
			continue
		}
		var flags []string
		if p.IsFrozen() {
			flags = append(flags, "FROZEN")
		}
		if p.IsInvulnerable() {
			flags = append(flags, "HELMET")
		}
		if p.HasInstaKill() {
			flags = append(flags, "STAR")
		}
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("P%d  HP %d  %s", slot, p.Health(), strings.Join(flags, " "))))
	}

	if lvl := g.Level(); lvl != nil {
		left := 0
		for _, e := range lvl.Enemies() {
			if e.IsAlive() {
				left++
			}
		}
		lines = append(lines, fmt.Sprintf("ENEMIES %d  KILLS %d", left, s.stats.EnemiesDestroyed()))
	}

	if b := s.Banner(); b != "" {
		lines = append(lines, b)
	}
	return lines
}

// Banner is the centred message for the current state, empty while
// play is running normally.
func (s *Session) Banner() string {
	if s.game == nil {
		return ""
	}
	switch s.game.State() {
	case game.StateLevelComplete:
		return "LEVEL COMPLETE  N=next"
	case game.StateGameOver:
		return "GAME OVER  R=restart"
	case game.StateVictory:
		return "VICTORY  R=restart"
	}
	if s.paused {
		return "PAUSED"
	}
	return ""
}
