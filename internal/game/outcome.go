package game

// MatchOutcome is the coarse result of a match.
type MatchOutcome int

const (
	OutcomeInconclusive MatchOutcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// MatchOutcomeReason explains an outcome with the numbers behind it.
type MatchOutcomeReason struct {
	Outcome          MatchOutcome
	State            State
	Level            int
	LevelsCleared    int
	EnemiesDestroyed int
	EnemiesLeft      int
	PlayersAlive     int
	PlayersTotal     int
	Description      string
}

// DetermineMatchOutcome classifies where a match stands. stats may be nil.
func DetermineMatchOutcome(g *Game, stats *MatchStats) MatchOutcomeReason {
	r := MatchOutcomeReason{
		State:        g.State(),
		Level:        g.LevelNumber(),
		PlayersTotal: g.PlayerCount(),
		PlayersAlive: len(g.livePlayers()),
	}
	if lvl := g.Level(); lvl != nil {
		for _, t := range lvl.Enemies() {
			if t.IsAlive() {
				r.EnemiesLeft++
			}
		}
	}
	if stats != nil {
		r.LevelsCleared = stats.LevelsCleared
		r.EnemiesDestroyed = stats.EnemiesDestroyed()
	}

	switch g.State() {
	case StateVictory:
		r.Outcome = OutcomeVictory
		r.Description = "campaign_cleared"
		if g.LoadErr() != nil {
			r.Description = "victory_by_unloadable_level"
		}
	case StateGameOver:
		r.Outcome = OutcomeDefeat
		if g.Level() != nil && g.Level().BaseDestroyed() {
			r.Description = "defeat_base_destroyed"
		} else {
			r.Description = "defeat_players_destroyed"
		}
	case StateLevelComplete:
		r.Description = "level_cleared_awaiting_advance"
	default:
		r.Description = "in_progress"
	}
	return r
}
