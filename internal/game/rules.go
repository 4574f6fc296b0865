package game

// Rules are the tunable level policies. Entity constants (speeds, health,
// effect durations) live with the entities themselves.
type Rules struct {
	// PowerUpChance is the probability that a destroyed enemy drops a power-up.
	PowerUpChance float64
	// PlacementAttempts bounds the random search for a free power-up spot.
	PlacementAttempts int
	// LeaveWrecks places an impassable wreck where a tank is destroyed.
	LeaveWrecks bool
}

// DefaultRules returns the classic arena rules.
func DefaultRules() Rules {
	return Rules{
		PowerUpChance:     0.2,
		PlacementAttempts: 256,
		LeaveWrecks:       true,
	}
}

// normalized fills zero values with defaults so a partially specified
// Rules value is always usable.
func (r Rules) normalized() Rules {
	if r.PlacementAttempts <= 0 {
		r.PlacementAttempts = DefaultRules().PlacementAttempts
	}
	if r.PowerUpChance < 0 {
		r.PowerUpChance = 0
	}
	if r.PowerUpChance > 1 {
		r.PowerUpChance = 1
	}
	return r
}
