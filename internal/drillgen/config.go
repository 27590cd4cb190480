package drillgen

// ModeWeight is the relative chance of a concrete mode under ModeAny.
type ModeWeight struct {
	Mode   Mode    `yaml:"mode"`
	Weight float64 `yaml:"weight"`
}

// Config controls the behavior of the Generator.
type Config struct {
	// MaxAttempts bounds the candidate loop of a single Generate call.
	MaxAttempts int `yaml:"max_attempts"`

	// MinPlies is the shortest game a drill can be cut from, and the
	// earliest ply random and critical modes consider.
	MinPlies int `yaml:"min_plies"`

	// TailReserve keeps random and critical targets this many plies away
	// from the end of the game.
	TailReserve int `yaml:"tail_reserve"`

	// SolutionPlies is the number of played moves kept as the solution.
	SolutionPlies int `yaml:"solution_plies"`

	// EndgameOffset is how far from the end ModeEndgameFinish starts.
	EndgameOffset int `yaml:"endgame_offset"`

	// DefaultStartMove is used when Options.StartMove is unset.
	DefaultStartMove int `yaml:"default_start_move"`

	// ModeWeights is the distribution ModeAny draws from, in order.
	ModeWeights []ModeWeight `yaml:"mode_weights"`

	// BaseDifficulty is assigned to every generated drill.
	BaseDifficulty int `yaml:"base_difficulty"`

	// Checks is the ordered list of checks run on every candidate. The
	// first failure rejects it.
	Checks []Check `yaml:"-"`
}

// DefaultConfig returns a Config with the standard check chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:      50,
		MinPlies:         12,
		TailReserve:      8,
		SolutionPlies:    6,
		EndgameOffset:    20,
		DefaultStartMove: 10,
		ModeWeights: []ModeWeight{
			{Mode: ModeCriticalPosition, Weight: 0.40},
			{Mode: ModeRandomMoment, Weight: 0.25},
			{Mode: ModeStartFromMove, Weight: 0.20},
			{Mode: ModeEndgameFinish, Weight: 0.15},
		},
		BaseDifficulty: 3,
		Checks:         DefaultChecks(),
	}
}

// DefaultChecks returns the standard candidate check chain.
func DefaultChecks() []Check {
	return []Check{
		&StartPositionCheck{},
		&PositionCheck{},
		&SolutionCheck{},
	}
}
