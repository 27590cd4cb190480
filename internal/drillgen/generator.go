// Package drillgen cuts training drills out of historical games.
package drillgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/tactiz/internal/gamepool"
)

// Rand is the randomness a Generator draws from. *math/rand/v2.Rand
// satisfies it; seeding it makes generation reproducible.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Generator samples drills from a game pool. It holds only configuration
// and is safe for concurrent use as long as each goroutine has its own Rand.
type Generator struct {
	config Config
	log    *zap.Logger
}

// New creates a Generator with the given config.
func New(cfg Config) *Generator {
	return &Generator{config: cfg, log: zap.NewNop()}
}

// WithLogger sets the logger used for per-attempt debug output.
func (g *Generator) WithLogger(l *zap.Logger) *Generator {
	if l != nil {
		g.log = l
	}
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate picks a drill from pool according to mode. It returns a
// *GenerationFailure when the pool is empty or no candidate survives
// Config.MaxAttempts attempts.
func (g *Generator) Generate(rng Rand, pool []*gamepool.Game, mode Mode, opts Options) (*Drill, error) {
	if len(pool) == 0 {
		return nil, &GenerationFailure{Err: ErrEmptyPool}
	}
	if !mode.Valid() {
		return nil, &GenerationFailure{Err: fmt.Errorf("%w: %q", ErrUnknownMode, mode)}
	}

	rejections := make(map[string]int)
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		game := pool[rng.IntN(len(pool))]

		c, rej := g.candidate(rng, game, mode, opts)
		if rej == nil {
			rej = g.check(c)
		}
		if rej != nil {
			rejections[rej.Check]++
			g.log.Debug("candidate rejected",
				zap.Int("attempt", attempt),
				zap.String("game", game.ID),
				zap.String("check", rej.Check),
				zap.String("reason", rej.Message),
			)
			continue
		}

		d := g.drill(c)
		g.log.Debug("drill generated",
			zap.Int("attempt", attempt),
			zap.String("drill", d.ID),
			zap.String("game", game.ID),
			zap.String("mode", string(d.Mode)),
			zap.Int("ply", d.Ply),
		)
		return d, nil
	}

	return nil, &GenerationFailure{
		Attempts:   g.config.MaxAttempts,
		Rejections: rejections,
		Err:        ErrNoCandidate,
	}
}

// candidate replays game and cuts a candidate at the ply mode selects.
func (g *Generator) candidate(rng Rand, game *gamepool.Game, mode Mode, opts Options) (*Candidate, *CandidateRejected) {
	replay, err := game.Replay()
	if err != nil {
		return nil, reject("replay", "%v", err)
	}
	n := replay.Len()
	if need := max(g.config.MinPlies, g.config.SolutionPlies); n < need {
		return nil, reject("length", "%d plies, need %d", n, need)
	}

	resolved := mode
	if mode == ModeAny {
		resolved = g.pickMode(rng)
	}
	target, theme := g.target(rng, replay, resolved, opts)
	target = clamp(target, 0, n-g.config.SolutionPlies)

	ply := replay.Plies[target]
	end := min(target+g.config.SolutionPlies, n)
	solution := make([]string, 0, end-target)
	for _, p := range replay.Plies[target:end] {
		solution = append(solution, p.SAN)
	}

	return &Candidate{
		Game:      game,
		Replay:    replay,
		Requested: mode,
		Mode:      resolved,
		Theme:     theme,
		Ply:       target,
		Position:  ply.FENBefore,
		Placement: ply.Placement,
		Solution:  solution,
	}, nil
}

// target returns the ply index and theme for a concrete mode.
func (g *Generator) target(rng Rand, r *gamepool.Replay, mode Mode, opts Options) (int, string) {
	n := r.Len()
	switch mode {
	case ModeCriticalPosition:
		var critical []int
		for i := g.config.MinPlies; i < n-g.config.TailReserve; i++ {
			if r.Plies[i].IsTactical() {
				critical = append(critical, i)
			}
		}
		if len(critical) == 0 {
			g.log.Debug("no tactical ply, using midpoint", zap.Int("plies", n))
			return n / 2, ThemeFor(mode)
		}
		return critical[rng.IntN(len(critical))], ThemeFor(mode)

	case ModeStartFromMove:
		start := opts.StartMove
		if start == 0 {
			start = g.config.DefaultStartMove
		}
		return max((start-1)*2, 0), ThemeFor(mode)

	case ModeEndgameFinish:
		return max(n-g.config.EndgameOffset, 0), ThemeFor(mode)

	default: // ModeRandomMoment
		lo := g.config.MinPlies
		hi := max(lo, n-g.config.TailReserve)
		return lo + rng.IntN(hi-lo+1), ThemeFor(ModeRandomMoment)
	}
}

// pickMode draws a concrete mode from Config.ModeWeights.
func (g *Generator) pickMode(rng Rand) Mode {
	var total float64
	for _, w := range g.config.ModeWeights {
		total += w.Weight
	}
	if total <= 0 {
		return ModeRandomMoment
	}

	x := rng.Float64() * total
	for _, w := range g.config.ModeWeights {
		if x < w.Weight {
			return w.Mode
		}
		x -= w.Weight
	}
	return g.config.ModeWeights[len(g.config.ModeWeights)-1].Mode
}

// check runs the configured checks in order; the first failure wins.
func (g *Generator) check(c *Candidate) *CandidateRejected {
	for _, chk := range g.config.Checks {
		if rej := chk.Check(c); rej != nil {
			return rej
		}
	}
	return nil
}

func (g *Generator) drill(c *Candidate) *Drill {
	difficulty := clamp(g.config.BaseDifficulty, 1, 5)
	return &Drill{
		ID:           uuid.NewString(),
		SourceGameID: c.Game.ID,
		Mode:         c.Mode,
		Position:     c.Position,
		Theme:        c.Theme,
		Goal:         Goal(c.Position, c.Theme),
		Solution:     c.Solution,
		Difficulty:   difficulty,
		Explanation:  explanation(c),
		PlayedMove:   c.Solution[0],
		Ply:          c.Ply,
	}
}

// SideToMove returns "White" or "Black" from a FEN string.
func SideToMove(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 1 && fields[1] == "b" {
		return "Black"
	}
	return "White"
}

// Goal returns the default instruction shown with a drill.
func Goal(fen, theme string) string {
	side := SideToMove(fen)
	switch theme {
	case ThemeTactics:
		return side + " to move. Find the tactical shot."
	case ThemeOpening:
		return side + " to move. Continue the opening as it was played."
	case ThemeEndgame:
		return side + " to move. Bring the game home."
	default:
		return side + " to move. Find the move that keeps the initiative."
	}
}

func explanation(c *Candidate) string {
	var b strings.Builder
	if c.Game.White != "" || c.Game.Black != "" {
		fmt.Fprintf(&b, "%s vs %s", orUnknown(c.Game.White), orUnknown(c.Game.Black))
		if c.Game.Result != "" && c.Game.Result != "*" {
			fmt.Fprintf(&b, " (%s)", c.Game.Result)
		}
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "move %d: the game continued %s.", c.Ply/2+1, strings.Join(c.Solution, " "))
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
