package drillgen

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tactiz/internal/gamepool"
)

// GenerateBatch produces n drills concurrently. Worker i draws from its own
// PCG stream seeded with (seed, i), so a batch is reproducible for a given
// seed. The first failure cancels the remaining workers.
func (g *Generator) GenerateBatch(ctx context.Context, seed uint64, pool []*gamepool.Game, mode Mode, opts Options, n int) ([]*Drill, error) {
	drills := make([]*Drill, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			d, err := g.Generate(rng, pool, mode, opts)
			if err != nil {
				return err
			}
			drills[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return drills, nil
}
