package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tactiz/internal/gamepool"
)

var importCmd = &cobra.Command{
	Use:   "import <pgn-file>...",
	Short: "Import games from PGN files into the drill pool",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		type parsed struct {
			games []*gamepool.Game
			bad   []*gamepool.ParseError
		}
		results := make([]parsed, len(args))

		eg, _ := errgroup.WithContext(ctx)
		eg.SetLimit(runtime.GOMAXPROCS(0))
		for i, path := range args {
			eg.Go(func() error {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				games, bad, err := gamepool.ParsePGN(f)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = parsed{games: games, bad: bad}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		e, s, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var total, skipped, added int
		for i, r := range results {
			for _, pe := range r.bad {
				logger.Warn("skipping unparseable game",
					zap.String("file", args[i]),
					zap.Int("index", pe.Index),
					zap.Error(pe.Err),
				)
			}
			n, err := e.Import(ctx, r.games)
			if err != nil {
				return err
			}
			total += len(r.games)
			skipped += len(r.bad)
			added += n
		}

		fmt.Printf("Imported %d new games (%d parsed, %d already known, %d skipped)\n",
			added, total, total-added, skipped)
		return nil
	},
}
