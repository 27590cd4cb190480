package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/tactiz/internal/drillgen"
	"github.com/abhisek/tactiz/internal/training"
	"github.com/abhisek/tactiz/internal/ui/theme"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Generate new drills from the game pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		startMove, _ := cmd.Flags().GetInt("start-move")
		seed, _ := cmd.Flags().GetUint64("seed")
		count, _ := cmd.Flags().GetInt("count")

		mode, err := drillgen.ParseMode(modeName)
		if err != nil {
			return err
		}
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}

		e, s, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		opts := drillgen.Options{StartMove: startMove}

		var prepared []*training.Prepared
		if count == 1 {
			p, err := e.NextDrill(ctx, rand.New(rand.NewPCG(seed, 0)), mode, opts)
			if err != nil {
				return explainDrillError(err)
			}
			prepared = append(prepared, p)
		} else {
			prepared, err = e.NextDrills(ctx, seed, mode, opts, count)
			if err != nil {
				return explainDrillError(err)
			}
		}

		for _, p := range prepared {
			fmt.Println(renderDrill(viewOf(p.Drill), false))
		}
		fmt.Println(theme.Hint.Render("Record your result with: tactiz attempt <drill-id> --correct --duration 12s"))
		return nil
	},
}

func explainDrillError(err error) error {
	if errors.Is(err, drillgen.ErrEmptyPool) {
		return fmt.Errorf("no games imported yet; run: tactiz import <games.pgn>")
	}
	return err
}

func init() {
	drillCmd.Flags().String("mode", string(drillgen.ModeAny), "Drill mode: random_moment, critical_position, start_from_move, endgame_finish or any")
	drillCmd.Flags().Int("start-move", 0, "Move number for start_from_move (default from config)")
	drillCmd.Flags().Uint64("seed", 0, "Random seed for reproducible drills")
	drillCmd.Flags().Int("count", 1, "Number of drills to generate")
}
