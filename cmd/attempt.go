package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tactiz/internal/training"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt <drill-id>",
	Short: "Record your result on a drill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, _ := cmd.Flags().GetBool("correct")
		duration, _ := cmd.Flags().GetDuration("duration")
		retries, _ := cmd.Flags().GetInt("retries")
		abandon, _ := cmd.Flags().GetBool("abandon")

		if abandon && (correct || retries > 0) {
			return fmt.Errorf("--abandon cannot be combined with --correct or --retries")
		}
		if retries < 0 || duration < 0 {
			return fmt.Errorf("--duration and --retries must not be negative")
		}

		e, s, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := e.RecordAttempt(cmd.Context(), args[0], training.Attempt{
			Correct:   correct,
			Duration:  duration,
			Retries:   retries,
			Abandoned: abandon,
		})
		if err != nil {
			return err
		}
		fmt.Print(renderResult(res))
		return nil
	},
}

func init() {
	attemptCmd.Flags().Bool("correct", false, "You found the played move")
	attemptCmd.Flags().Duration("duration", 0, "Time taken, e.g. 12s")
	attemptCmd.Flags().Int("retries", 0, "Wrong tries before the final answer")
	attemptCmd.Flags().Bool("abandon", false, "You gave up on the drill")
}
