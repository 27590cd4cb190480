package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List drills due for review, most overdue first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, s, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		due, err := e.DueDrills(cmd.Context())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due. Run: tactiz drill")
			return nil
		}
		if limit > 0 && len(due) > limit {
			due = due[:limit]
		}

		now := time.Now()
		fmt.Printf("%-36s  %-10s  %-18s  %-8s  %5s  %4s\n",
			"Drill", "Theme", "Mode", "Status", "Over", "Ease")
		fmt.Println(strings.Repeat("─", 92))
		for _, d := range due {
			fmt.Printf("%-36s  %-10s  %-18s  %-8s  %4.1fd  %4.2f\n",
				d.Drill.ID, d.Drill.Theme, d.Drill.Mode,
				d.Schedule.Status(now), d.Schedule.OverdueDays(now), d.Schedule.EaseFactor)
		}
		fmt.Printf("\n%d due\n", len(due))
		return nil
	},
}

func init() {
	dueCmd.Flags().Int("limit", 0, "Show at most this many drills")
}
