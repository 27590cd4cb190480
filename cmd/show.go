package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <drill-id>",
	Short: "Show a stored drill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reveal, _ := cmd.Flags().GetBool("solution")

		e, s, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := e.Drill(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(renderDrill(viewOfRecord(rec), reveal))
		if reveal && rec.Explanation != "" {
			fmt.Print(renderMarkdown(rec.Explanation))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("solution", false, "Reveal the solution and explanation")
}
