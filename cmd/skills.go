package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tactiz/internal/ui/components"
	"github.com/abhisek/tactiz/internal/ui/theme"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show mastery per theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, s, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		skills := e.Skills()
		if len(skills) == 0 {
			fmt.Println("No themes practiced yet.")
			return nil
		}

		for _, sk := range skills {
			fmt.Println(components.MasteryBar(sk.Theme, sk.Mastery, 50).View())
			line := fmt.Sprintf("%12s  %-10s  confidence %.2f  streak %d", "", sk.Band(), sk.Confidence, sk.Streak)
			lock, err := e.Locked(cmd.Context(), sk.Theme)
			if err != nil {
				return err
			}
			if lock != nil {
				line += "  " + theme.Incorrect.Render("locked")
			}
			fmt.Println(theme.Subtitle.Render(line))
		}
		return nil
	},
}
