package cmd

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/abhisek/tactiz/internal/drillgen"
	"github.com/abhisek/tactiz/internal/outcome"
	"github.com/abhisek/tactiz/internal/store"
	"github.com/abhisek/tactiz/internal/training"
	"github.com/abhisek/tactiz/internal/ui/components"
	"github.com/abhisek/tactiz/internal/ui/theme"
)

// drillView is the part of a drill shared by fresh and stored drills.
type drillView struct {
	ID          string
	Mode        string
	Theme       string
	Position    string
	Goal        string
	Difficulty  int
	Ply         int
	Solution    []string
	Explanation string
}

func viewOf(d *drillgen.Drill) drillView {
	return drillView{
		ID: d.ID, Mode: string(d.Mode), Theme: d.Theme, Position: d.Position, Goal: d.Goal,
		Difficulty: d.Difficulty, Ply: d.Ply, Solution: d.Solution, Explanation: d.Explanation,
	}
}

func viewOfRecord(r *store.DrillRecord) drillView {
	return drillView{
		ID: r.ID, Mode: r.Mode, Theme: r.Theme, Position: r.Position, Goal: r.Goal,
		Difficulty: r.Difficulty, Ply: r.Ply, Solution: r.Solution, Explanation: r.Explanation,
	}
}

// renderDrill prints the board and goal. The solution is only shown when
// reveal is set.
func renderDrill(d drillView, reveal bool) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Drill %s", d.ID)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s · move %d · difficulty %d",
		d.Theme, d.Mode, d.Ply/2+1, d.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(components.NewBoard(d.Position).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(d.Goal))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(d.Position))
	if reveal {
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Solution"))
		b.WriteString(theme.Correct.Render(strings.Join(d.Solution, " ")))
	}
	return theme.Card.Render(b.String())
}

// renderMarkdown renders md for the terminal, falling back to plain text.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func outcomeStyle(o outcome.Outcome) lipgloss.Style {
	switch {
	case o == outcome.Abandoned:
		return theme.Hint
	case o.IsSuccess():
		return theme.Correct
	default:
		return theme.Incorrect
	}
}

func renderResult(r *training.Result) string {
	var b strings.Builder
	b.WriteString(outcomeStyle(r.Outcome).Render(r.Outcome.DisplayName()))
	b.WriteString("\n")
	b.WriteString(components.MasteryBar(r.Drill.Theme, r.Skill.Mastery, 50).View())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%.2f\n", theme.Label.Render("Confidence"), r.Skill.Confidence)
	fmt.Fprintf(&b, "%s%d\n", theme.Label.Render("Streak"), r.Skill.Streak)
	fmt.Fprintf(&b, "%s%s (in %d days)\n", theme.Label.Render("Next review"),
		r.Schedule.NextDueAt.Local().Format("2006-01-02"), r.Schedule.Interval)
	if r.BandChange != nil {
		b.WriteString(theme.Warning.Render(fmt.Sprintf("%s: %s → %s", r.BandChange.Theme, r.BandChange.From, r.BandChange.To)))
		b.WriteString("\n")
	}
	if r.Locked {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Too many misses on %s. Take a break until %s.",
			r.Drill.Theme, r.LockedUntil.Local().Format(time.Kitchen))))
		b.WriteString("\n")
	}
	return b.String()
}
