package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/tactiz/internal/drillgen"
)

const systemPrompt = `You are a chess coach annotating training positions cut from real games.

Rules:
- The goal is a single sentence addressed to the side to move. Describe what to look for, never the move itself.
- Never write the first solution move in the goal, in any notation.
- The explanation walks through the solution line in plain language and may use Markdown lists.
- Use standard algebraic notation for moves in the explanation.
- Pick motifs only from the allowed list; use "none" when the line is quiet.
- Keep the explanation under 120 words.`

// buildPrompt describes the drill to the model.
func buildPrompt(d *drillgen.Drill, mastery float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Position (FEN): %s\n", d.Position)
	fmt.Fprintf(&b, "Side to move: %s\n", drillgen.SideToMove(d.Position))
	fmt.Fprintf(&b, "Theme: %s\n", d.Theme)
	fmt.Fprintf(&b, "Move number: %d\n", d.MoveNumber())
	fmt.Fprintf(&b, "Solution line: %s\n", strings.Join(d.Solution, " "))
	fmt.Fprintf(&b, "Learner mastery for this theme: %.0f/100\n", mastery)

	return b.String()
}
