package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tactiz/internal/mastery"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Board colors
var (
	LightSquare = lipgloss.Color("#EEEED2")
	DarkSquare  = lipgloss.Color("#769656")
	WhitePiece  = lipgloss.Color("#FFFFFF")
	BlackPiece  = lipgloss.Color("#111111")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(12)
)

// Layout
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// BandColor returns the display color of a mastery band.
func BandColor(b mastery.Band) color.Color {
	switch b {
	case mastery.BandMaster:
		return Primary
	case mastery.BandStrong:
		return Success
	case mastery.BandSolid:
		return Secondary
	case mastery.BandApprentice:
		return Accent
	default:
		return Error
	}
}
