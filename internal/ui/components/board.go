package components

import (
	"fmt"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tactiz/internal/ui/theme"
)

var pieceGlyphs = map[rune]string{
	'K': "♚", 'Q': "♛", 'R': "♜", 'B': "♝", 'N': "♞", 'P': "♟",
}

// Board renders a FEN position as a colored 8x8 board. Flip shows the board
// from Black's side.
type Board struct {
	FEN  string
	Flip bool
}

// NewBoard returns a board oriented for the side to move.
func NewBoard(fen string) Board {
	fields := strings.Fields(fen)
	return Board{FEN: fen, Flip: len(fields) > 1 && fields[1] == "b"}
}

// Squares expands the FEN placement into ranks 8..1, files a..h. Empty
// squares hold 0.
func Squares(fen string) ([8][8]rune, error) {
	var sq [8][8]rune
	placement, _, _ := strings.Cut(strings.TrimSpace(fen), " ")
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return sq, fmt.Errorf("placement %q: want 8 ranks, got %d", placement, len(ranks))
	}
	for r, rank := range ranks {
		f := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				f += int(c - '0')
			case strings.ContainsRune("kqrbnpKQRBNP", c):
				if f < 8 {
					sq[r][f] = c
				}
				f++
			default:
				return sq, fmt.Errorf("placement %q: bad character %q", placement, c)
			}
		}
		if f != 8 {
			return sq, fmt.Errorf("placement %q: rank %d has %d files", placement, 8-r, f)
		}
	}
	return sq, nil
}

// View renders the board, or the raw FEN when it cannot be parsed.
func (b Board) View() string {
	sq, err := Squares(b.FEN)
	if err != nil {
		return b.FEN
	}

	files := "abcdefgh"
	var out strings.Builder
	for i := range 8 {
		r := i
		if b.Flip {
			r = 7 - i
		}
		out.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d ", 8-r)))
		for j := range 8 {
			f := j
			if b.Flip {
				f = 7 - j
			}
			out.WriteString(square(sq[r][f], (r+f)%2 == 1))
		}
		out.WriteString("\n")
	}

	out.WriteString("  ")
	for j := range 8 {
		f := j
		if b.Flip {
			f = 7 - j
		}
		out.WriteString(theme.Subtitle.Render(" " + string(files[f]) + " "))
	}
	return out.String()
}

func square(piece rune, dark bool) string {
	style := lipgloss.NewStyle().Background(theme.LightSquare)
	if dark {
		style = style.Background(theme.DarkSquare)
	}
	if piece == 0 {
		return style.Render("   ")
	}
	if unicode.IsUpper(piece) {
		style = style.Foreground(theme.WhitePiece).Bold(true)
	} else {
		style = style.Foreground(theme.BlackPiece)
	}
	return style.Render(" " + pieceGlyphs[unicode.ToUpper(piece)] + " ")
}
