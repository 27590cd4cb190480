package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestSquares(t *testing.T) {
	sq, err := Squares(startFEN)
	if err != nil {
		t.Fatalf("Squares: %v", err)
	}
	if sq[0][4] != 'k' || sq[7][4] != 'K' {
		t.Errorf("kings at e8=%q e1=%q", sq[0][4], sq[7][4])
	}
	if sq[4][4] != 0 {
		t.Errorf("e4 = %q, want empty", sq[4][4])
	}
}

func TestSquaresRejectsBadPlacement(t *testing.T) {
	for _, fen := range []string{
		"8/8/8 w - - 0 1",
		"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	} {
		if _, err := Squares(fen); err == nil {
			t.Errorf("Squares(%q) succeeded, want error", fen)
		}
	}
}

func TestBoardOrientation(t *testing.T) {
	white := strings.Split(ansi.Strip(NewBoard(startFEN).View()), "\n")
	if !strings.HasPrefix(white[0], "8 ") {
		t.Errorf("white view starts with %q, want rank 8", white[0])
	}
	if got := strings.ReplaceAll(white[8], " ", ""); got != "abcdefgh" {
		t.Errorf("white files = %q", got)
	}

	blackFEN := strings.Replace(startFEN, " w ", " b ", 1)
	black := strings.Split(ansi.Strip(NewBoard(blackFEN).View()), "\n")
	if !strings.HasPrefix(black[0], "1 ") {
		t.Errorf("black view starts with %q, want rank 1", black[0])
	}
	if got := strings.ReplaceAll(black[8], " ", ""); got != "hgfedcba" {
		t.Errorf("black files = %q", got)
	}
}

func TestBoardFallsBackToFEN(t *testing.T) {
	if got := (Board{FEN: "garbage"}).View(); got != "garbage" {
		t.Errorf("View() = %q", got)
	}
}

func TestMasteryBarFill(t *testing.T) {
	tests := []struct {
		mastery float64
		want    int
	}{
		{0, 0},
		{50, 10},
		{100, 20},
		{130, 20},
	}
	for _, tt := range tests {
		if got := MasteryBar("", tt.mastery, 26).Filled(20); got != tt.want {
			t.Errorf("Filled(%v) = %d, want %d", tt.mastery, got, tt.want)
		}
	}
}
