package drillgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/tactiz/internal/gamepool"
)

// Mode selects how the target ply is chosen within a game.
type Mode string

const (
	ModeRandomMoment     Mode = "random_moment"
	ModeCriticalPosition Mode = "critical_position"
	ModeStartFromMove    Mode = "start_from_move"
	ModeEndgameFinish    Mode = "endgame_finish"
	ModeAny              Mode = "any"
)

// AllModes returns every mode in display order.
func AllModes() []Mode {
	return []Mode{ModeRandomMoment, ModeCriticalPosition, ModeStartFromMove, ModeEndgameFinish, ModeAny}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	for _, k := range AllModes() {
		if m == k {
			return true
		}
	}
	return false
}

// ParseMode accepts a mode name, case-insensitively, with '-' or '_'.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !m.Valid() {
		return "", fmt.Errorf("unknown drill mode %q", s)
	}
	return m, nil
}

// Theme tags attached to drills.
const (
	ThemeAdvantage = "advantage"
	ThemeTactics   = "tactics"
	ThemeOpening   = "opening"
	ThemeEndgame   = "endgame"
)

// ThemeFor returns the theme a concrete mode tags its drills with. ModeAny
// has no fixed theme and yields "".
func ThemeFor(m Mode) string {
	switch m {
	case ModeRandomMoment:
		return ThemeAdvantage
	case ModeCriticalPosition:
		return ThemeTactics
	case ModeStartFromMove:
		return ThemeOpening
	case ModeEndgameFinish:
		return ThemeEndgame
	}
	return ""
}

// Options tunes a single generation call.
type Options struct {
	// StartMove is the full-move number targeted by ModeStartFromMove.
	// Zero means Config.DefaultStartMove; negative values start from the
	// first ply.
	StartMove int
}

// Drill is a position cut from a source game together with the moves that
// were actually played from it.
type Drill struct {
	ID           string
	SourceGameID string
	Mode         Mode // resolved mode, never ModeAny
	Position     string
	Theme        string
	Goal         string
	Solution     []string // at least one move
	Difficulty   int      // 1..5
	Explanation  string
	PlayedMove   string // the source game's move from Position
	Ply          int    // index of PlayedMove in the source game
}

// MoveNumber returns the full-move number of the drill position.
func (d *Drill) MoveNumber() int {
	return d.Ply/2 + 1
}

// Candidate is a drill under construction, handed to each Check.
type Candidate struct {
	Game      *gamepool.Game
	Replay    *gamepool.Replay
	Requested Mode
	Mode      Mode
	Theme     string
	Ply       int
	Position  string
	Placement string
	Solution  []string
}
