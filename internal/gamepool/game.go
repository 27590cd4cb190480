// Package gamepool holds the historical games drills are cut from and
// replays them into an indexed ply list.
package gamepool

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/notnil/chess"

	"github.com/abhisek/tactiz/internal/store"
)

// StartPlacement is the piece placement of the standard starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ErrMalformed is returned when a game's notation cannot be replayed.
var ErrMalformed = errors.New("malformed game notation")

// Game is an imported game. It is immutable once created; the replay is
// computed lazily and cached.
type Game struct {
	ID        string
	White     string
	Black     string
	Result    string
	TimeClass string
	Event     string
	PGN       string

	once   sync.Once
	replay *Replay
	err    error
}

// Ply is a single half-move with the position it was played from.
type Ply struct {
	Index     int    // zero-based ply number
	SAN       string // move in algebraic notation, with +/# suffix
	FENBefore string // full position before the move
	Placement string // piece placement before the move
	Capture   bool
	Check     bool
	Mate      bool
}

// IsTactical reports whether the move's notation marks a capture, check,
// or mate.
func (p Ply) IsTactical() bool {
	return p.Capture || p.Check || p.Mate
}

// Replay is the fully materialized move history of a game.
type Replay struct {
	Plies    []Ply
	FinalFEN string
}

// Len returns the number of plies played.
func (r *Replay) Len() int {
	return len(r.Plies)
}

// Replay parses the game's PGN and returns its indexed ply list. The result
// is computed once and shared by all callers.
func (g *Game) Replay() (*Replay, error) {
	g.once.Do(func() {
		g.replay, g.err = replayPGN(g.PGN)
	})
	return g.replay, g.err
}

func replayPGN(pgn string) (*Replay, error) {
	if strings.TrimSpace(pgn) == "" {
		return nil, fmt.Errorf("%w: empty PGN", ErrMalformed)
	}
	opt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	game := chess.NewGame(opt)

	moves := game.Moves()
	positions := game.Positions()
	if len(positions) != len(moves)+1 {
		return nil, fmt.Errorf("%w: %d positions for %d moves", ErrMalformed, len(positions), len(moves))
	}

	notation := chess.AlgebraicNotation{}
	plies := make([]Ply, len(moves))
	for i, m := range moves {
		pos := positions[i]
		san := notation.Encode(pos, m)
		plies[i] = Ply{
			Index:     i,
			SAN:       san,
			FENBefore: pos.String(),
			Placement: pos.Board().String(),
			Capture:   strings.Contains(san, "x"),
			Check:     strings.HasSuffix(san, "+"),
			Mate:      strings.HasSuffix(san, "#"),
		}
	}

	return &Replay{
		Plies:    plies,
		FinalFEN: positions[len(positions)-1].String(),
	}, nil
}

// FromRecord converts a stored game into a Game.
func FromRecord(rec store.GameRecord) *Game {
	return &Game{
		ID:        rec.ID,
		White:     rec.White,
		Black:     rec.Black,
		Result:    rec.Result,
		TimeClass: rec.TimeClass,
		Event:     rec.Event,
		PGN:       rec.PGN,
	}
}

// Record converts g into its stored form.
func (g *Game) Record() store.GameRecord {
	return store.GameRecord{
		ID:        g.ID,
		White:     g.White,
		Black:     g.Black,
		Result:    g.Result,
		TimeClass: g.TimeClass,
		Event:     g.Event,
		PGN:       g.PGN,
	}
}
