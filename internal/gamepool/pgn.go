package gamepool

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/notnil/chess"
)

// gameNamespace scopes game IDs derived from PGN text.
var gameNamespace = uuid.MustParse("5b0f8f3e-2d6c-4f7e-9a61-0c4b8d7e2a19")

// ParseError describes a game in a PGN stream that could not be parsed.
type ParseError struct {
	Index int // zero-based position of the game in the stream
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("game %d: %v", e.Index+1, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParsePGN reads every game in a multi-game PGN stream. Games that fail to
// parse are returned as ParseErrors alongside the games that succeeded; only
// read failures abort the call.
func ParsePGN(r io.Reader) ([]*Game, []*ParseError, error) {
	chunks, err := splitPGN(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read pgn: %w", err)
	}

	var (
		games   []*Game
		skipped []*ParseError
	)
	for i, chunk := range chunks {
		g, err := parseGame(chunk)
		if err != nil {
			skipped = append(skipped, &ParseError{Index: i, Err: err})
			continue
		}
		games = append(games, g)
	}
	return games, skipped, nil
}

func parseGame(text string) (*Game, error) {
	opt, err := chess.PGN(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	parsed := chess.NewGame(opt)

	tag := func(key string) string {
		if tp := parsed.GetTagPair(key); tp != nil {
			return tp.Value
		}
		return ""
	}

	result := tag("Result")
	if result == "" {
		result = "*"
	}
	return &Game{
		ID:        uuid.NewSHA1(gameNamespace, []byte(text)).String(),
		White:     tag("White"),
		Black:     tag("Black"),
		Result:    result,
		TimeClass: TimeClass(tag("TimeControl")),
		Event:     tag("Event"),
		PGN:       text,
	}, nil
}

// splitPGN cuts a PGN stream into per-game text. A new game starts at the
// first tag line that follows movetext.
func splitPGN(r io.Reader) ([]string, error) {
	var (
		chunks  []string
		cur     strings.Builder
		inMoves bool
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
		inMoves = false
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "["):
			if inMoves {
				flush()
			}
		case trimmed != "":
			inMoves = true
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return chunks, nil
}

// TimeClass buckets a PGN TimeControl tag ("base+increment" in seconds)
// by estimated game length: base + 40 × increment.
func TimeClass(tc string) string {
	tc = strings.TrimSpace(tc)
	switch tc {
	case "", "?":
		return ""
	case "-":
		return "correspondence"
	}
	if strings.Contains(tc, "/") {
		return "daily"
	}

	baseStr, incStr, _ := strings.Cut(tc, "+")
	base, err := strconv.Atoi(baseStr)
	if err != nil {
		return ""
	}
	inc := 0
	if incStr != "" {
		if inc, err = strconv.Atoi(incStr); err != nil {
			return ""
		}
	}

	total := base + 40*inc
	switch {
	case total < 180:
		return "bullet"
	case total < 480:
		return "blitz"
	case total < 1500:
		return "rapid"
	default:
		return "classical"
	}
}
