package drillgen

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/abhisek/tactiz/internal/gamepool"
)

// Check inspects a candidate before it becomes a drill.
// Implementations should be stateless and safe for concurrent use.
type Check interface {
	// Name returns a short identifier used in rejection counts and logs.
	Name() string

	// Check returns nil if the candidate passes.
	Check(c *Candidate) *CandidateRejected
}

// CandidateRejected describes why a candidate was discarded. It never
// escapes Generate; the loop moves on to the next attempt.
type CandidateRejected struct {
	Check   string
	Message string
}

func (e *CandidateRejected) Error() string {
	return fmt.Sprintf("check %q: %s", e.Check, e.Message)
}

func reject(check, format string, args ...any) *CandidateRejected {
	return &CandidateRejected{Check: check, Message: fmt.Sprintf(format, args...)}
}

// StartPositionCheck rejects the standard starting arrangement unless the
// caller explicitly asked for ModeStartFromMove.
type StartPositionCheck struct{}

func (v *StartPositionCheck) Name() string { return "start-position" }

func (v *StartPositionCheck) Check(c *Candidate) *CandidateRejected {
	if c.Placement == gamepool.StartPlacement && c.Requested != ModeStartFromMove {
		return reject(v.Name(), "position at ply %d is the starting position", c.Ply)
	}
	return nil
}

// PositionCheck makes sure the rules library accepts the position string
// and reads back the same board and side to move.
type PositionCheck struct{}

func (v *PositionCheck) Name() string { return "position" }

func (v *PositionCheck) Check(c *Candidate) *CandidateRejected {
	opt, err := chess.FEN(c.Position)
	if err != nil {
		return reject(v.Name(), "invalid FEN %q: %v", c.Position, err)
	}
	got := chess.NewGame(opt).Position().String()
	if boardAndTurn(got) != boardAndTurn(c.Position) {
		return reject(v.Name(), "FEN %q read back as %q", c.Position, got)
	}
	return nil
}

func boardAndTurn(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return fen
	}
	return fields[0] + " " + fields[1]
}

// SolutionCheck rejects candidates without a playable continuation.
type SolutionCheck struct{}

func (v *SolutionCheck) Name() string { return "solution" }

func (v *SolutionCheck) Check(c *Candidate) *CandidateRejected {
	if len(c.Solution) == 0 {
		return reject(v.Name(), "no moves follow ply %d", c.Ply)
	}
	for i, san := range c.Solution {
		if strings.TrimSpace(san) == "" {
			return reject(v.Name(), "solution move %d is empty", i)
		}
	}
	return nil
}
