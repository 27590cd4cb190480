package drillgen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrGenerationFailed matches every *GenerationFailure.
	ErrGenerationFailed = errors.New("drill generation failed")

	// ErrEmptyPool is the cause when Generate is called with no games.
	ErrEmptyPool = errors.New("game pool is empty")

	// ErrNoCandidate is the cause when every attempt was rejected.
	ErrNoCandidate = errors.New("no valid drill within attempt limit")

	// ErrUnknownMode is the cause when the mode is not recognized.
	ErrUnknownMode = errors.New("unknown drill mode")
)

// GenerationFailure is returned when Generate cannot produce a drill. The
// caller should offer a retry or a different pool.
type GenerationFailure struct {
	Attempts   int
	Rejections map[string]int // rejection count by check name
	Err        error
}

func (e *GenerationFailure) Error() string {
	if len(e.Rejections) == 0 {
		return fmt.Sprintf("%v: %v", ErrGenerationFailed, e.Err)
	}
	names := make([]string, 0, len(e.Rejections))
	for name := range e.Rejections {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, e.Rejections[name])
	}
	return fmt.Sprintf("%v: %v after %d attempts (%s)",
		ErrGenerationFailed, e.Err, e.Attempts, strings.Join(parts, ", "))
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

func (e *GenerationFailure) Is(target error) bool {
	return target == ErrGenerationFailed
}
