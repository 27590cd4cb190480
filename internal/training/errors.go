package training

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDrillNotFound is returned for attempts on a drill id that was never
	// generated.
	ErrDrillNotFound = errors.New("drill not found")

	// ErrThemeLocked matches every *ThemeLockedError.
	ErrThemeLocked = errors.New("theme locked")
)

// ThemeLockedError reports a theme paused after a run of failures.
type ThemeLockedError struct {
	Theme    string
	Failures int
	Until    time.Time
}

func (e *ThemeLockedError) Error() string {
	return fmt.Sprintf("theme %q is locked after %d straight failures, retry after %s",
		e.Theme, e.Failures, e.Until.Format(time.Kitchen))
}

func (e *ThemeLockedError) Is(target error) bool {
	return target == ErrThemeLocked
}
