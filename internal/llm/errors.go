package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error kinds carried by *ProviderError. Match them with errors.Is.
var (
	ErrRateLimited     = errors.New("rate limited")
	ErrUnavailable     = errors.New("provider unavailable")
	ErrInvalidResponse = errors.New("invalid response")
	ErrTruncated       = errors.New("response truncated at max tokens")
)

// ProviderError is returned by every Provider on failure.
type ProviderError struct {
	Provider   string
	Kind       error
	Status     int           // HTTP status, when known
	RetryAfter time.Duration // server hint for ErrRateLimited
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// statusError maps an HTTP status from a provider SDK to a ProviderError.
func statusError(provider string, status int, err error) *ProviderError {
	kind := ErrUnavailable
	if status == http.StatusTooManyRequests {
		kind = ErrRateLimited
	}
	return &ProviderError{Provider: provider, Kind: kind, Status: status, Err: err}
}

func invalidResponse(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrInvalidResponse, Err: err}
}
