package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested Pokémon does not exist upstream
	ErrNotFound = errors.New("pokemon not found")

	// ErrServerOffline indicates the API is unreachable
	ErrServerOffline = errors.New("pokeapi is unreachable")

	// ErrUnknownTrainer indicates the requested trainer is not in the catalog
	ErrUnknownTrainer = errors.New("trainer not found")

	// ErrFetchRefused indicates the detail cache would not start a fetch,
	// for example because it has been closed
	ErrFetchRefused = errors.New("detail fetch refused")

	// ErrUnknownGymLeader indicates the requested gym leader is not in the catalog
	ErrUnknownGymLeader = errors.New("gym leader not found")
)

// NetworkError is a connection or timeout failure talking to the API.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets callers match any NetworkError against ErrServerOffline.
func (e *NetworkError) Is(target error) bool {
	return target == ErrServerOffline
}

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("http error %d", e.StatusCode)
	}
	return fmt.Sprintf("http error %d (%s)", e.StatusCode, text)
}

// Is matches ErrNotFound for 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// DecodeError is a malformed or incomplete payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ClassifyFetchError maps any fetch failure onto one of the three typed
// failures. Unrecognised errors are treated as network failures.
func ClassifyFetchError(err error) error {
	if err == nil {
		return nil
	}
	var netErr *NetworkError
	var httpErr *HTTPError
	var decErr *DecodeError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &decErr):
		return decErr
	case errors.As(err, &netErr):
		return netErr
	default:
		return &NetworkError{Err: err}
	}
}
