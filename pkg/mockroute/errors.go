package mockroute

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is returned for patterns that cannot be parsed.
	ErrInvalidPattern = errors.New("mockroute: invalid pattern")
	// ErrNoHandlers is returned when registering a pattern without handlers.
	ErrNoHandlers = errors.New("mockroute: no handlers")
	// ErrNoRoute means no registered route answers the request. Adapters let
	// such requests through untouched.
	ErrNoRoute = errors.New("mockroute: no route")
	// ErrClosed is returned once the registrar has been closed.
	ErrClosed = errors.New("mockroute: registrar closed")
)

// CheckError is a failed request expectation on a matched route.
type CheckError struct {
	Method  string
	Path    string
	Pattern string
	Err     error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("mockroute: %s %s (route %s): %v", e.Method, e.Path, e.Pattern, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }
