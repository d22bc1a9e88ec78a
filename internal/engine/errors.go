package engine

import (
	"errors"
	"fmt"
	"strings"
)

// RejectedError is the verdict of an engine that refused its input.
type RejectedError struct {
	Message string
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "rejected"
	}
	return "rejected: " + e.Message
}

// IsRejected reports whether err carries a rejection verdict.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// ProtocolError reports an engine process that did not follow the command
// protocol: it could not be started, was killed, or exited with a status
// other than 0 or 1.
type ProtocolError struct {
	Path     string
	Kind     string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "engine %s parse %s", e.Path, e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	} else {
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
