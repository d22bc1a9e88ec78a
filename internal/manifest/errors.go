package manifest

import (
	"errors"
	"fmt"
)

// ResolutionError reports a suite that cannot be resolved: the root
// resource is missing, or an include names something other than a document.
type ResolutionError struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolve %s: %s", e.URL, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsResolutionError reports whether err is a ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// LoadFailure records a document whose contribution was dropped.
type LoadFailure struct {
	URL string
	Err error
}
