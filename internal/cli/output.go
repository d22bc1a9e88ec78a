package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roach88/rdftest/internal/config"
	"github.com/roach88/rdftest/internal/report"
	"github.com/roach88/rdftest/internal/testcase"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // All selected tests passed
	ExitFailure      = 1 // Usage error, failed tests or a failed run
	ExitCommandError = 2 // Command error (database not found, unknown run, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeResults renders results in the given output format. props is only
// consulted for EARL output.
func writeResults(w io.Writer, format string, results []testcase.Result, props *report.Properties, issued time.Time) error {
	switch format {
	case config.FormatEarl:
		triples, err := report.Earl(results, props, issued)
		if err != nil {
			return err
		}
		return report.WriteEarl(w, triples)
	case config.FormatSummary:
		return report.WriteText(w, results, true)
	default:
		return report.WriteText(w, results, false)
	}
}

// failureError returns the error that makes the process exit with
// ExitFailure when any result failed.
func failureError(results []testcase.Result) error {
	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d of %d tests failed", failed, len(results)))
}

// earlProperties loads the EARL properties named by the settings, generating
// the file from the package descriptor when it is missing.
func earlProperties(cfg config.Config, workDir string) (*report.Properties, error) {
	if cfg.Properties == "" {
		return nil, &report.Error{Message: "EARL reporting requires the -p argument to point to an earl-meta.json file."}
	}
	return report.EnsureProperties(inDir(workDir, cfg.Properties), inDir(workDir, cfg.Descriptor))
}
