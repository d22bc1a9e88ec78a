package testcase

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/rdftest/internal/engine"
)

// Unsupported stands in for a test whose type no handler claims.
type Unsupported struct {
	info Info
}

// Info implements TestCase.
func (u *Unsupported) Info() Info { return u.info }

// Run implements TestCase. It always fails.
func (u *Unsupported) Run(context.Context, engine.Engine) (Outcome, error) {
	types := u.info.Types
	if len(types) == 0 {
		types = []string{"(none)"}
	}
	return Outcome{Detail: "test type not supported: " + strings.Join(types, ", ")}, nil
}

// Errored stands in for a test whose handler could not build it.
type Errored struct {
	info Info
	Err  error
}

// Info implements TestCase.
func (e *Errored) Info() Info { return e.info }

// Run implements TestCase. It always fails with the construction error.
func (e *Errored) Run(context.Context, engine.Engine) (Outcome, error) {
	return Outcome{Detail: fmt.Sprintf("invalid test case: %v", e.Err)}, nil
}
