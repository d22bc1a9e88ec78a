package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/roach88/rdftest/internal/engine"
)

// Call records one request made to a StubEngine.
type Call struct {
	Kind  string
	Input string
	Base  string
}

// StubEngine is an in-process engine for tests. It accepts every input
// unless Verdict says otherwise.
//
// Thread-safety: safe for concurrent use.
type StubEngine struct {
	// Verdict decides the answer for one request. Nil accepts everything.
	Verdict func(kind, input string) error

	mu    sync.Mutex
	calls []Call
}

// RejectContaining returns a verdict that rejects inputs containing marker.
func RejectContaining(marker string) func(kind, input string) error {
	return func(_, input string) error {
		if strings.Contains(input, marker) {
			return &engine.RejectedError{Message: "found " + marker}
		}
		return nil
	}
}

// ParseQuery implements engine.QueryParser.
func (e *StubEngine) ParseQuery(_ context.Context, query, base string) error {
	return e.answer("query", query, base)
}

// ParseUpdate implements engine.UpdateParser.
func (e *StubEngine) ParseUpdate(_ context.Context, update, base string) error {
	return e.answer("update", update, base)
}

// ParseRDF implements engine.RDFParser.
func (e *StubEngine) ParseRDF(_ context.Context, data []byte, format engine.Syntax, base string) error {
	return e.answer(string(format), string(data), base)
}

// Calls returns the requests received so far.
func (e *StubEngine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

func (e *StubEngine) answer(kind, input, base string) error {
	e.mu.Lock()
	e.calls = append(e.calls, Call{Kind: kind, Input: input, Base: base})
	e.mu.Unlock()

	if e.Verdict == nil {
		return nil
	}
	return e.Verdict(kind, input)
}
