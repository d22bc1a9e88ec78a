package testcase

import (
	"context"

	"github.com/roach88/rdftest/internal/rdf"
)

// Entry binds a test type IRI to its handler.
type Entry struct {
	Type    string
	Handler Handler
}

// Registry is an ordered, immutable list of handler entries.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry that dispatches in the given order.
func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: append([]Entry(nil), entries...)}
}

// Extend returns a registry in which entries take precedence over r.
// Entries of r whose type is redefined are dropped.
func (r *Registry) Extend(entries ...Entry) *Registry {
	override := make(map[string]bool, len(entries))
	for _, e := range entries {
		override[e.Type] = true
	}

	out := append([]Entry(nil), entries...)
	for _, e := range r.entries {
		if !override[e.Type] {
			out = append(out, e)
		}
	}
	return &Registry{entries: out}
}

// Entries returns a copy of the registry entries in dispatch order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Lookup returns the handler that claims res, if any.
func (r *Registry) Lookup(res *rdf.Resource) (Handler, bool) {
	types := make(map[string]bool)
	for _, t := range res.Types() {
		types[t] = true
	}
	for _, e := range r.entries {
		if types[e.Type] && e.Handler.IsTestCase(res) {
			return e.Handler, true
		}
	}
	return nil, false
}

// FromResource builds the test case for res. It never fails: unclaimed
// resources yield an Unsupported test case and construction errors an
// Errored one.
func (r *Registry) FromResource(ctx context.Context, env Env, res *rdf.Resource) TestCase {
	h, ok := r.Lookup(res)
	if !ok {
		return &Unsupported{info: NewInfo(env, res, KindUnsupported)}
	}

	env.Registry = r
	tc, err := h.FromResource(ctx, env, res)
	if err != nil {
		return &Errored{info: NewInfo(env, res, KindErrored), Err: err}
	}
	return tc
}
