package testcase

import (
	"context"
	"time"

	"github.com/roach88/rdftest/internal/engine"
	"github.com/roach88/rdftest/internal/fetch"
	"github.com/roach88/rdftest/internal/rdf"
)

// Kind tags the variant of a test case.
type Kind int

const (
	KindPositiveSyntax Kind = iota + 1
	KindNegativeSyntax
	KindEvaluation
	KindUnsupported
	KindErrored
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPositiveSyntax:
		return "positive-syntax"
	case KindNegativeSyntax:
		return "negative-syntax"
	case KindEvaluation:
		return "evaluation"
	case KindUnsupported:
		return "unsupported"
	case KindErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Info describes a test case independently of how it runs.
type Info struct {
	// URI is the test's IRI, or its document-scoped blank label when
	// Anonymous is set.
	URI       string
	Anonymous bool
	Name      string
	Comment   string
	Types     []string
	// Specifications is the set of specification IRIs the test is
	// associated with, including those inherited from its manifests.
	Specifications []string
	// Approval is the dawgt:approval status, if declared.
	Approval string
	Kind     Kind
}

// Outcome is the verdict of one run.
type Outcome struct {
	OK     bool
	Detail string
}

// TestCase is an executable conformance test.
//
// Run returns an error only when no verdict could be reached, for example
// because the engine process crashed. A failed expectation is an Outcome
// with OK false.
type TestCase interface {
	Info() Info
	Run(ctx context.Context, eng engine.Engine) (Outcome, error)
}

// Handler recognizes and builds one family of test cases.
type Handler interface {
	IsTestCase(r *rdf.Resource) bool
	FromResource(ctx context.Context, env Env, r *rdf.Resource) (TestCase, error)
}

// Env is the context a manifest hands to its handlers.
type Env struct {
	Registry *Registry
	// Fetcher retrieves action documents. It is the fetcher the manifest
	// was loaded with, so documents share its cache.
	Fetcher fetch.Fetcher
	// Specifications are inherited from the enclosing manifests.
	Specifications []string
}

// Result is the immutable record of one executed test case.
type Result struct {
	URI            string
	Anonymous      bool
	Name           string
	Comment        string
	Specifications []string
	Approval       string
	OK             bool
	Detail         string
	Duration       time.Duration
}

// NewResult records outcome for the test described by info.
func NewResult(info Info, outcome Outcome, d time.Duration) Result {
	return Result{
		URI:            info.URI,
		Anonymous:      info.Anonymous,
		Name:           info.Name,
		Comment:        info.Comment,
		Specifications: info.Specifications,
		Approval:       info.Approval,
		OK:             outcome.OK,
		Detail:         outcome.Detail,
		Duration:       d,
	}
}

// NewInfo describes r as a test case of the given kind. Specifications
// declared on r are merged with those inherited through env.
func NewInfo(env Env, r *rdf.Resource, kind Kind) Info {
	name := r.Text(rdf.MFName)
	if name == "" {
		name = r.Text(rdf.RDFSLabel)
	}
	if name == "" {
		name = r.Value()
	}
	return Info{
		URI:            r.Value(),
		Anonymous:      !r.IsIRI(),
		Name:           name,
		Comment:        r.Text(rdf.RDFSComment),
		Types:          r.Types(),
		Specifications: MergeSpecifications(env.Specifications, r.Texts(rdf.MFSpecification)),
		Approval:       r.Text(rdf.DAWGTApproval),
		Kind:           kind,
	}
}

// MergeSpecifications returns the ordered union of the given sets.
func MergeSpecifications(sets ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, set := range sets {
		for _, s := range set {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
