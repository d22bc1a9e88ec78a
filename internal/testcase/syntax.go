package testcase

import (
	"context"
	"fmt"

	"github.com/roach88/rdftest/internal/engine"
	"github.com/roach88/rdftest/internal/fetch"
	"github.com/roach88/rdftest/internal/rdf"
)

// Syntax test types.
const (
	TypePositiveSyntax         = rdf.NSMF + "PositiveSyntaxTest"
	TypePositiveSyntax11       = rdf.NSMF + "PositiveSyntaxTest11"
	TypeNegativeSyntax         = rdf.NSMF + "NegativeSyntaxTest"
	TypeNegativeSyntax11       = rdf.NSMF + "NegativeSyntaxTest11"
	TypePositiveUpdateSyntax11 = rdf.NSMF + "PositiveUpdateSyntaxTest11"
	TypeNegativeUpdateSyntax11 = rdf.NSMF + "NegativeUpdateSyntaxTest11"

	TypeTurtlePositiveSyntax   = rdf.NSRDFT + "TestTurtlePositiveSyntax"
	TypeTurtleNegativeSyntax   = rdf.NSRDFT + "TestTurtleNegativeSyntax"
	TypeTurtleNegativeEval     = rdf.NSRDFT + "TestTurtleNegativeEval"
	TypeNTriplesPositiveSyntax = rdf.NSRDFT + "TestNTriplesPositiveSyntax"
	TypeNTriplesNegativeSyntax = rdf.NSRDFT + "TestNTriplesNegativeSyntax"
	TypeNQuadsPositiveSyntax   = rdf.NSRDFT + "TestNQuadsPositiveSyntax"
	TypeNQuadsNegativeSyntax   = rdf.NSRDFT + "TestNQuadsNegativeSyntax"
	TypeTrigPositiveSyntax     = rdf.NSRDFT + "TestTrigPositiveSyntax"
	TypeTrigNegativeSyntax     = rdf.NSRDFT + "TestTrigNegativeSyntax"
	TypeTrigNegativeEval       = rdf.NSRDFT + "TestTrigNegativeEval"
	TypeXMLNegativeSyntax      = rdf.NSRDFT + "TestXMLNegativeSyntax"
)

// Default returns the registry of built-in handlers.
//
// Evaluation tests are not registered; they resolve to Unsupported.
func Default() *Registry {
	query := func(positive bool) Handler { return SPARQLSyntaxHandler{Positive: positive} }
	update := func(positive bool) Handler { return SPARQLSyntaxHandler{Positive: positive, Update: true} }
	data := func(positive bool, s engine.Syntax) Handler { return RDFSyntaxHandler{Positive: positive, Syntax: s} }

	return NewRegistry(
		Entry{TypePositiveSyntax, query(true)},
		Entry{TypePositiveSyntax11, query(true)},
		Entry{TypeNegativeSyntax, query(false)},
		Entry{TypeNegativeSyntax11, query(false)},
		Entry{TypePositiveUpdateSyntax11, update(true)},
		Entry{TypeNegativeUpdateSyntax11, update(false)},

		Entry{TypeTurtlePositiveSyntax, data(true, engine.SyntaxTurtle)},
		Entry{TypeTurtleNegativeSyntax, data(false, engine.SyntaxTurtle)},
		Entry{TypeTurtleNegativeEval, data(false, engine.SyntaxTurtle)},
		Entry{TypeNTriplesPositiveSyntax, data(true, engine.SyntaxNTriples)},
		Entry{TypeNTriplesNegativeSyntax, data(false, engine.SyntaxNTriples)},
		Entry{TypeNQuadsPositiveSyntax, data(true, engine.SyntaxNQuads)},
		Entry{TypeNQuadsNegativeSyntax, data(false, engine.SyntaxNQuads)},
		Entry{TypeTrigPositiveSyntax, data(true, engine.SyntaxTriG)},
		Entry{TypeTrigNegativeSyntax, data(false, engine.SyntaxTriG)},
		Entry{TypeTrigNegativeEval, data(false, engine.SyntaxTriG)},
		Entry{TypeXMLNegativeSyntax, data(false, engine.SyntaxRDFXML)},
	)
}

// SPARQLSyntaxHandler builds query and update syntax tests. The mf:action
// is the IRI of the query, or a node carrying qt:query or ut:request.
type SPARQLSyntaxHandler struct {
	Positive bool
	Update   bool
}

// IsTestCase implements Handler.
func (h SPARQLSyntaxHandler) IsTestCase(r *rdf.Resource) bool {
	return r.First(rdf.MFAction) != nil
}

// FromResource implements Handler.
func (h SPARQLSyntaxHandler) FromResource(ctx context.Context, env Env, r *rdf.Resource) (TestCase, error) {
	nested := rdf.QTQuery
	if h.Update {
		nested = rdf.UTRequest
	}
	doc, err := fetchAction(ctx, env, r, nested)
	if err != nil {
		return nil, err
	}
	return &SPARQLSyntax{
		info:   NewInfo(env, r, syntaxKind(h.Positive)),
		Source: string(doc.Body),
		Base:   doc.URL,
		Update: h.Update,
	}, nil
}

// SPARQLSyntax checks that an engine accepts or rejects a query or update.
type SPARQLSyntax struct {
	info   Info
	Source string
	Base   string
	Update bool
}

// Info implements TestCase.
func (s *SPARQLSyntax) Info() Info { return s.info }

// Run implements TestCase.
func (s *SPARQLSyntax) Run(ctx context.Context, eng engine.Engine) (Outcome, error) {
	if s.Update {
		p, ok := eng.(engine.UpdateParser)
		if !ok {
			return unsupportedCapability("update parsing"), nil
		}
		return verdict(s.info.Kind, "update", p.ParseUpdate(ctx, s.Source, s.Base))
	}

	p, ok := eng.(engine.QueryParser)
	if !ok {
		return unsupportedCapability("query parsing"), nil
	}
	return verdict(s.info.Kind, "query", p.ParseQuery(ctx, s.Source, s.Base))
}

// RDFSyntaxHandler builds RDF syntax tests. The mf:action is the IRI of the
// document to parse.
type RDFSyntaxHandler struct {
	Positive bool
	Syntax   engine.Syntax
}

// IsTestCase implements Handler.
func (h RDFSyntaxHandler) IsTestCase(r *rdf.Resource) bool {
	action := r.First(rdf.MFAction)
	return action != nil && action.IsIRI()
}

// FromResource implements Handler.
func (h RDFSyntaxHandler) FromResource(ctx context.Context, env Env, r *rdf.Resource) (TestCase, error) {
	doc, err := fetchAction(ctx, env, r, "")
	if err != nil {
		return nil, err
	}
	return &RDFSyntax{
		info:   NewInfo(env, r, syntaxKind(h.Positive)),
		Data:   doc.Body,
		Base:   doc.URL,
		Syntax: h.Syntax,
	}, nil
}

// RDFSyntax checks that an engine accepts or rejects an RDF document.
type RDFSyntax struct {
	info   Info
	Data   []byte
	Base   string
	Syntax engine.Syntax
}

// Info implements TestCase.
func (s *RDFSyntax) Info() Info { return s.info }

// Run implements TestCase.
func (s *RDFSyntax) Run(ctx context.Context, eng engine.Engine) (Outcome, error) {
	p, ok := eng.(engine.RDFParser)
	if !ok {
		return unsupportedCapability("RDF parsing"), nil
	}
	return verdict(s.info.Kind, string(s.Syntax)+" document", p.ParseRDF(ctx, s.Data, s.Syntax, s.Base))
}

func syntaxKind(positive bool) Kind {
	if positive {
		return KindPositiveSyntax
	}
	return KindNegativeSyntax
}

func unsupportedCapability(capability string) Outcome {
	return Outcome{Detail: "engine does not support " + capability}
}

// verdict maps an engine answer onto the expectation of a syntax test.
// Errors other than a rejection are returned as execution failures.
func verdict(kind Kind, what string, err error) (Outcome, error) {
	if err != nil && !engine.IsRejected(err) {
		return Outcome{}, err
	}

	switch {
	case kind == KindPositiveSyntax && err == nil:
		return Outcome{OK: true}, nil
	case kind == KindPositiveSyntax:
		return Outcome{Detail: fmt.Sprintf("engine rejected a valid %s: %v", what, err)}, nil
	case err == nil:
		return Outcome{Detail: fmt.Sprintf("engine accepted an invalid %s", what)}, nil
	default:
		return Outcome{OK: true}, nil
	}
}

// fetchAction retrieves the document named by the mf:action of r. When the
// action is not an IRI, the document is taken from its nested property.
func fetchAction(ctx context.Context, env Env, r *rdf.Resource, nested string) (*fetch.Document, error) {
	action := r.First(rdf.MFAction)
	if action == nil {
		return nil, fmt.Errorf("%s has no mf:action", r.Value())
	}
	if !action.IsIRI() && nested != "" {
		action = action.First(nested)
	}
	if action == nil || !action.IsIRI() {
		return nil, fmt.Errorf("%s: mf:action does not name a document", r.Value())
	}
	if env.Fetcher == nil {
		return nil, fmt.Errorf("%s: no fetcher to retrieve %s", r.Value(), action.Value())
	}

	doc, err := env.Fetcher.Fetch(ctx, action.Value())
	if err != nil {
		return nil, fmt.Errorf("fetch action of %s: %w", r.Value(), err)
	}
	return doc, nil
}
