package engine

import "context"

// Engine is the implementation under test.
type Engine interface{}

// QueryParser parses SPARQL queries.
type QueryParser interface {
	ParseQuery(ctx context.Context, query, base string) error
}

// UpdateParser parses SPARQL updates.
type UpdateParser interface {
	ParseUpdate(ctx context.Context, update, base string) error
}

// RDFParser parses RDF documents.
type RDFParser interface {
	ParseRDF(ctx context.Context, data []byte, format Syntax, base string) error
}

// Syntax names an RDF serialization understood by RDFParser.
type Syntax string

const (
	SyntaxTurtle   Syntax = "turtle"
	SyntaxNTriples Syntax = "ntriples"
	SyntaxNQuads   Syntax = "nquads"
	SyntaxTriG     Syntax = "trig"
	SyntaxRDFXML   Syntax = "rdfxml"
)
