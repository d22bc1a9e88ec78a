package rdf

import (
	"fmt"
	"strconv"
)

// TermKind distinguishes IRIs, blank nodes, and literals.
type TermKind int

const (
	KindIRI TermKind = iota
	KindBlank
	KindLiteral
)

// String returns the lowercase kind name used in diagnostics.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term is one RDF term. Datatype and Language are only set for literals.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Language string
}

// Triple is a single statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// IRI returns a named node term.
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// Blank returns a blank node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a typed literal. An empty datatype means xsd:string.
func Literal(value, datatype string) Term {
	if datatype == "" {
		datatype = XSDString
	}
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal.
func LangLiteral(value, language string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: NSRDF + "langString", Language: language}
}

// String renders the term in N-Triples notation.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := strconv.Quote(t.Value)
		if t.Language != "" {
			return s + "@" + t.Language
		}
		if t.Datatype != "" && t.Datatype != XSDString {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return fmt.Sprintf("?%s", t.Value)
	}
}

// key identifies a term for equality checks and graph lookup.
func (t Term) key() string {
	if t.Kind == KindLiteral {
		return t.String()
	}
	if t.Kind == KindBlank {
		return "_:" + t.Value
	}
	return t.Value
}
