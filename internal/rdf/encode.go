package rdf

import (
	"fmt"
	"io"

	knakk "github.com/knakk/rdf"
)

// WriteTurtle serializes triples as Turtle. prefixes maps a prefix name to
// its namespace IRI. Only IRIs in those namespaces are abbreviated; all
// others are written in full.
func WriteTurtle(w io.Writer, triples []Triple, prefixes map[string]string) error {
	enc := knakk.NewTripleEncoder(w, knakk.Turtle)
	enc.GenerateNamespaces = false
	enc.Namespaces = make(map[string]string, len(prefixes))
	for prefix, ns := range prefixes {
		enc.Namespaces[ns] = prefix
	}

	for i, t := range triples {
		kt, err := toKnakk(t)
		if err != nil {
			return fmt.Errorf("triple %d: %w", i, err)
		}
		if err := enc.Encode(kt); err != nil {
			return fmt.Errorf("encode triple %d: %w", i, err)
		}
	}
	return enc.Close()
}

func toKnakk(t Triple) (knakk.Triple, error) {
	var subj knakk.Subject
	switch t.Subject.Kind {
	case KindIRI:
		iri, err := knakk.NewIRI(t.Subject.Value)
		if err != nil {
			return knakk.Triple{}, err
		}
		subj = iri
	case KindBlank:
		b, err := knakk.NewBlank(t.Subject.Value)
		if err != nil {
			return knakk.Triple{}, err
		}
		subj = b
	default:
		return knakk.Triple{}, fmt.Errorf("literal subject %s", t.Subject)
	}

	pred, err := knakk.NewIRI(t.Predicate.Value)
	if err != nil {
		return knakk.Triple{}, err
	}

	var obj knakk.Object
	switch t.Object.Kind {
	case KindIRI:
		iri, err := knakk.NewIRI(t.Object.Value)
		if err != nil {
			return knakk.Triple{}, err
		}
		obj = iri
	case KindBlank:
		b, err := knakk.NewBlank(t.Object.Value)
		if err != nil {
			return knakk.Triple{}, err
		}
		obj = b
	default:
		lit, err := literalToKnakk(t.Object)
		if err != nil {
			return knakk.Triple{}, err
		}
		obj = lit
	}

	return knakk.Triple{Subj: subj, Pred: pred, Obj: obj}, nil
}

func literalToKnakk(t Term) (knakk.Literal, error) {
	if t.Language != "" {
		return knakk.NewLangLiteral(t.Value, t.Language)
	}
	if t.Datatype == "" || t.Datatype == XSDString {
		return knakk.NewLiteral(t.Value)
	}
	dt, err := knakk.NewIRI(t.Datatype)
	if err != nil {
		return knakk.Literal{}, err
	}
	return knakk.NewTypedLiteral(t.Value, dt), nil
}
