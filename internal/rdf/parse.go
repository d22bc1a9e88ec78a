package rdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	knakk "github.com/knakk/rdf"
)

// Format names an RDF serialization.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
)

// Parser turns raw document bytes into triples. Relative IRIs are resolved
// against base.
type Parser interface {
	Parse(ctx context.Context, base string, data []byte, format Format) ([]Triple, error)
}

// DecoderParser parses Turtle and N-Triples documents.
type DecoderParser struct{}

// Parse implements Parser.
func (DecoderParser) Parse(ctx context.Context, base string, data []byte, format Format) ([]Triple, error) {
	var kf knakk.Format
	switch format {
	case FormatTurtle:
		kf = knakk.Turtle
	case FormatNTriples:
		kf = knakk.NTriples
	default:
		return nil, fmt.Errorf("unsupported RDF format %q", format)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base %q: %w", base, err)
	}

	// The decoder leaves relative IRIs unresolved; they are resolved against
	// the document URL here.
	dec := knakk.NewTripleDecoder(bytes.NewReader(data), kf)
	var out []Triple
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		out = append(out, Triple{
			Subject:   resolve(baseURL, fromKnakk(t.Subj)),
			Predicate: resolve(baseURL, fromKnakk(t.Pred)),
			Object:    resolve(baseURL, fromKnakk(t.Obj)),
		})
	}
	return out, nil
}

// FormatFor picks the syntax of a document from its media type, falling back
// to the extension of its URL. Turtle is assumed when neither is conclusive.
func FormatFor(contentType, docURL string) Format {
	mt := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mt {
	case "text/turtle", "application/x-turtle":
		return FormatTurtle
	case "application/n-triples":
		return FormatNTriples
	}

	switch strings.ToLower(path.Ext(strings.SplitN(docURL, "#", 2)[0])) {
	case ".nt":
		return FormatNTriples
	default:
		return FormatTurtle
	}
}

var schemeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// resolve makes a relative IRI term absolute. Absolute IRIs are returned
// untouched so that their spelling is preserved.
func resolve(base *url.URL, t Term) Term {
	if t.Kind != KindIRI || schemeRE.MatchString(t.Value) {
		return t
	}
	ref, err := url.Parse(t.Value)
	if err != nil {
		return t
	}
	return IRI(base.ResolveReference(ref).String())
}

func fromKnakk(t knakk.Term) Term {
	switch v := t.(type) {
	case knakk.IRI:
		return IRI(v.String())
	case knakk.Blank:
		return Blank(strings.TrimPrefix(v.String(), "_:"))
	case knakk.Literal:
		if lang := v.Lang(); lang != "" {
			return LangLiteral(v.String(), lang)
		}
		return Literal(v.String(), v.DataType.String())
	default:
		return Term{Kind: KindIRI, Value: t.String()}
	}
}
