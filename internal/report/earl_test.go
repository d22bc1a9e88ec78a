package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdftest/internal/rdf"
	"github.com/roach88/rdftest/internal/testcase"
)

var issued = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func testProperties() *Properties {
	return &Properties{
		ApplicationURI:         "https://example.org/engine",
		ApplicationNameFull:    "engine",
		ApplicationDescription: "A SPARQL engine",
		ApplicationHomepageURL: "https://example.org/engine",
		ApplicationBugsURL:     "https://example.org/engine/issues",
		LicenseURI:             "http://opensource.org/licenses/MIT",
		Version:                "1.2.3",
		Authors: []Author{
			{URI: "https://example.org/ada", Name: "Ada", Homepage: "https://example.org/ada"},
			{Name: "Grace"},
		},
		SpecificationURIs: []string{"http://ex.org/spec/S1"},
	}
}

func objects(triples []rdf.Triple, subj rdf.Term, pred string) []rdf.Term {
	var out []rdf.Term
	for _, t := range triples {
		if t.Subject == subj && t.Predicate.Value == pred {
			out = append(out, t.Object)
		}
	}
	return out
}

func subjects(triples []rdf.Triple, pred string, obj rdf.Term) []rdf.Term {
	var out []rdf.Term
	for _, t := range triples {
		if t.Predicate.Value == pred && t.Object == obj {
			out = append(out, t.Subject)
		}
	}
	return out
}

func TestEarlRequiresProperties(t *testing.T) {
	_, err := Earl(nil, nil, issued)
	var reportErr *Error
	require.True(t, errors.As(err, &reportErr))

	_, err = Earl(nil, &Properties{}, issued)
	require.True(t, errors.As(err, &reportErr))
	assert.Contains(t, err.Error(), "applicationUri")
}

func TestEarlDescribesApplication(t *testing.T) {
	triples, err := Earl(nil, testProperties(), issued)
	require.NoError(t, err)

	app := rdf.IRI("https://example.org/engine")
	assert.ElementsMatch(t, []rdf.Term{
		rdf.IRI(doapProject), rdf.IRI(earlSoftware), rdf.IRI(earlTestSubject),
	}, objects(triples, app, rdf.RDFType))
	assert.Equal(t, []rdf.Term{rdf.Literal("engine", "")}, objects(triples, app, doapName))
	assert.Equal(t, []rdf.Term{rdf.IRI("http://opensource.org/licenses/MIT")}, objects(triples, app, doapLicense))
	assert.Equal(t, []rdf.Term{rdf.IRI("http://ex.org/spec/S1")}, objects(triples, app, doapImplements))

	releases := objects(triples, app, doapRelease)
	require.Len(t, releases, 1)
	assert.Equal(t, []rdf.Term{rdf.Literal("1.2.3", "")}, objects(triples, releases[0], doapRevision))

	developers := objects(triples, app, doapDeveloper)
	require.Len(t, developers, 2)
	assert.Equal(t, rdf.IRI("https://example.org/ada"), developers[0])
	assert.Equal(t, rdf.KindBlank, developers[1].Kind)
	assert.Equal(t, []rdf.Term{rdf.Literal("Grace", "")}, objects(triples, developers[1], foafName))

	reports := subjects(triples, foafPrimaryTopic, app)
	require.Len(t, reports, 1)
	assert.Equal(t, []rdf.Term{rdf.Literal("2024-03-01T12:30:00Z", rdf.XSDDateTime)},
		objects(triples, reports[0], dcIssued))
}

func TestEarlAssertions(t *testing.T) {
	results := []testcase.Result{
		{URI: "http://ex.org/t1", Name: "t1", OK: true},
		{URI: "http://ex.org/t2", Name: "t2", Detail: "mismatch"},
	}

	triples, err := Earl(results, testProperties(), issued)
	require.NoError(t, err)

	assertions := subjects(triples, rdf.RDFType, rdf.IRI(earlAssertion))
	require.Len(t, assertions, 2)

	for i, want := range []struct {
		test    string
		outcome string
		info    []rdf.Term
	}{
		{test: "http://ex.org/t1", outcome: earlPassed},
		{test: "http://ex.org/t2", outcome: earlFailed, info: []rdf.Term{rdf.Literal("mismatch", "")}},
	} {
		a := assertions[i]
		assert.Equal(t, []rdf.Term{rdf.IRI(want.test)}, objects(triples, a, earlTest))
		assert.Equal(t, []rdf.Term{rdf.IRI("https://example.org/ada")}, objects(triples, a, earlAssertedBy))
		assert.Equal(t, []rdf.Term{rdf.IRI("https://example.org/engine")}, objects(triples, a, earlSubject))
		assert.Equal(t, []rdf.Term{rdf.IRI(earlAutomatic)}, objects(triples, a, earlMode))

		res := objects(triples, a, earlResult)
		require.Len(t, res, 1)
		assert.Equal(t, []rdf.Term{rdf.IRI(want.outcome)}, objects(triples, res[0], earlOutcome))
		assert.Equal(t, want.info, objects(triples, res[0], earlInfo))
	}
}

func TestEarlWithoutAuthorsAssertsAsApplication(t *testing.T) {
	props := &Properties{ApplicationURI: "https://example.org/engine"}
	triples, err := Earl([]testcase.Result{{URI: "http://ex.org/t1", OK: true}}, props, issued)
	require.NoError(t, err)

	assertions := subjects(triples, rdf.RDFType, rdf.IRI(earlAssertion))
	require.Len(t, assertions, 1)
	assert.Equal(t, []rdf.Term{rdf.IRI("https://example.org/engine")}, objects(triples, assertions[0], earlAssertedBy))
	assert.Empty(t, subjects(triples, doapRelease, rdf.IRI("https://example.org/engine")))
}

func TestWriteEarl(t *testing.T) {
	results := []testcase.Result{
		{URI: "http://ex.org/t1", Name: "t1", OK: true},
		{URI: "http://ex.org/t2", Name: "t2", Detail: "mismatch"},
	}
	triples, err := Earl(results, testProperties(), issued)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteEarl(&buf, triples))

	out := buf.String()
	assert.Contains(t, out, "http://ex.org/t1")
	assert.Contains(t, out, "passed")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "mismatch")
}

func TestWriteEarlReparses(t *testing.T) {
	uris := []string{
		"http://ex.org/tests?id=7",
		"http://ex.org/a~b",
		"http://ex.org/v1.",
		"http://ex.org/manifest.ttl#t1",
	}
	var results []testcase.Result
	for _, u := range uris {
		results = append(results, testcase.Result{URI: u, Name: u, OK: true})
	}

	triples, err := Earl(results, testProperties(), issued)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteEarl(&buf, triples))

	parsed, err := rdf.DecoderParser{}.Parse(context.Background(), "http://ex.org/", buf.Bytes(), rdf.FormatTurtle)
	require.NoError(t, err, buf.String())

	var tests []string
	for _, tr := range parsed {
		if tr.Predicate.Value == earlTest {
			tests = append(tests, tr.Object.Value)
		}
	}
	assert.ElementsMatch(t, uris, tests)
}

func TestEarlAnonymousTestIsBlankNode(t *testing.T) {
	results := []testcase.Result{
		{URI: "http://ex.org/manifest.ttl#b0", Anonymous: true, OK: true},
		{URI: "http://ex.org/manifest.ttl#b0", OK: true},
	}

	triples, err := Earl(results, testProperties(), issued)
	require.NoError(t, err)

	assertions := subjects(triples, rdf.RDFType, rdf.IRI(earlAssertion))
	require.Len(t, assertions, 2)

	anon := objects(triples, assertions[0], earlTest)
	require.Len(t, anon, 1)
	assert.Equal(t, rdf.KindBlank, anon[0].Kind)
	assert.Equal(t, []rdf.Term{rdf.IRI("http://ex.org/manifest.ttl#b0")}, objects(triples, assertions[1], earlTest))

	var buf bytes.Buffer
	require.NoError(t, WriteEarl(&buf, triples))

	parsed, err := rdf.DecoderParser{}.Parse(context.Background(), "http://ex.org/", buf.Bytes(), rdf.FormatTurtle)
	require.NoError(t, err)
	var kinds []rdf.TermKind
	for _, tr := range parsed {
		if tr.Predicate.Value == earlTest {
			kinds = append(kinds, tr.Object.Kind)
		}
	}
	assert.ElementsMatch(t, []rdf.TermKind{rdf.KindBlank, rdf.KindIRI}, kinds)
}
