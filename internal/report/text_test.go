package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdftest/internal/testcase"
)

func assertGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, got)
}

func mixedResults() []testcase.Result {
	return []testcase.Result{
		{
			URI:            "http://ex.org/t1",
			Name:           "Turtle positive",
			Specifications: []string{"http://ex.org/spec/S1"},
			OK:             true,
			Duration:       12 * time.Millisecond,
		},
		{
			URI:            "http://ex.org/t2",
			Name:           "Bad query",
			Comment:        "Checks\n   parsing",
			Approval:       "http://www.w3.org/2001/sw/DataAccess/tests/test-dawg#Approved",
			Specifications: []string{"http://ex.org/spec/S1", "http://ex.org/spec/S2"},
			Detail:         "engine rejected a valid query: rejected: line 1\nunexpected token",
			Duration:       3 * time.Millisecond,
		},
		{
			URI:    "http://ex.org/t3",
			Name:   "Unsupported",
			Detail: "test type not supported: http://ex.org/Eval",
		},
	}
}

func TestWriteTextDetailed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, mixedResults(), false))
	assertGolden(t, "text_detailed", buf.Bytes())
}

func TestWriteTextSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, mixedResults(), true))
	assertGolden(t, "text_summary", buf.Bytes())
}

func TestWriteTextAllPassed(t *testing.T) {
	results := []testcase.Result{
		{URI: "http://ex.org/a", Name: "A", OK: true},
		{URI: "http://ex.org/b", Name: "B", OK: true, Duration: 3500 * time.Microsecond},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, results, false))
	assertGolden(t, "text_all_passed", buf.Bytes())
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil, true))
	assert.Equal(t, "✔ 0 / 0 tests succeeded!\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteText(&buf, nil, false))
	assert.Equal(t, "\n✔ 0 / 0 tests succeeded!\n", buf.String())
}

func TestWriteTextOneFailure(t *testing.T) {
	results := []testcase.Result{
		{URI: "http://ex.org/t1", Name: "t1", OK: true},
		{URI: "http://ex.org/t2", Name: "t2", Detail: "mismatch"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, results, false))

	out := buf.String()
	assert.Contains(t, out, "✖ 1 / 2 tests succeeded!")
	assert.Contains(t, out, "  Detail: mismatch\n  Link: http://ex.org/t2\n")
	assert.NotContains(t, out, "Comment:")
}
