package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/rdftest/internal/engine"
	"github.com/roach88/rdftest/internal/testcase"
)

type fakeCase struct {
	uri  string
	anon bool
}

func (f fakeCase) Info() testcase.Info { return testcase.Info{URI: f.uri, Anonymous: f.anon} }

func (f fakeCase) Run(context.Context, engine.Engine) (testcase.Outcome, error) {
	return testcase.Outcome{OK: true}, nil
}

func cases(ids ...string) []testcase.TestCase {
	out := make([]testcase.TestCase, len(ids))
	for i, id := range ids {
		out[i] = fakeCase{uri: id}
	}
	return out
}

func TestFlatten_OwnEntriesBeforeIncludes(t *testing.T) {
	c := &Manifest{Entries: cases("c1")}
	a := &Manifest{Entries: cases("a1", "a2"), Includes: []*Manifest{c}}
	b := &Manifest{Entries: cases("b1")}
	root := &Manifest{Entries: cases("r1"), Includes: []*Manifest{a, b}}

	assert.Equal(t, []string{"r1", "a1", "a2", "c1", "b1"}, uris(Flatten(root)))
}

func TestFlatten_SharedAndDuplicateEntries(t *testing.T) {
	shared := &Manifest{Entries: cases("s1")}
	a := &Manifest{Entries: cases("a1", "dup"), Includes: []*Manifest{shared}}
	b := &Manifest{Entries: cases("dup", "b1"), Includes: []*Manifest{shared}}
	root := &Manifest{Includes: []*Manifest{a, b}}

	assert.Equal(t, []string{"a1", "dup", "s1", "b1"}, uris(Flatten(root)))
}

func TestFlatten_Cycle(t *testing.T) {
	root := &Manifest{Entries: cases("r1")}
	child := &Manifest{Entries: cases("c1"), Includes: []*Manifest{root}}
	root.Includes = []*Manifest{child}

	assert.Equal(t, []string{"r1", "c1"}, uris(Flatten(root)))
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(&Manifest{}))
}

func TestFlatten_AnonymousEntryDoesNotShadowIRI(t *testing.T) {
	label := "http://ex.org/manifest.ttl#b0"
	a := &Manifest{Entries: []testcase.TestCase{fakeCase{uri: label, anon: true}, fakeCase{uri: label, anon: true}}}
	root := &Manifest{Entries: cases(label), Includes: []*Manifest{a}}

	got := Flatten(root)
	assert.Equal(t, []string{label, label}, uris(got))
	assert.False(t, got[0].Info().Anonymous)
	assert.True(t, got[1].Info().Anonymous)
}
