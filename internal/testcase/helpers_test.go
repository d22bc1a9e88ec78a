package testcase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rdftest/internal/rdf"
)

const base = "http://ex.org/suite/manifest.ttl"

const suiteTTL = `
@prefix mf:    <http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#> .
@prefix qt:    <http://www.w3.org/2001/sw/DataAccess/tests/test-query#> .
@prefix rdft:  <http://www.w3.org/ns/rdftest#> .
@prefix rdfs:  <http://www.w3.org/2000/01/rdf-schema#> .
@prefix dawgt: <http://www.w3.org/2001/sw/DataAccess/tests/test-dawg#> .

<#q1> a mf:PositiveSyntaxTest11 ;
    mf:name "q1" ;
    rdfs:comment "a valid query" ;
    dawgt:approval dawgt:Approved ;
    mf:specification <http://www.w3.org/TR/sparql11-query/> ;
    mf:action <q1.rq> .

<#q2> a mf:NegativeSyntaxTest11 ; mf:name "q2" ; mf:action <q2.rq> .
<#q3> a mf:PositiveSyntaxTest ; mf:name "q3" ; mf:action [ qt:query <q1.rq> ] .
<#u1> a mf:PositiveUpdateSyntaxTest11 ; mf:name "u1" ; mf:action <u1.ru> .
<#t1> a rdft:TestTurtleNegativeSyntax ; mf:name "t1" ; mf:action <t1.ttl> .
<#t2> a rdft:TestNTriplesPositiveSyntax ; rdfs:label "t2 label" ; mf:action <t2.nt> .
<#e1> a mf:QueryEvaluationTest ; mf:name "e1" .
<#m1> a mf:PositiveSyntaxTest11 ; mf:name "m1" ; mf:action <missing.rq> .
<#n1> a mf:PositiveSyntaxTest11 ; mf:name "n1" .
<#x1> mf:name "x1" .
`

func loadSuite(t *testing.T) *rdf.Graph {
	t.Helper()
	triples, err := rdf.DecoderParser{}.Parse(context.Background(), base, []byte(suiteTTL), rdf.FormatTurtle)
	require.NoError(t, err)
	g := rdf.NewGraph()
	g.Import(base, triples)
	return g
}

func resource(t *testing.T, g *rdf.Graph, fragment string) *rdf.Resource {
	t.Helper()
	r, ok := g.Resource(base + "#" + fragment)
	require.True(t, ok, "resource #%s", fragment)
	return r
}
