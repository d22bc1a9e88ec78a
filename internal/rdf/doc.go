// Package rdf provides the navigable resource graph that test manifests are
// read from.
//
// Documents are parsed into triples by a Parser and merged into one Graph
// keyed by absolute identifier. A resource that several documents talk about
// is a single node in the graph. Blank nodes are scoped to the document that
// introduced them.
//
// The only syntax dependency lives in parse.go and encode.go; the rest of the
// module works on the Term and Triple values defined here.
package rdf
