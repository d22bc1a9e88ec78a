// Package testcase turns test entries of a manifest into executable test
// cases.
//
// A Registry maps test type IRIs to Handlers. Dispatch is deterministic: the
// first registry entry whose type the resource declares, and whose handler
// accepts the resource, builds the test case. Resources no handler claims
// become Unsupported test cases, and handler construction failures become
// Errored test cases, so building a suite never fails on a single entry.
//
// Registries are immutable values. Callers that add test semantics build a
// new registry with Extend and pass it to the resolver.
package testcase
