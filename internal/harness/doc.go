// Package harness runs a resolved test suite against an engine.
//
// A run resolves the manifest, flattens it into document order, applies the
// specification and test pattern filters, and executes the remaining test
// cases concurrently. Results are returned in flattened order regardless of
// completion order, so two runs over unchanged input produce the same
// sequence. A test case that fails to reach a verdict, by error or panic,
// yields a negative result; only resolution failures fail the run.
package harness
