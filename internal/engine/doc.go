// Package engine defines the boundary to the implementation under test.
//
// An engine is an opaque capability bundle. Test handlers type-assert the
// capability they need (QueryParser, UpdateParser, RDFParser) and report a
// negative result when it is missing, so an engine only implements what it
// supports.
//
// Verdicts and failures are kept apart: a *RejectedError means the engine
// examined the input and refused it, which a negative syntax test expects.
// Any other error means no verdict was reached.
//
// Process adapts an external executable to all three capabilities using a
// small command protocol:
//
//	<path> parse <kind> --base <iri>
//
// The document is written to stdin. Exit status 0 accepts the input, exit
// status 1 rejects it with stderr as the message, and anything else is a
// *ProtocolError.
package engine
