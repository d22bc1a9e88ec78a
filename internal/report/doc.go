// Package report renders run results.
//
// WriteText produces the human readable report, Earl the attestation graph
// in the W3C Evaluation and Report Language, and WriteEarl its Turtle
// serialization. The EARL tool and author description comes from a
// properties file, which can be derived from a package.json descriptor.
package report
