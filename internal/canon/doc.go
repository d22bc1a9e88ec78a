// Package canon provides canonical JSON encoding and domain-separated
// content digests.
//
// Canonical JSON follows RFC 8785 for the subset of values this module
// hashes: strings, integers, booleans, arrays and objects. Object keys are
// ordered by UTF-16 code units, strings are NFC normalized, and floats and
// null are rejected so that a digest never depends on number formatting.
package canon
