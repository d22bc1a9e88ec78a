// Package manifest resolves a test manifest and everything it includes into
// a tree of executable test cases.
//
// Resolution runs in two phases. The load phase fetches the root document,
// merges it into a shared resource graph and loads every mf:include target
// concurrently. Every document is loaded at most once per resolution, so
// a manifest included from two parents is fetched once and cyclic include
// chains terminate. A sub-document that cannot be fetched or parsed is
// logged and contributes nothing; it never fails the resolution.
//
// The materialize phase walks the merged graph from the root resource and
// builds one Manifest per manifest resource. Test entries are built through
// the handler registry. A manifest reached through two include paths is a
// single *Manifest shared by both parents.
package manifest
