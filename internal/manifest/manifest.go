package manifest

import (
	"github.com/roach88/rdftest/internal/testcase"
)

// Manifest is one resolved test manifest.
type Manifest struct {
	URI     string
	Label   string
	Comment string
	// Specifications apply to every entry of this manifest and of the
	// manifests it includes.
	Specifications []string
	Entries        []testcase.TestCase
	Includes       []*Manifest
	// Failures lists the documents that could not be loaded. It is only
	// set on the root manifest.
	Failures []LoadFailure
}

// Flatten returns the test cases of m in document order: own entries first,
// then the flattened entries of each include in declaration order.
//
// Each manifest is visited once, so shared and cyclic includes contribute
// their entries a single time. A test identifier listed by several
// manifests keeps its first position.
func Flatten(m *Manifest) []testcase.TestCase {
	var out []testcase.TestCase
	visited := make(map[*Manifest]bool)
	emitted := make(map[string]bool)

	var walk func(*Manifest)
	walk = func(m *Manifest) {
		if visited[m] {
			return
		}
		visited[m] = true

		for _, tc := range m.Entries {
			info := tc.Info()
			key := info.URI
			if info.Anonymous {
				key = "_:" + key
			}
			if emitted[key] {
				continue
			}
			emitted[key] = true
			out = append(out, tc)
		}
		for _, inc := range m.Includes {
			walk(inc)
		}
	}
	walk(m)
	return out
}
