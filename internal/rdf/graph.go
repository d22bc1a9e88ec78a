package rdf

import (
	"sync"
)

// Graph is a merged resource graph built from one or more documents.
//
// Import is safe for concurrent use, so documents fetched in parallel can be
// merged as they arrive. Resources read through the graph take the same lock.
type Graph struct {
	mu        sync.RWMutex
	resources map[string]*Resource
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{resources: make(map[string]*Resource)}
}

// Import merges the triples of one document into the graph.
//
// Blank node labels are rewritten to be unique to doc, so two documents that
// both use _:b0 do not collapse into one node. Duplicate statements are
// stored once.
func (g *Graph) Import(doc string, triples []Triple) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, t := range triples {
		subj := g.node(scope(doc, t.Subject))
		obj := g.node(scope(doc, t.Object))
		pred := t.Predicate.Value

		if subj.properties == nil {
			subj.properties = make(map[string][]*Resource)
		}
		if containsTerm(subj.properties[pred], obj.Term) {
			continue
		}
		subj.properties[pred] = append(subj.properties[pred], obj)
	}
}

// Resource returns the node with the given absolute identifier.
// The second return value is false if no document mentioned it.
func (g *Graph) Resource(id string) (*Resource, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.resources[id]
	return r, ok
}

// Len returns the number of IRI and blank nodes in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.resources)
}

// node returns the resource for t, creating it if needed.
// Literals are never shared. Callers must hold the write lock.
func (g *Graph) node(t Term) *Resource {
	if t.Kind == KindLiteral {
		return &Resource{graph: g, Term: t}
	}
	k := t.key()
	if r, ok := g.resources[k]; ok {
		return r
	}
	r := &Resource{graph: g, Term: t}
	g.resources[k] = r
	return r
}

func scope(doc string, t Term) Term {
	if t.Kind != KindBlank {
		return t
	}
	return Blank(doc + "#" + t.Value)
}

func containsTerm(rs []*Resource, t Term) bool {
	for _, r := range rs {
		if r.Term == t {
			return true
		}
	}
	return false
}
