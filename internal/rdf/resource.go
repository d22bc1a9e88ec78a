package rdf

// Resource is one node of a Graph together with its outgoing properties.
type Resource struct {
	Term Term

	graph      *Graph
	properties map[string][]*Resource
}

// ID returns the identifier the resource is keyed by: the IRI for named
// nodes, "_:label" for blank nodes, and the N-Triples form for literals.
func (r *Resource) ID() string {
	return r.Term.key()
}

// Value returns the IRI, blank label, or lexical form of the resource.
func (r *Resource) Value() string {
	return r.Term.Value
}

// IsIRI reports whether the resource is a named node.
func (r *Resource) IsIRI() bool {
	return r.Term.Kind == KindIRI
}

// IsLiteral reports whether the resource is a literal.
func (r *Resource) IsLiteral() bool {
	return r.Term.Kind == KindLiteral
}

// Property returns the values of pred in the order they were imported.
func (r *Resource) Property(pred string) []*Resource {
	if r.graph == nil {
		return nil
	}
	r.graph.mu.RLock()
	defer r.graph.mu.RUnlock()

	vals := r.properties[pred]
	if len(vals) == 0 {
		return nil
	}
	out := make([]*Resource, len(vals))
	copy(out, vals)
	return out
}

// First returns the first value of pred, or nil.
func (r *Resource) First(pred string) *Resource {
	vals := r.Property(pred)
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}

// Text returns the value of pred as a string, or "" if absent.
func (r *Resource) Text(pred string) string {
	if v := r.First(pred); v != nil {
		return v.Value()
	}
	return ""
}

// Texts returns the values of pred as strings.
func (r *Resource) Texts(pred string) []string {
	vals := r.Property(pred)
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.Value())
	}
	return out
}

// Types returns the rdf:type IRIs of the resource.
func (r *Resource) Types() []string {
	var out []string
	for _, v := range r.Property(RDFType) {
		if v.IsIRI() {
			out = append(out, v.Value())
		}
	}
	return out
}

// HasType reports whether typ is among the resource's rdf:type values.
func (r *Resource) HasType(typ string) bool {
	for _, t := range r.Types() {
		if t == typ {
			return true
		}
	}
	return false
}

// List walks an RDF collection starting at r.
//
// It returns false if r is not the head of a well-formed list: a node
// without rdf:first, a missing rdf:rest, or a rest chain that loops.
func (r *Resource) List() ([]*Resource, bool) {
	var items []*Resource
	seen := make(map[*Resource]bool)

	for cur := r; ; {
		if cur.IsIRI() && cur.Value() == RDFNil {
			return items, true
		}
		if seen[cur] {
			return nil, false
		}
		seen[cur] = true

		first := cur.First(RDFFirst)
		rest := cur.First(RDFRest)
		if first == nil || rest == nil {
			return nil, false
		}
		items = append(items, first)
		cur = rest
	}
}
