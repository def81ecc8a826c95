package graph

// ReverseIndex maps every package to the packages that depend on it directly.
type ReverseIndex map[string][]string

// ReverseIndex builds the inverse adjacency of the graph. Dependents are
// listed in the insertion order of the depending node, not in the order a
// manifest declares them. [Graph.Load] inserts packages sorted by name, so
// for {A: [B, C], B: [C]} the dependents of C are [A, B] and a reverse walk
// from C yields C, A, B, A (visited). The index is a snapshot: it is not
// updated when the graph changes.
func (g *Graph) ReverseIndex() ReverseIndex {
	rev := make(ReverseIndex, len(g.nodes))
	for _, name := range g.order {
		for _, dep := range g.nodes[name].Dependencies {
			rev[dep] = append(rev[dep], name)
		}
	}
	return rev
}

// Dependents returns the direct dependents of name.
func (r ReverseIndex) Dependents(name string) []string { return r[name] }
