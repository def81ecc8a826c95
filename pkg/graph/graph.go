package graph

import (
	"maps"
	"slices"
)

// Node is a package in the dependency graph together with its direct
// dependencies. Dependencies keep insertion order and hold no duplicates.
type Node struct {
	Name         string
	Dependencies []string
}

// Edge is a directed dependency from From (the dependent) to To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph over package names.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]*Node
	order []string // node names in insertion order
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// EnsureNode inserts an empty node for name if it does not exist yet.
// Calling it for an existing node is a no-op.
func (g *Graph) EnsureNode(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &Node{Name: name}
	g.order = append(g.order, name)
}

// AddEdge records that pkg depends on dep. Both endpoints are created if
// missing. Adding an edge that already exists has no effect; self-edges are
// allowed and form a one-node cycle.
func (g *Graph) AddEdge(pkg, dep string) {
	g.EnsureNode(pkg)
	g.EnsureNode(dep)
	n := g.nodes[pkg]
	if !slices.Contains(n.Dependencies, dep) {
		n.Dependencies = append(n.Dependencies, dep)
	}
}

// SetDependencies replaces the dependency list of name wholesale.
// Duplicates in deps are dropped (first occurrence wins) and every listed
// dependency is created as a node. Unlike AddEdge, previously recorded
// dependencies of name that are not in deps are discarded.
func (g *Graph) SetDependencies(name string, deps []string) {
	g.EnsureNode(name)
	list := make([]string, 0, len(deps))
	for _, d := range deps {
		g.EnsureNode(d)
		if !slices.Contains(list, d) {
			list = append(list, d)
		}
	}
	g.nodes[name].Dependencies = list
}

// Load adds every package of mapping and one edge per listed dependency.
// Packages are applied in sorted order so repeated loads of the same mapping
// build identical stores.
func (g *Graph) Load(mapping map[string][]string) {
	_ = g.Apply(func(staged *Graph) error {
		for _, pkg := range slices.Sorted(maps.Keys(mapping)) {
			staged.EnsureNode(pkg)
			for _, dep := range mapping[pkg] {
				staged.AddEdge(pkg, dep)
			}
		}
		return nil
	})
}

// Apply runs fn against a staged copy of the graph. If fn returns nil the
// staged copy replaces the contents of g; otherwise g is left untouched and
// the error is returned.
func (g *Graph) Apply(fn func(staged *Graph) error) error {
	staged := g.Clone()
	if err := fn(staged); err != nil {
		return err
	}
	g.nodes = staged.nodes
	g.order = staged.order
	return nil
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make(map[string]*Node, len(g.nodes)),
		order: slices.Clone(g.order),
	}
	for name, n := range g.nodes {
		c.nodes[name] = &Node{Name: n.Name, Dependencies: slices.Clone(n.Dependencies)}
	}
	return c
}

// Has reports whether name is a node of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Node returns a copy of the node called name.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, false
	}
	return Node{Name: n.Name, Dependencies: slices.Clone(n.Dependencies)}, true
}

// Dependencies returns the direct dependencies of name, or nil if the node
// does not exist. The returned slice must not be modified.
func (g *Graph) Dependencies(name string) []string {
	if n, ok := g.nodes[name]; ok {
		return n.Dependencies
	}
	return nil
}

// Names returns all node names in insertion order.
func (g *Graph) Names() []string { return slices.Clone(g.order) }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.Dependencies)
	}
	return count
}

// Edges returns every edge, ordered by the insertion order of the dependent
// and then by dependency order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, name := range g.order {
		for _, dep := range g.nodes[name].Dependencies {
			edges = append(edges, Edge{From: name, To: dep})
		}
	}
	return edges
}

// Reversed returns a new graph with every edge flipped. Nodes keep their
// insertion order, so walking the reversed graph forward yields the same
// records as a reverse walk of g.
func (g *Graph) Reversed() *Graph {
	r := New()
	for _, name := range g.order {
		r.EnsureNode(name)
	}
	for _, e := range g.Edges() {
		r.AddEdge(e.To, e.From)
	}
	return r
}

// Roots returns the nodes nothing depends on, in insertion order.
func (g *Graph) Roots() []string {
	rev := g.ReverseIndex()
	var roots []string
	for _, name := range g.order {
		if len(rev[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}
