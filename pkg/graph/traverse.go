package graph

import (
	"fmt"
	"iter"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Direction selects which edges a walk follows.
type Direction int

const (
	// Forward follows dependencies: "what does this package depend on".
	Forward Direction = iota
	// Reverse follows dependents: "who depends on this package".
	Reverse
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// ParseDirection converts "forward" or "reverse" (case-insensitive) to a
// Direction. The empty string means Forward.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward":
		return Forward, nil
	case "reverse":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("invalid direction %q (must be 'forward' or 'reverse')", s)
	}
}

// Status describes how a walk encountered a package.
type Status int

const (
	// StatusExpanded marks the first encounter; the package's neighbors follow.
	StatusExpanded Status = iota
	// StatusCycle marks a package that is already on the current path.
	StatusCycle
	// StatusVisited marks a package expanded earlier through another branch.
	StatusVisited
)

// String returns "expanded", "cycle" or "visited".
func (s Status) String() string {
	switch s {
	case StatusCycle:
		return "cycle"
	case StatusVisited:
		return "visited"
	default:
		return "expanded"
	}
}

// MarshalText encodes the status as its String form.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Record is one line of a traversal: a package at a given depth.
type Record struct {
	Depth  int    `json:"depth"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// WalkOptions configures a traversal.
type WalkOptions struct {
	Direction Direction // Forward (default) or Reverse
	Exclude   string    // substring filter; blank disables filtering
}

// Walk returns a depth-first, pre-order sequence of records starting at root.
//
// Packages whose name contains the (whitespace-trimmed) exclusion filter are
// skipped together with their subtrees. A package already on the current path
// yields a StatusCycle record and a package already expanded elsewhere yields a
// StatusVisited record; neither is expanded again, so the walk terminates on
// any graph. A root that is not in the graph yields a single record.
//
// The sequence is lazy and can be ranged over any number of times; each
// iteration walks the graph from scratch, rebuilding the reverse index for
// Reverse walks.
func (g *Graph) Walk(root string, opts WalkOptions) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		walk(root, g.neighbors(opts.Direction), excluder(opts.Exclude), yield)
	}
}

// Tree is shorthand for a Forward walk from root.
func (g *Graph) Tree(root, exclude string) iter.Seq[Record] {
	return g.Walk(root, WalkOptions{Direction: Forward, Exclude: exclude})
}

// ReverseTree is shorthand for a Reverse walk from target.
func (g *Graph) ReverseTree(target, exclude string) iter.Seq[Record] {
	return g.Walk(target, WalkOptions{Direction: Reverse, Exclude: exclude})
}

func (g *Graph) neighbors(dir Direction) func(string) []string {
	if dir == Reverse {
		return g.ReverseIndex().Dependents
	}
	return g.Dependencies
}

func excluder(filter string) func(string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return func(string) bool { return false }
	}
	return func(name string) bool { return strings.Contains(name, filter) }
}

// frame is a unit of pending work. A leave frame takes its package off the
// current path once all of the package's neighbors have been processed.
type frame struct {
	name  string
	depth int
	leave bool
}

func walk(root string, next func(string) []string, excluded func(string) bool, yield func(Record) bool) {
	visited := mapset.NewThreadUnsafeSet[string]()
	onPath := mapset.NewThreadUnsafeSet[string]()
	stack := []frame{{name: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.leave {
			onPath.Remove(f.name)
			continue
		}
		if excluded(f.name) {
			continue
		}

		r := Record{Depth: f.depth, Name: f.name}
		switch {
		case onPath.Contains(f.name):
			r.Status = StatusCycle
		case visited.Contains(f.name):
			r.Status = StatusVisited
		}
		if !yield(r) {
			return
		}
		if r.Status != StatusExpanded {
			continue
		}

		visited.Add(f.name)
		onPath.Add(f.name)
		stack = append(stack, frame{name: f.name, leave: true})
		children := next(f.name)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{name: children[i], depth: f.depth + 1})
		}
	}
}
