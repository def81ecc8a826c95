package d2

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matzehuels/deptree/pkg/graph"
)

// header fixes the layout direction of every exported diagram.
const header = "direction: right"

// Export converts g to D2 source.
//
// The document starts with the direction header, followed by one declaration
// per node (so isolated packages still appear) and one line per unique edge.
// Forward edges point from a package to its dependency; Reverse swaps them so
// arrows point from a dependency to its dependents. Edges are deduplicated on
// their identifier pair and written in sorted order.
func Export(g *graph.Graph, dir graph.Direction) string {
	ids := Identifiers(g.Names())

	type pair struct{ from, to string }
	edges := mapset.NewThreadUnsafeSet[pair]()
	for _, e := range g.Edges() {
		from, to := ids[e.From], ids[e.To]
		if dir == graph.Reverse {
			from, to = to, from
		}
		edges.Add(pair{from, to})
	}

	sorted := edges.ToSlice()
	slices.SortFunc(sorted, func(a, b pair) int {
		if c := strings.Compare(a.from, b.from); c != 0 {
			return c
		}
		return strings.Compare(a.to, b.to)
	})

	var b strings.Builder
	b.WriteString(header + "\n\n")
	for _, name := range g.Names() {
		fmt.Fprintf(&b, "%s: %s\n", ids[name], label(name))
	}
	b.WriteString("\n")
	for _, e := range sorted {
		fmt.Fprintf(&b, "%s -> %s\n", e.from, e.to)
	}
	return b.String()
}

// Sanitize maps a package name to a D2 identifier: every character outside
// [A-Za-z0-9_] becomes '_', and an empty result becomes "_".
func Sanitize(name string) string {
	id := make([]byte, 0, len(name))
	for _, r := range name {
		if r < 0x80 && (isAlnum(byte(r)) || r == '_') {
			id = append(id, byte(r))
		} else {
			id = append(id, '_')
		}
	}
	if len(id) == 0 {
		return "_"
	}
	return string(id)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Identifiers assigns a unique D2 identifier to every name.
//
// Names are processed in sorted order. The first name that sanitizes to a
// given identifier keeps it; later names with the same sanitized form get a
// suffix derived from the SHA-256 of the name ("serde_json_1a2b3c4d"). If that
// is taken too, a counter is appended ("serde_json_1a2b3c4d_2"). The
// assignment is stable across runs and insertion orders.
func Identifiers(names []string) map[string]string {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	ids := make(map[string]string, len(sorted))
	taken := mapset.NewThreadUnsafeSet[string]()
	for _, name := range sorted {
		id := Sanitize(name)
		if taken.Contains(id) {
			base := id + "_" + shortHash(name)
			id = base
			for n := 2; taken.Contains(id); n++ {
				id = fmt.Sprintf("%s_%d", base, n)
			}
		}
		taken.Add(id)
		ids[name] = id
	}
	return ids
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:4])
}

// label quotes display names that D2 would otherwise misread.
func label(name string) string {
	if name == "" || strings.ContainsAny(name, ":;{}|#'\"\\\n") || strings.TrimSpace(name) != name {
		return fmt.Sprintf("%q", name)
	}
	return name
}
