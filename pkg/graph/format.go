package graph

import (
	"bufio"
	"io"
	"iter"
	"slices"
	"strings"
)

// TreeStyle selects how records are drawn as text.
type TreeStyle int

const (
	// StylePlain indents two spaces per depth level.
	StylePlain TreeStyle = iota
	// StyleASCII draws branch connectors between siblings.
	StyleASCII
)

const indent = "  "

// Label returns the package name followed by its status marker, if any:
// "name", "name (cycle)" or "name (visited)".
func (r Record) Label() string {
	switch r.Status {
	case StatusCycle:
		return r.Name + " (cycle)"
	case StatusVisited:
		return r.Name + " (visited)"
	default:
		return r.Name
	}
}

// FormatRecord renders r as a plain tree line: two spaces per depth level
// followed by the label.
func FormatRecord(r Record) string {
	return strings.Repeat(indent, r.Depth) + r.Label()
}

// Format renders records as plain tree lines.
func Format(records iter.Seq[Record]) []string {
	var lines []string
	for r := range records {
		lines = append(lines, FormatRecord(r))
	}
	return lines
}

// FormatASCII renders records with box-drawing connectors:
//
//	app
//	├── serde
//	└── tokio
//	    └── mio
//
// The whole sequence is consumed before the first line is produced because a
// connector depends on whether a later sibling exists.
func FormatASCII(records iter.Seq[Record]) []string {
	rs := slices.Collect(records)
	last := lastSiblings(rs)

	lines := make([]string, 0, len(rs))
	var open []bool // open[d] reports whether depth d still has siblings to come
	for i, r := range rs {
		if r.Depth == 0 {
			lines = append(lines, r.Label())
			continue
		}
		var b strings.Builder
		for d := 1; d < r.Depth; d++ {
			if d < len(open) && open[d] {
				b.WriteString("│   ")
			} else {
				b.WriteString("    ")
			}
		}
		if last[i] {
			b.WriteString("└── ")
		} else {
			b.WriteString("├── ")
		}
		b.WriteString(r.Label())
		lines = append(lines, b.String())

		for len(open) <= r.Depth {
			open = append(open, false)
		}
		open[r.Depth] = !last[i]
	}
	return lines
}

// lastSiblings reports, for each record, whether no later sibling follows it.
func lastSiblings(rs []Record) []bool {
	last := make([]bool, len(rs))
	seen := map[int]bool{}
	for i := len(rs) - 1; i >= 0; i-- {
		d := rs[i].Depth
		last[i] = !seen[d]
		seen[d] = true
		for k := range seen {
			if k > d {
				delete(seen, k)
			}
		}
	}
	return last
}

// WriteTree writes records to w, one line each, in the given style.
func WriteTree(w io.Writer, records iter.Seq[Record], style TreeStyle) error {
	var lines []string
	if style == StyleASCII {
		lines = FormatASCII(records)
	} else {
		lines = Format(records)
	}
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
