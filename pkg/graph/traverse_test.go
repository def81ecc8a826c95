package graph

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scenarioGraph builds {A: [B, C], B: [C], C: []}.
func scenarioGraph() *Graph {
	g := New()
	g.Load(map[string][]string{
		"A": {"B", "C"},
		"B": {"C"},
		"C": {},
	})
	return g
}

func lines(g *Graph, root string, opts WalkOptions) []string {
	return Format(g.Walk(root, opts))
}

func TestWalkForwardSharedSubtree(t *testing.T) {
	got := lines(scenarioGraph(), "A", WalkOptions{})
	want := []string{"A", "  B", "    C", "  C (visited)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("forward walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkForwardCycle(t *testing.T) {
	g := New()
	g.Load(map[string][]string{"A": {"B"}, "B": {"A"}})

	got := lines(g, "A", WalkOptions{})
	want := []string{"A", "  B", "    A (cycle)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cycle walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkReverse(t *testing.T) {
	// B -> C is inserted before A -> C, so C's dependents are [B, A].
	g := New()
	g.AddEdge("B", "C")
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")

	got := lines(g, "C", WalkOptions{Direction: Reverse})
	want := []string{"C", "  B", "    A", "  A (visited)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reverse walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkReverseAfterLoad(t *testing.T) {
	// Load applies packages in sorted order, so C's dependents are [A, B].
	got := lines(scenarioGraph(), "C", WalkOptions{Direction: Reverse})
	want := []string{"C", "  A", "  B", "    A (visited)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reverse walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkExclude(t *testing.T) {
	tests := []struct {
		name    string
		exclude string
		want    []string
	}{
		{"prunes matching node", "C", []string{"A", "  B"}},
		{"filter is trimmed", "  C\t", []string{"A", "  B"}},
		{"blank filter disables", "   ", []string{"A", "  B", "    C", "  C (visited)"}},
		{"prunes root", "A", nil},
		{"substring match", "B", []string{"A", "  C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lines(scenarioGraph(), "A", WalkOptions{Exclude: tt.exclude})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalkExcludePrunesSubtree(t *testing.T) {
	// serde-derive is reachable only through serde; excluding "serde" must hide both.
	g := New()
	g.Load(map[string][]string{
		"app":   {"serde", "tokio"},
		"serde": {"serde-derive", "proc-macro2"},
		"tokio": {"mio"},
	})

	got := lines(g, "app", WalkOptions{Exclude: "serde"})
	want := []string{"app", "  tokio", "    mio"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	for _, l := range got {
		if strings.Contains(l, "proc-macro2") {
			t.Errorf("descendant of pruned node was printed: %q", l)
		}
	}
}

func TestWalkMissingRoot(t *testing.T) {
	g := New()
	got := slices.Collect(g.Walk("ghost", WalkOptions{}))
	want := []Record{{Depth: 0, Name: "ghost", Status: StatusExpanded}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	rev := slices.Collect(g.Walk("ghost", WalkOptions{Direction: Reverse}))
	if diff := cmp.Diff(want, rev); diff != "" {
		t.Errorf("reverse mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSelfLoop(t *testing.T) {
	g := New()
	g.AddEdge("a", "a")
	got := lines(g, "a", WalkOptions{})
	want := []string{"a", "  a (cycle)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkLongCycle(t *testing.T) {
	g := New()
	const n = 50
	for i := range n {
		g.AddEdge(fmt.Sprintf("p%d", i), fmt.Sprintf("p%d", (i+1)%n))
	}
	records := slices.Collect(g.Walk("p0", WalkOptions{}))
	if len(records) != n+1 {
		t.Fatalf("got %d records, want %d", len(records), n+1)
	}
	last := records[len(records)-1]
	if last.Name != "p0" || last.Status != StatusCycle || last.Depth != n {
		t.Errorf("last record = %+v, want p0 cycle at depth %d", last, n)
	}
}

func TestWalkDeepChainNoRecursionLimit(t *testing.T) {
	g := New()
	const n = 100000
	for i := range n - 1 {
		g.AddEdge(fmt.Sprintf("p%d", i), fmt.Sprintf("p%d", i+1))
	}
	count := 0
	for range g.Walk("p0", WalkOptions{}) {
		count++
	}
	if count != n {
		t.Errorf("walked %d records, want %d", count, n)
	}
}

func TestWalkExpandsEachNodeOnce(t *testing.T) {
	g := New()
	g.Load(map[string][]string{
		"a": {"b", "c", "d"},
		"b": {"c", "d", "a"},
		"c": {"d", "b"},
		"d": {"a", "d"},
	})

	expanded := map[string]int{}
	for r := range g.Walk("a", WalkOptions{}) {
		if r.Status == StatusExpanded {
			expanded[r.Name]++
		}
	}
	for name, n := range expanded {
		if n != 1 {
			t.Errorf("%s expanded %d times, want 1", name, n)
		}
	}
	if len(expanded) != 4 {
		t.Errorf("expanded %d nodes, want 4", len(expanded))
	}
}

func TestReverseEqualsForwardOnReversedGraph(t *testing.T) {
	graphs := []map[string][]string{
		{"A": {"B", "C"}, "B": {"C"}, "C": {}},
		{"A": {"B"}, "B": {"A"}},
		{"a": {"b", "c", "d"}, "b": {"c", "d", "a"}, "c": {"d", "b"}, "d": {"a", "d"}},
		{"x": {"y"}, "z": {"y"}, "y": {"w"}, "w": {"x"}},
	}
	for i, m := range graphs {
		g := New()
		g.Load(m)
		r := g.Reversed()
		for _, target := range g.Names() {
			for _, exclude := range []string{"", "b", "y"} {
				rev := slices.Collect(g.Walk(target, WalkOptions{Direction: Reverse, Exclude: exclude}))
				fwd := slices.Collect(r.Walk(target, WalkOptions{Exclude: exclude}))
				if diff := cmp.Diff(fwd, rev); diff != "" {
					t.Errorf("graph %d target %s exclude %q (-forward +reverse):\n%s", i, target, exclude, diff)
				}
			}
		}
	}
}

func TestWalkIsRestartable(t *testing.T) {
	seq := scenarioGraph().Walk("A", WalkOptions{})
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second iteration differs (-first +second):\n%s", diff)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	var got []string
	for r := range scenarioGraph().Walk("A", WalkOptions{}) {
		got = append(got, r.Name)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("got %v, want [A B]", got)
	}
}

func TestReverseWalkSeesLaterEdges(t *testing.T) {
	g := scenarioGraph()
	seq := g.ReverseTree("C", "")
	before := len(slices.Collect(seq))
	g.AddEdge("D", "C")
	after := len(slices.Collect(seq))
	if after != before+1 {
		t.Errorf("reverse walk did not pick up new dependent: %d -> %d records", before, after)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Forward, false},
		{"forward", Forward, false},
		{"Reverse", Reverse, false},
		{"sideways", Forward, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
