package graph

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordLabel(t *testing.T) {
	tests := []struct {
		r    Record
		want string
	}{
		{Record{Depth: 0, Name: "a"}, "a"},
		{Record{Depth: 2, Name: "b", Status: StatusCycle}, "    b (cycle)"},
		{Record{Depth: 1, Name: "c", Status: StatusVisited}, "  c (visited)"},
	}
	for _, tt := range tests {
		if got := FormatRecord(tt.r); got != tt.want {
			t.Errorf("FormatRecord(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestFormatASCII(t *testing.T) {
	g := New()
	g.AddEdge("app", "serde")
	g.AddEdge("app", "tokio")
	g.AddEdge("serde", "serde-derive")
	g.AddEdge("tokio", "mio")
	g.AddEdge("tokio", "serde")

	got := FormatASCII(g.Tree("app", ""))
	want := []string{
		"app",
		"├── serde",
		"│   └── serde-derive",
		"└── tokio",
		"    ├── mio",
		"    └── serde (visited)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatASCII mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatASCIIExcludedLastChild(t *testing.T) {
	// The pruned last child must not leave "├──" on its preceding sibling.
	got := FormatASCII(scenarioGraph().Tree("A", "C"))
	want := []string{"A", "└── B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatASCII mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTree(&buf, scenarioGraph().Tree("A", ""), StylePlain); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}
	want := "A\n  B\n    C\n  C (visited)\n"
	if buf.String() != want {
		t.Errorf("WriteTree() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteTree(&buf, scenarioGraph().Tree("A", ""), StyleASCII); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}
	want = "A\n├── B\n│   └── C\n└── C (visited)\n"
	if buf.String() != want {
		t.Errorf("WriteTree(ascii) = %q, want %q", buf.String(), want)
	}
}

func TestStatusMarshalText(t *testing.T) {
	b, err := StatusVisited.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "visited" {
		t.Errorf("MarshalText() = %q, want %q", b, "visited")
	}
}
