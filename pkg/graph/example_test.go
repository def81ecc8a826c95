package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/deptree/pkg/graph"
)

func Example() {
	g := graph.New()
	g.Load(map[string][]string{
		"A": {"B", "C"},
		"B": {"C"},
	})

	for r := range g.Tree("A", "") {
		fmt.Println(graph.FormatRecord(r))
	}
	// Output:
	// A
	//   B
	//     C
	//   C (visited)
}

func ExampleGraph_Walk_reverse() {
	g := graph.New()
	g.AddEdge("app", "serde")
	g.AddEdge("cli", "serde")
	g.AddEdge("cli", "app")

	for r := range g.Walk("serde", graph.WalkOptions{Direction: graph.Reverse}) {
		fmt.Println(graph.FormatRecord(r))
	}
	// Output:
	// serde
	//   app
	//     cli
	//   cli (visited)
}

func ExampleWriteTree() {
	g := graph.New()
	g.AddEdge("app", "tokio")
	g.AddEdge("app", "serde")
	g.AddEdge("tokio", "mio")

	_ = graph.WriteTree(os.Stdout, g.Tree("app", ""), graph.StyleASCII)
	// Output:
	// app
	// ├── tokio
	// │   └── mio
	// └── serde
}
