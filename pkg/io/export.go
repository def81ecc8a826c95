package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/deptree/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID string `json:"id"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a graph as JSON and writes it to w.
// Nodes are written in insertion order and edges in dependency order, so
// [Decode] rebuilds an identical graph.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	names := g.Names()
	edges := g.Edges()
	out := document{
		Nodes: make([]node, len(names)),
		Edges: make([]edge, len(edges)),
	}
	for i, name := range names {
		out.Nodes[i] = node{ID: name}
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
