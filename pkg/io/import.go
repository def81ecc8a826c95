package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
)

// Decode reads a JSON graph from r and adds its nodes and edges to g.
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Decode returns an ErrCodeInvalidFormat error if:
//   - The JSON is malformed
//   - A node has an empty or duplicate ID
//   - An edge references an unknown node ID
//
// On error g is left unchanged.
func Decode(r io.Reader, g *graph.Graph) error {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}

	declared := make(map[string]bool, len(data.Nodes))
	for _, n := range data.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "node with empty id")
		}
		if declared[n.ID] {
			return errors.New(errors.ErrCodeInvalidFormat, "node %s: duplicate id", n.ID)
		}
		declared[n.ID] = true
	}
	for _, e := range data.Edges {
		if !declared[e.From] || !declared[e.To] {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s->%s: unknown node", e.From, e.To)
		}
	}

	return g.Apply(func(staged *graph.Graph) error {
		for _, n := range data.Nodes {
			staged.EnsureNode(n.ID)
		}
		for _, e := range data.Edges {
			staged.AddEdge(e.From, e.To)
		}
		return nil
	})
}

// DecodeFile reads the JSON graph at path into g. A missing file is an
// ErrCodeFileNotFound error; on any error g is left unchanged.
func DecodeFile(path string, g *graph.Graph) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, g)
}
