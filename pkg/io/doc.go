// Package io provides JSON import and export for dependency graphs.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "app"},
//	    {"id": "serde"},
//	    {"id": "serde_derive"}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "serde"},
//	    {"from": "serde", "to": "serde_derive"}
//	  ]
//	}
//
// Every node is listed, including packages without dependencies, and every
// edge endpoint must be a listed node. Cycles are allowed.
//
// # Import
//
// Use [Decode] or [DecodeFile] to merge a document into a graph.
// Invalid documents leave the target graph untouched.
//
// # Export
//
// Use [WriteJSON] to write a graph to any io.Writer. Export preserves node
// insertion order and dependency order, so an exported graph re-imports to
// identical trees.
package io
