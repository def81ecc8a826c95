// Package pkg holds the libraries behind deptree, a dependency graph
// explorer for Rust crates and plain-text fixtures.
//
// # Data Flow
//
//	config.xml / flags
//	       ↓
//	[source]  (Cargo.toml, fixture, JSON)  ← [integrations] (GitHub, crates.io)
//	       ↓
//	[graph]   (adjacency mapping, walks, reverse index)
//	       ↓
//	tree text | [render] (D2, DOT, SVG, PNG) | [server] (HTTP API)
//
// # Packages
//
//   - [config]: XML, YAML and TOML application config with file watching
//   - [source]: picks and loads a dependency source
//   - [deps]: manifest types and the breadth-first registry resolver
//   - [graph]: the package graph and its depth-first walks
//   - [cache]: file, Redis and no-op caches for registry responses
//   - [io]: JSON import and export of graphs
//   - [errors]: coded errors shared by every layer
//
// [config]: github.com/matzehuels/deptree/pkg/config
// [source]: github.com/matzehuels/deptree/pkg/source
// [deps]: github.com/matzehuels/deptree/pkg/deps
// [graph]: github.com/matzehuels/deptree/pkg/graph
// [cache]: github.com/matzehuels/deptree/pkg/cache
// [io]: github.com/matzehuels/deptree/pkg/io
// [errors]: github.com/matzehuels/deptree/pkg/errors
// [integrations]: github.com/matzehuels/deptree/pkg/integrations
// [render]: github.com/matzehuels/deptree/pkg/render
// [server]: github.com/matzehuels/deptree/pkg/server
package pkg
