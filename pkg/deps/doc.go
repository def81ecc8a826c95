// Package deps provides the shared vocabulary for reading dependency data
// from manifests and package registries.
//
// # Overview
//
// deptree gets dependency data from two kinds of sources:
//
//   - Manifest files (Cargo.toml) that declare a package's direct dependencies
//   - Package registries (crates.io) that know every published package
//
// Manifest parsers live in subpackages ([rust], [fixture]) and produce a
// [Manifest]. Registry clients live in [integrations] and implement [Fetcher].
//
// # Resolving Dependencies
//
// [Resolve] crawls a registry breadth-first and returns a mapping that can be
// loaded into a graph in one step:
//
//	mapping, err := deps.Resolve(ctx, client, m.Dependencies, deps.Options{
//	    MaxDepth: 5,
//	})
//	if err != nil {
//	    return err
//	}
//	g.Load(mapping)
//
// The resolver:
//
//  1. Fetches every package of the current level concurrently
//  2. Queues dependencies that have not been seen yet for the next level
//  3. Stops at MaxDepth levels or once MaxNodes packages are known
//
// Packages that fail to fetch are logged and left out of the mapping; they
// still show up as leaves through the edges that point at them.
//
// # Options
//
// [Options] controls resolution behavior:
//
//   - MaxDepth: Maximum number of levels to fetch (default 10)
//   - MaxNodes: Maximum packages to queue (default 2000)
//   - Workers: Concurrent requests per level (default 16)
//   - Refresh: Bypass cache for fresh data
//   - Logger: Progress and failure reporting
//
// [integrations]: github.com/matzehuels/deptree/pkg/integrations
// [rust]: github.com/matzehuels/deptree/pkg/deps/rust
// [fixture]: github.com/matzehuels/deptree/pkg/deps/fixture
package deps
