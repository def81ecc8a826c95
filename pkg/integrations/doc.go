// Package integrations provides the HTTP clients deptree uses to reach
// outside data: the crates.io registry and GitHub-hosted manifests.
//
// # Overview
//
// Each remote service has its own subpackage:
//
//   - [crates]: crates.io registry API (transitive Rust dependencies)
//   - [github]: raw Cargo.toml files from GitHub repositories
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all clients:
//
//   - A 10 second request timeout and default headers (User-Agent)
//   - Response caching through [cache.Cache], keyed per client prefix
//   - Retry with exponential backoff for transport errors and 5xx responses
//
// Failures are classified with sentinel errors: [ErrNotFound] for 404
// responses and [ErrNetwork] for everything else.
//
//	client := crates.NewClient(c, cache.DefaultTTL)
//	info, err := client.FetchCrate(ctx, "serde", false)
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // no such crate
//	}
//
// [crates]: github.com/matzehuels/deptree/pkg/integrations/crates
// [github]: github.com/matzehuels/deptree/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/deptree/pkg/cache.Cache
package integrations
