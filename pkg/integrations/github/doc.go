// Package github fetches Cargo manifests straight from GitHub repositories.
//
// Repository URLs are translated to raw.githubusercontent.com URLs on the
// master branch with [RawURL]; [Client.FetchManifest] downloads the file
// through the shared, cached [integrations.Client].
//
//	data, err := github.NewClient(c, cache.DefaultTTL).FetchManifest(ctx, "https://github.com/tokio-rs/mini-redis", false)
//
// [integrations.Client]: github.com/matzehuels/deptree/pkg/integrations.Client
package github
