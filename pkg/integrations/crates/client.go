package crates

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/integrations"
)

// CrateInfo holds metadata for a Rust crate from crates.io.
//
// The Version field contains the max_version (latest stable or highest version).
// Dependencies include only "normal" (non-dev, non-optional) dependencies.
type CrateInfo struct {
	Name         string   // Crate name (e.g., "serde", never empty in valid info)
	Version      string   // Latest version (e.g., "1.0.193", never empty in valid info)
	Dependencies []string // Normal dependency crate names (nil or empty if none)
	Repository   string   // Repository URL (may be empty)
	HomePage     string   // Homepage URL (may be empty)
	Description  string   // Crate description (may be empty)
	License      string   // License identifier(s) (may be empty or "MIT OR Apache-2.0")
	Downloads    int      // Total download count across all versions (0 for new crates)
}

// Client provides access to the crates.io package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*integrations.Client
	baseURL string
}

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// NewClient creates a crates.io client with the given cache backend.
// Pass cache.NewNullCache() to disable caching.
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return NewClientWithBaseURL(backend, cacheTTL, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client for a crates.io compatible API at
// baseURL, such as a mirror or a test server.
func NewClientWithBaseURL(backend cache.Cache, cacheTTL time.Duration, baseURL string) *Client {
	headers := map[string]string{"User-Agent": integrations.UserAgent}
	return &Client{
		Client:  integrations.NewClient(backend, "crates:", cacheTTL, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchCrate retrieves metadata for a Rust crate from crates.io.
//
// Entries are cached per API root, so mirrors sharing a cache never see each
// other's data. If refresh is true, the cache is bypassed and a fresh API
// call is made.
// Returns [integrations.ErrNotFound] if the crate doesn't exist and
// [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchCrate(ctx context.Context, crate string, refresh bool) (*CrateInfo, error) {
	var info CrateInfo
	key := cache.Key("crate", c.baseURL, crate)
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, crate, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, crate string, info *CrateInfo) error {
	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, integrations.URLEncode(crate)), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	names, err := c.fetchDeps(ctx, crate, data.Crate.MaxVersion)
	if err != nil {
		return err
	}

	*info = CrateInfo{
		Name:         data.Crate.Name,
		Version:      data.Crate.MaxVersion,
		Description:  data.Crate.Description,
		License:      data.Crate.License,
		Repository:   integrations.NormalizeRepoURL(data.Crate.Repository),
		HomePage:     data.Crate.HomePage,
		Downloads:    data.Crate.Downloads,
		Dependencies: names,
	}
	return nil
}

func (c *Client) fetchDeps(ctx context.Context, crate, version string) ([]string, error) {
	url := fmt.Sprintf("%s/crates/%s/%s/dependencies", c.baseURL,
		integrations.URLEncode(crate), integrations.URLEncode(version))

	var data depsResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, err
	}

	var names []string
	for _, d := range data.Dependencies {
		if d.Kind == "normal" && !d.Optional && !slices.Contains(names, d.CrateID) {
			names = append(names, d.CrateID)
		}
	}
	return names, nil
}

// Dependencies returns the normal, non-optional dependencies of the latest
// version of crate.
func (c *Client) Dependencies(ctx context.Context, crate string) ([]string, error) {
	info, err := c.FetchCrate(ctx, crate, false)
	if err != nil {
		return nil, err
	}
	return info.Dependencies, nil
}

// Fetch implements [deps.Fetcher].
func (c *Client) Fetch(ctx context.Context, name string, refresh bool) (*deps.Package, error) {
	info, err := c.FetchCrate(ctx, name, refresh)
	if err != nil {
		return nil, err
	}
	return &deps.Package{
		Name:         info.Name,
		Version:      info.Version,
		Dependencies: info.Dependencies,
		Description:  info.Description,
		License:      info.License,
		Repository:   info.Repository,
	}, nil
}

// Resolve crawls crates.io from roots and returns the crate -> dependencies
// mapping. See [deps.Resolve] for the crawl rules.
func (c *Client) Resolve(ctx context.Context, roots []string, opts deps.Options) (map[string][]string, error) {
	return deps.Resolve(ctx, c, roots, opts)
}

var _ deps.Fetcher = (*Client)(nil)

type crateResponse struct {
	Crate struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Description string `json:"description"`
		License     string `json:"license"`
		Repository  string `json:"repository"`
		HomePage    string `json:"homepage"`
		Downloads   int    `json:"downloads"`
	} `json:"crate"`
}

type depsResponse struct {
	Dependencies []struct {
		CrateID  string `json:"crate_id"`
		Kind     string `json:"kind"`
		Optional bool   `json:"optional"`
	} `json:"dependencies"`
}
