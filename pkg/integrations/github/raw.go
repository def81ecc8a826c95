package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/integrations"
)

const (
	rawHost       = "https://raw.githubusercontent.com/"
	webHost       = "https://github.com/"
	defaultBranch = "master"
	manifestFile  = "Cargo.toml"
)

// RawURL maps a repository reference to the URL of its Cargo.toml:
//
//	https://github.com/o/r          -> https://raw.githubusercontent.com/o/r/master/Cargo.toml
//	https://host/o/r.git            -> https://host/o/r/master/Cargo.toml
//	https://.../Cargo.toml          -> unchanged
//
// Raw URLs and URLs that already point at a Cargo.toml are used as-is.
func RawURL(source string) string {
	source = strings.TrimSpace(source)
	switch {
	case strings.HasPrefix(source, rawHost), strings.HasSuffix(source, "/"+manifestFile):
		return source
	case strings.HasSuffix(source, ".git"):
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(source, ".git"), defaultBranch, manifestFile)
	default:
		repo := strings.TrimSuffix(strings.TrimPrefix(source, webHost), "/")
		return fmt.Sprintf("%s%s/%s/%s", rawHost, repo, defaultBranch, manifestFile)
	}
}

// Client downloads raw manifest files.
type Client struct {
	*integrations.Client
}

// NewClient creates a client that caches downloaded manifests for cacheTTL.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{"User-Agent": integrations.UserAgent}
	return &Client{Client: integrations.NewClient(backend, "github:", cacheTTL, headers)}
}

// FetchManifest downloads the Cargo.toml that source refers to (see
// [RawURL]). A missing file yields [integrations.ErrNotFound].
func (c *Client) FetchManifest(ctx context.Context, source string, refresh bool) ([]byte, error) {
	url := RawURL(source)
	var data []byte
	err := c.Cached(ctx, url, refresh, &data, func() error {
		var err error
		data, err = c.GetBytes(ctx, url)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return data, nil
}
