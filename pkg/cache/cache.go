// Package cache stores raw byte payloads, mostly registry and manifest HTTP
// responses, so repeated runs do not hit the network.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for `deptree serve` deployments
//   - [NullCache]: stores nothing (--no-cache)
//
// The package also hosts the retry helpers used by HTTP clients: wrap a
// transient failure with [Retryable] and run the operation through [Retry] or
// [RetryWithBackoff].
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long HTTP responses stay cached.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// reported as a miss (ok == false) with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DefaultDir returns the deptree cache directory: $XDG_CACHE_HOME/deptree,
// falling back to ~/.cache/deptree.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "deptree"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "deptree"), nil
}

// Prefixed scopes every key of inner under prefix, so that unrelated callers
// (crates.io responses, GitHub manifests) can share one backend.
type Prefixed struct {
	inner  Cache
	prefix string
}

// WithPrefix wraps c so that all keys are prefixed.
func WithPrefix(c Cache, prefix string) *Prefixed {
	if p, ok := c.(*Prefixed); ok {
		return &Prefixed{inner: p.inner, prefix: p.prefix + prefix}
	}
	return &Prefixed{inner: c, prefix: prefix}
}

func (p *Prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.inner.Set(ctx, p.prefix+key, data, ttl)
}

func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

// Close closes the wrapped cache.
func (p *Prefixed) Close() error { return p.inner.Close() }

var _ Cache = (*Prefixed)(nil)
