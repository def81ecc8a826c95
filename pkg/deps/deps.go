package deps

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

const (
	DefaultMaxDepth = 10   // Default maximum dependency depth
	DefaultMaxNodes = 2000 // Default maximum packages to fetch
	DefaultWorkers  = 16   // Default number of concurrent fetches
)

// Options configures dependency resolution behavior.
type Options struct {
	MaxDepth int         // Maximum depth to traverse (default: 10)
	MaxNodes int         // Maximum packages to fetch (default: 2000)
	Workers  int         // Concurrent fetches (default: 16)
	Refresh  bool        // Bypass cache for fresh data
	Logger   *log.Logger // Progress and failure reporting (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = discard
	}
	return opts
}

var discard = log.New(io.Discard)

// Package holds what a registry knows about one package.
type Package struct {
	Name         string   // Package name
	Version      string   // Latest or specified version
	Dependencies []string // Direct dependency names
	Description  string   // Package summary
	License      string   // License identifier
	Repository   string   // Source repository URL
}

// Fetcher retrieves package metadata from a registry.
type Fetcher interface {
	// Fetch retrieves package information by name. If refresh is true,
	// cached data is bypassed.
	Fetch(ctx context.Context, name string, refresh bool) (*Package, error)
}
