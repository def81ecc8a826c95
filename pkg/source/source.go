// Package source loads dependency graphs from the places deptree can read
// them: Cargo manifests (local or on GitHub), plain-text fixtures, and JSON
// graph documents.
//
// Every [Source] parses its input completely before touching the graph and
// then applies all nodes and edges in one [graph.Graph.Apply] step, so a
// failed load never leaves a half-populated graph behind.
//
//	src, err := source.Open("https://github.com/tokio-rs/mini-redis", source.Options{})
//	if err != nil {
//	    return err
//	}
//	g := graph.New()
//	res, err := src.Load(ctx, g)
//	if err != nil {
//	    return err
//	}
//	for r := range g.Tree(res.Root, "") { ... }
package source

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/deps/fixture"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
)

// Kind identifies the format a source was read from.
type Kind string

const (
	KindCargo   Kind = "cargo"
	KindFixture Kind = "fixture"
	KindJSON    Kind = "json"
)

// Result describes a completed load.
type Result struct {
	Kind     Kind     // Input format
	Location string   // Resolved file path or URL
	Root     string   // Package the input is about; empty for fixtures and JSON graphs
	Direct   []string // Direct dependencies of Root, in manifest order
}

// Source populates a graph from one input.
type Source interface {
	Load(ctx context.Context, g *graph.Graph) (*Result, error)
}

// Options configures sources created by [Open].
type Options struct {
	Root       string        // Root package name; overrides the manifest's package name
	Transitive bool          // Resolve Cargo dependencies through crates.io
	Resolve    deps.Options  // Crawl limits for transitive resolution
	Cache      cache.Cache   // HTTP response cache (nil disables caching)
	CacheTTL   time.Duration // Cache entry lifetime (default cache.DefaultTTL)
	CratesURL  string        // crates.io API root (default crates.DefaultBaseURL)
	Refresh    bool          // Bypass cached responses
	Logger     *log.Logger   // Progress reporting (nil discards)
}

// Open picks a source for input by its shape: http(s) URLs and Cargo.toml
// paths or directories are Cargo manifests, ".txt" files are fixtures and
// ".json" files are JSON graphs.
func Open(input string, opts Options) (Source, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "source cannot be empty")
	}
	if errors.IsRemote(input) {
		if err := errors.ValidateURL(input); err != nil {
			return nil, err
		}
		return NewCargo(input, opts), nil
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case fixture.Extension:
		return &Fixture{Path: input}, nil
	case ".json":
		return &JSON{Path: input}, nil
	default:
		return NewCargo(input, opts), nil
	}
}

// ForMode returns the source for a configured run: "test" mode reads a
// fixture, "real" mode reads a Cargo manifest.
func ForMode(mode, repoSource string, opts Options) (Source, error) {
	switch mode {
	case "test":
		return &Fixture{Path: repoSource}, nil
	case "real":
		return NewCargo(repoSource, opts), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidValue, "unknown mode %q", mode)
	}
}
