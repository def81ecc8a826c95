package cli

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
	"github.com/matzehuels/deptree/pkg/source"
)

// sourceOpts holds the flags shared by every command that loads a graph.
type sourceOpts struct {
	source     string // fixture, JSON graph, Cargo.toml path/directory or URL
	root       string // root package; defaults to the manifest's package name or the graph's only root
	transitive bool   // resolve Cargo dependencies through crates.io
	maxDepth   int
	maxNodes   int
	refresh    bool   // bypass the HTTP cache
	noCache    bool   // disable the HTTP cache
	redis      string // Redis address for a shared cache
}

func newSourceOpts() *sourceOpts {
	return &sourceOpts{maxDepth: deps.DefaultMaxDepth, maxNodes: deps.DefaultMaxNodes}
}

func (o *sourceOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.source, "source", "s", "", "fixture (.txt), graph (.json), Cargo.toml path or URL")
	f.StringVar(&o.root, "root", "", "root package (default: manifest package name)")
	f.BoolVarP(&o.transitive, "transitive", "t", false, "resolve transitive dependencies through crates.io")
	f.IntVar(&o.maxDepth, "max-depth", o.maxDepth, "maximum crawl depth for --transitive")
	f.IntVar(&o.maxNodes, "max-nodes", o.maxNodes, "maximum packages to fetch for --transitive")
	o.registerCache(cmd)
	_ = cmd.MarkFlagRequired("source")
}

func (o *sourceOpts) registerCache(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.refresh, "refresh", false, "bypass cached HTTP responses")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the HTTP response cache")
	f.StringVar(&o.redis, "cache-redis", os.Getenv(cache.RedisEnv), "Redis address for a shared cache (env "+cache.RedisEnv+")")
}

// loaded is a graph together with what was read to build it.
type loaded struct {
	graph  *graph.Graph
	result *source.Result
	root   string
}

// load opens the configured source and loads it into a fresh graph. When the
// source has no inherent root (fixtures, JSON graphs) root falls back to
// o.root, then to the graph's only root package if it has exactly one.
func (o *sourceOpts) load(ctx context.Context, logger *log.Logger) (*loaded, error) {
	backend, err := o.cache(ctx, logger)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	src, err := source.Open(o.source, o.options(backend, logger))
	if err != nil {
		return nil, err
	}
	return loadFrom(ctx, src, o.root, o.transitive, logger)
}

func (o *sourceOpts) options(backend cache.Cache, logger *log.Logger) source.Options {
	return source.Options{
		Root:       o.root,
		Transitive: o.transitive,
		Resolve:    deps.Options{MaxDepth: o.maxDepth, MaxNodes: o.maxNodes, Logger: logger},
		Cache:      backend,
		Refresh:    o.refresh,
		Logger:     logger,
	}
}

// cache returns the response cache selected by the flags: none, Redis or
// the file cache in the user cache directory.
func (o *sourceOpts) cache(ctx context.Context, logger *log.Logger) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	if o.redis != "" {
		logger.Debug("using redis cache", "addr", o.redis)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: o.redis})
	}
	fc, err := cache.NewFileCache("")
	if err != nil {
		logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func loadFrom(ctx context.Context, src source.Source, root string, transitive bool, logger *log.Logger) (*loaded, error) {
	g := graph.New()
	prog := newProgress(logger)

	var (
		res *source.Result
		err error
	)
	if transitive {
		spin := newSpinnerWithContext(ctx, "Resolving dependencies...")
		spin.Start()
		res, err = src.Load(ctx, g)
		spin.Stop()
	} else {
		res, err = src.Load(ctx, g)
	}
	if err != nil {
		return nil, err
	}
	prog.done(formatCount(g.Len(), "package") + " loaded from " + res.Location)

	if res.Root != "" {
		root = res.Root
	}
	if root == "" {
		if roots := g.Roots(); len(roots) == 1 {
			root = roots[0]
			logger.Debug("using the only root package", "root", root)
		}
	}
	return &loaded{graph: g, result: res, root: root}, nil
}

// requireRoot returns the root package or an error telling the user how to
// name one.
func (l *loaded) requireRoot() (string, error) {
	if l.root != "" {
		return l.root, nil
	}
	if roots := l.graph.Roots(); len(roots) > 1 {
		return "", errors.New(errors.ErrCodeMissingField, "%s has several root packages (%s); pick one with --root",
			l.result.Location, strings.Join(roots, ", "))
	}
	return "", errors.New(errors.ErrCodeMissingField, "%s has no root package; pass one with --root", l.result.Location)
}
