package source

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/deps/rust"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
	"github.com/matzehuels/deptree/pkg/integrations"
	"github.com/matzehuels/deptree/pkg/integrations/crates"
	"github.com/matzehuels/deptree/pkg/integrations/github"
)

// Location is where a manifest lives. Exactly one of URL and Path is set.
type Location struct {
	URL  string
	Path string
}

func (l Location) String() string {
	if l.URL != "" {
		return l.URL
	}
	return l.Path
}

// Remote reports whether the manifest is fetched over HTTP.
func (l Location) Remote() bool { return l.URL != "" }

// Locate resolves a repository source to a manifest location. http(s)
// sources map to raw GitHub URLs (see [github.RawURL]); anything else is a
// local path, where a directory stands for the Cargo.toml inside it. A local
// path that does not exist is an ErrCodeFileNotFound error.
func Locate(repoSource string) (Location, error) {
	src := strings.TrimSpace(repoSource)
	if errors.IsRemote(src) {
		return Location{URL: github.RawURL(src)}, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return Location{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "file or URL not found: %s", repoSource)
	}
	if !info.IsDir() {
		return Location{Path: src}, nil
	}
	path := filepath.Join(src, rust.ManifestFile)
	if _, err := os.Stat(path); err != nil {
		return Location{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "no %s in %s", rust.ManifestFile, src)
	}
	return Location{Path: path}, nil
}

// Cargo loads a Cargo manifest. The root package gets the manifest's
// [dependencies] as direct dependencies; with Options.Transitive every
// dependency is additionally resolved through crates.io.
type Cargo struct {
	Source string

	opts   Options
	logger *log.Logger
	github *github.Client
	crates *crates.Client
}

// NewCargo creates a Cargo source for a path, directory or URL.
func NewCargo(src string, opts Options) *Cargo {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.CratesURL == "" {
		opts.CratesURL = crates.DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Resolve.Refresh = opts.Refresh
	if opts.Resolve.Logger == nil {
		opts.Resolve.Logger = logger
	}
	return &Cargo{
		Source: src,
		opts:   opts,
		logger: logger,
		github: github.NewClient(opts.Cache, opts.CacheTTL),
		crates: crates.NewClientWithBaseURL(opts.Cache, opts.CacheTTL, opts.CratesURL),
	}
}

// Manifest reads and parses the manifest without touching any graph. Files
// other than Cargo.toml are rejected before anything is read.
func (c *Cargo) Manifest(ctx context.Context) (*deps.Manifest, Location, error) {
	loc, err := Locate(c.Source)
	if err != nil {
		return nil, Location{}, err
	}

	parser, err := deps.DetectManifest(loc.String(), rust.CargoToml{})
	if err != nil {
		return nil, loc, err
	}
	data, err := c.read(ctx, loc)
	if err != nil {
		return nil, loc, err
	}
	m, err := parser.Parse(data)
	if err != nil {
		return nil, loc, err
	}
	return m, loc, nil
}

func (c *Cargo) read(ctx context.Context, loc Location) ([]byte, error) {
	if !loc.Remote() {
		c.logger.Debug("reading local manifest", "path", loc.Path)
		data, err := os.ReadFile(loc.Path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read local Cargo.toml")
		}
		return data, nil
	}

	c.logger.Debug("fetching manifest", "url", loc.URL)
	data, err := c.github.FetchManifest(ctx, loc.URL, c.opts.Refresh)
	switch {
	case err == nil:
		return data, nil
	case stderrors.Is(err, integrations.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot fetch Cargo.toml")
	default:
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "cannot fetch Cargo.toml")
	}
}

// Load reads the manifest, optionally resolves transitive dependencies, and
// applies the result to g.
func (c *Cargo) Load(ctx context.Context, g *graph.Graph) (*Result, error) {
	m, loc, err := c.Manifest(ctx)
	if err != nil {
		return nil, err
	}

	root := c.opts.Root
	if root == "" {
		root = m.Name
	}
	if root == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "manifest has no [package] name; pass a root package explicitly")
	}
	if err := errors.ValidatePackageName(root); err != nil {
		return nil, err
	}

	var mapping map[string][]string
	if c.opts.Transitive {
		c.logger.Info("resolving transitive dependencies", "crates", len(m.Dependencies))
		mapping, err = c.crates.Resolve(ctx, m.Dependencies, c.opts.Resolve)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "resolve dependencies")
		}
	}

	err = g.Apply(func(staged *graph.Graph) error {
		staged.Load(mapping)
		staged.SetDependencies(root, m.Dependencies)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:     KindCargo,
		Location: loc.String(),
		Root:     root,
		Direct:   m.Dependencies,
	}, nil
}
