package deps

import (
	"context"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"
)

// Resolve crawls a registry breadth-first starting from roots and returns a
// mapping from every fetched package to its direct dependencies, ready for
// graph.Graph.Load.
//
// Each level is fetched concurrently with at most opts.Workers requests in
// flight. At most opts.MaxDepth levels are fetched, and no new packages are
// queued once opts.MaxNodes have been seen. A package that cannot be fetched
// is logged and left out of the mapping, so it appears in the graph as a leaf.
// Only context cancellation aborts the crawl.
func Resolve(ctx context.Context, f Fetcher, roots []string, opts Options) (map[string][]string, error) {
	opts = opts.WithDefaults()

	mapping := make(map[string][]string)
	seen := mapset.NewThreadUnsafeSet[string]()
	var frontier []string
	for _, r := range roots {
		if seen.Add(r) {
			frontier = append(frontier, r)
		}
	}

	for depth := 0; len(frontier) > 0; depth++ {
		pkgs, err := fetchLevel(ctx, f, frontier, opts)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("resolved level", "depth", depth, "packages", len(frontier))

		var next []string
		for i, name := range frontier {
			p := pkgs[i]
			if p == nil {
				continue
			}
			mapping[name] = slices.Clone(p.Dependencies)
			if depth+1 >= opts.MaxDepth {
				continue
			}
			for _, dep := range p.Dependencies {
				if seen.Cardinality() >= opts.MaxNodes {
					break
				}
				if seen.Add(dep) {
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}
	return mapping, nil
}

func fetchLevel(ctx context.Context, f Fetcher, names []string, opts Options) ([]*Package, error) {
	pkgs := make([]*Package, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, name := range names {
		g.Go(func() error {
			p, err := f.Fetch(gctx, name, opts.Refresh)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				opts.Logger.Warn("fetch failed", "package", name, "err", err)
				return nil
			}
			pkgs[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pkgs, nil
}
