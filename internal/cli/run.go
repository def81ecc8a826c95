package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/config"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
	"github.com/matzehuels/deptree/pkg/render/d2"
	"github.com/matzehuels/deptree/pkg/source"
)

// runCommand creates the run command, which analyzes the package described
// by a configuration file.
func (c *CLI) runCommand() *cobra.Command {
	var watch bool
	opts := newSourceOpts()

	cmd := &cobra.Command{
		Use:   "run [config]",
		Short: "Analyze the package described by a config file",
		Long: `Load a config file (default config.xml), build the dependency graph of the
configured package and print its direct dependencies and dependency tree.

The config format follows the file extension: .xml, .yaml/.yml or .toml.

Examples:
  deptree run
  deptree run deptree.yaml
  deptree run config.xml --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if watch {
				return c.watchConfig(cmd.Context(), cmd.OutOrStdout(), path, opts)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			return c.analyze(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever the config file changes")
	opts.registerCache(cmd)
	return cmd
}

// analyze loads the graph for cfg and prints the config summary, the direct
// dependencies and the tree. It writes the D2 diagram when cfg.Diagram is set.
func (c *CLI) analyze(ctx context.Context, w io.Writer, cfg *config.AppConfig, opts *sourceOpts) error {
	printSuccess(w, "Config loaded")
	printConfig(w, cfg)
	fmt.Fprintln(w)

	backend, err := opts.cache(ctx, c.Logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	srcOpts := opts.options(backend, c.Logger)
	srcOpts.Root = cfg.PackageName
	srcOpts.Transitive = cfg.Transitive
	srcOpts.Resolve.MaxDepth = cfg.MaxDepth

	src, err := source.ForMode(cfg.Mode, cfg.RepoSource, srcOpts)
	if err != nil {
		return err
	}
	l, err := loadFrom(ctx, src, cfg.PackageName, cfg.Transitive, c.Logger)
	if err != nil {
		return err
	}

	direct := l.result.Direct
	if direct == nil {
		direct = l.graph.Dependencies(cfg.PackageName)
	}
	printTitle(w, fmt.Sprintf("Direct dependencies of '%s':", cfg.PackageName))
	printList(w, direct)
	fmt.Fprintln(w)

	dir := graph.Forward
	title := "Dependency tree:"
	if cfg.Reverse {
		dir = graph.Reverse
		title = "Reverse dependency tree:"
	}
	printTitle(w, title)
	records := l.graph.Walk(cfg.PackageName, graph.WalkOptions{Direction: dir, Exclude: cfg.ExcludeFilter})
	if err := graph.WriteTree(w, records, treeStyle(cfg.AsciiTree)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write tree")
	}

	if cfg.Diagram != "" {
		if err := writeDiagram(cfg.Diagram, d2.Export(l.graph, dir)); err != nil {
			return err
		}
		fmt.Fprintln(w)
		printSuccess(w, "Diagram written")
		printFile(w, cfg.Diagram)
	}
	return nil
}

func printConfig(w io.Writer, cfg *config.AppConfig) {
	printKeyValue(w, "Package", cfg.PackageName)
	printKeyValue(w, "Source", cfg.RepoSource)
	printKeyValue(w, "Mode", cfg.Mode)
	printKeyValue(w, "ASCII tree", yesNo(cfg.AsciiTree))
	printKeyValue(w, "Exclude", orDash(cfg.ExcludeFilter))
	if cfg.Reverse {
		printKeyValue(w, "Reverse", yesNo(cfg.Reverse))
	}
	if cfg.Transitive {
		printKeyValue(w, "Transitive", "depth "+strconv.Itoa(cfg.MaxDepth))
	}
	if cfg.Diagram != "" {
		printKeyValue(w, "Diagram", cfg.Diagram)
	}
}

func treeStyle(ascii bool) graph.TreeStyle {
	if ascii {
		return graph.StyleASCII
	}
	return graph.StylePlain
}

// writeDiagram writes src to path, creating parent directories.
func writeDiagram(path, src string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	return nil
}

// watchConfig runs the analysis once and again after every change of the
// config file, until ctx is cancelled. Invalid edits are reported and the
// previous config stays active.
func (c *CLI) watchConfig(ctx context.Context, w io.Writer, path string, opts *sourceOpts) error {
	watcher, err := config.NewWatcher(path, c.Logger)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	rerun := func(cfg *config.AppConfig) {
		mu.Lock()
		defer mu.Unlock()
		if err := c.analyze(ctx, w, cfg, opts); err != nil {
			printError(w, "%s", errors.UserMessage(err))
		}
		fmt.Fprintln(w)
		printInfo(w, "Watching %s for changes (Ctrl+C to stop)", path)
	}

	watcher.OnChange(func(cfg *config.AppConfig) {
		fmt.Fprintln(w)
		printInfo(w, "Config changed, re-running")
		rerun(cfg)
	})
	stop, err := watcher.Watch()
	if err != nil {
		return err
	}
	defer stop()

	rerun(watcher.Config())
	<-ctx.Done()
	return nil
}
