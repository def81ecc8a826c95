// Package cli implements the deptree command-line interface.
//
// # Commands
//
//   - run: analyze the package described by a config file (config.xml)
//   - deps: list the direct dependencies of a manifest
//   - tree: print the forward or reverse dependency tree of a package
//   - diagram: export the graph as D2, DOT, SVG, PNG or JSON
//   - browse: explore the tree interactively
//   - serve: expose the graph over HTTP
//   - cache: manage the HTTP response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr; command output goes to stdout.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "deptree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "deptree analyzes package dependency trees",
		Long: `deptree builds the dependency graph of a package from a Cargo manifest,
a plain-text fixture or a JSON graph and prints it as a tree, a diagram or
an interactive browser.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
