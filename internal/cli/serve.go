package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/server"
)

// serveCommand serves the loaded graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := newSourceOpts()
	addr := ":8080"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dependency graph over HTTP",
		Long: `Load a dependency graph and serve it as a JSON API.

Routes:
  GET /healthz
  GET /api/packages
  GET /api/tree/{name}?exclude=&direction=forward|reverse
  GET /api/diagram?format=d2|dot|json&reverse=
  GET /metrics`,
		Example: `  deptree serve --source repo.txt --root A
  deptree serve --source ./Cargo.toml --transitive --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Serving %s on %s", formatCount(l.graph.Len(), "package"), addr)
			return server.New(l.graph, l.root, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	return cmd
}
