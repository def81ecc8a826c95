package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
)

// depsCommand prints the direct dependencies of the root package.
func (c *CLI) depsCommand() *cobra.Command {
	opts := newSourceOpts()
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List the direct dependencies of a package",
		Example: `  deptree deps --source ./Cargo.toml
  deptree deps --source https://github.com/tokio-rs/mini-redis
  deptree deps --source repo.txt --root A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			root, err := l.requireRoot()
			if err != nil {
				return err
			}
			direct := l.result.Direct
			if direct == nil {
				direct = l.graph.Dependencies(root)
			}

			w := cmd.OutOrStdout()
			printTitle(w, fmt.Sprintf("Direct dependencies of '%s':", root))
			printList(w, direct)
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

// treeCommand prints the dependency tree of a package.
func (c *CLI) treeCommand() *cobra.Command {
	opts := newSourceOpts()
	var (
		exclude string
		reverse bool
		ascii   bool
	)

	cmd := &cobra.Command{
		Use:   "tree [package]",
		Short: "Print the dependency tree of a package",
		Long: `Print the dependency tree of a package.

Forward trees answer "what does this package depend on", reverse trees
(--reverse) answer "who depends on this package". Packages already printed
are marked "(visited)" and back-edges "(cycle)".`,
		Example: `  deptree tree A --source repo.txt
  deptree tree C --source repo.txt --reverse
  deptree tree --source ./Cargo.toml --transitive --exclude serde --ascii`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.root == "" {
				opts.root = args[0]
			}
			l, err := opts.load(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			root := l.root
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				return errors.New(errors.ErrCodeMissingField, "no package given; pass one as argument or with --root")
			}

			records := l.graph.Tree(root, exclude)
			if reverse {
				records = l.graph.ReverseTree(root, exclude)
			}
			if err := graph.WriteTree(cmd.OutOrStdout(), records, treeStyle(ascii)); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write tree")
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&exclude, "exclude", "x", "", "skip packages whose name contains this substring")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "show who depends on the package")
	cmd.Flags().BoolVarP(&ascii, "ascii", "a", false, "draw branch connectors")
	return cmd
}
