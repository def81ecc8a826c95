package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/deps/fixture"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
	gio "github.com/matzehuels/deptree/pkg/io"
	"github.com/matzehuels/deptree/pkg/render/d2"
	"github.com/matzehuels/deptree/pkg/render/nodelink"
)

// Diagram output formats.
const (
	formatD2      = "d2"
	formatDOT     = "dot"
	formatSVG     = "svg"
	formatPNG     = "png"
	formatJSON    = "json"
	formatFixture = "fixture"
)

var diagramFormats = []string{formatD2, formatDOT, formatSVG, formatPNG, formatJSON, formatFixture}

type diagramOpts struct {
	format  string
	output  string
	reverse bool
	render  bool // compile D2 output with the d2 binary
	open    bool // open the rendered image
}

// diagramCommand exports the loaded graph as a diagram.
func (c *CLI) diagramCommand() *cobra.Command {
	opts := newSourceOpts()
	dopts := diagramOpts{format: formatD2}

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Export the dependency graph as a diagram",
		Long: `Export the dependency graph as a diagram.

Formats:
  d2    D2 source (render with --render, requires the d2 binary)
  dot   Graphviz DOT source
  svg   Graphviz SVG, rendered in-process
  png   Graphviz PNG, rendered in-process
  json     {"nodes": [...], "edges": [...]} graph document
  fixture  "PKG: DEP DEP" lines, loadable again as a .txt source;
           with --reverse each line lists a package's dependents`,
		Example: `  deptree diagram --source repo.txt
  deptree diagram --source ./Cargo.toml -o deps.d2 --render --open
  deptree diagram --source repo.txt --format svg -o deps.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.load(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			return c.exportDiagram(cmd.Context(), cmd.OutOrStdout(), l, dopts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&dopts.format, "format", "f", dopts.format, "output format: "+strings.Join(diagramFormats, ", "))
	cmd.Flags().StringVarP(&dopts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&dopts.reverse, "reverse", "r", false, "point arrows from dependencies to dependents")
	cmd.Flags().BoolVar(&dopts.render, "render", false, "render D2 output to SVG with the d2 binary")
	cmd.Flags().BoolVar(&dopts.open, "open", false, "open the rendered image")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return diagramFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// exportDiagram renders l in the requested format to w or opts.output.
func (c *CLI) exportDiagram(ctx context.Context, w io.Writer, l *loaded, opts diagramOpts) error {
	dir := graph.Forward
	if opts.reverse {
		dir = graph.Reverse
	}

	format := strings.ToLower(opts.format)
	if (format == formatSVG || format == formatPNG) && opts.output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--format %s needs an output file (-o)", format)
	}
	if opts.render && (format != formatD2 || opts.output == "") {
		return errors.New(errors.ErrCodeInvalidInput, "--render needs --format d2 and an output file (-o)")
	}

	var data []byte
	switch format {
	case formatD2:
		data = []byte(d2.Export(l.graph, dir))
	case formatDOT:
		data = []byte(nodelink.ToDOT(l.graph, nodelink.Options{Reverse: opts.reverse, Highlight: l.root}))
	case formatSVG, formatPNG:
		dot := nodelink.ToDOT(l.graph, nodelink.Options{Reverse: opts.reverse, Highlight: l.root})
		var err error
		if format == formatSVG {
			data, err = nodelink.RenderSVG(ctx, dot)
		} else {
			data, err = nodelink.RenderPNG(ctx, dot)
		}
		if err != nil {
			return err
		}
	case formatJSON:
		var buf bytes.Buffer
		if err := gio.WriteJSON(l.graph, &buf); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
		}
		data = buf.Bytes()
	case formatFixture:
		src := l.graph
		if opts.reverse {
			src = src.Reversed()
		}
		mapping := make(map[string][]string, src.Len())
		for _, name := range src.Names() {
			mapping[name] = src.Dependencies(name)
		}
		var buf bytes.Buffer
		if err := fixture.Write(&buf, mapping); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return errors.New(errors.ErrCodeInvalidValue, "unsupported format %q (want one of %s)", opts.format, strings.Join(diagramFormats, ", "))
	}

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := writeDiagram(opts.output, string(data)); err != nil {
		return err
	}
	printSuccess(w, "Diagram written")
	printFile(w, opts.output)
	printStats(w, l.graph.Len(), l.graph.EdgeCount())

	image := opts.output
	if opts.render {
		image = strings.TrimSuffix(opts.output, filepath.Ext(opts.output)) + ".svg"
		if image == opts.output {
			image += ".svg"
		}
		prog := newProgress(c.Logger)
		if err := d2.Render(ctx, string(data), image); err != nil {
			return err
		}
		prog.done("Rendered " + image)
		printFile(w, image)
	}

	if opts.open {
		if err := d2.Open(image); err != nil {
			printWarning(w, "could not open %s: %v", image, err)
		}
	} else if format == formatD2 && !opts.render {
		fmt.Fprintln(w)
		printNextStep(w, "Render it", "d2 "+opts.output+" "+strings.TrimSuffix(opts.output, filepath.Ext(opts.output))+".svg")
	}
	return nil
}
