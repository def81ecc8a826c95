// Package render groups the diagram exporters for dependency graphs.
//
// # D2
//
// The [d2] subpackage emits D2 source with one declaration per package and
// one arrow per unique edge. The external d2 binary can compile it to SVG,
// PNG or PDF:
//
//	src := d2.Export(g, graph.Forward)
//	err := d2.Render(ctx, src, "deps.svg")
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage builds Graphviz DOT and renders it in-process:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: root})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [d2]: github.com/matzehuels/deptree/pkg/render/d2
// [nodelink]: github.com/matzehuels/deptree/pkg/render/nodelink
package render
