// Package nodelink renders dependency graphs as Graphviz node-link diagrams.
//
// [ToDOT] produces DOT source with one rounded box per package and one arrow
// per dependency:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: "app"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]; no
// Graphviz installation is needed. The DOT text can also be saved and fed to
// external Graphviz tools.
package nodelink
