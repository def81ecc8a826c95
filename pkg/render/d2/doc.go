// Package d2 exports dependency graphs as D2 diagram source.
//
// [Export] produces a self-contained document: a direction header, one
// declaration per package and one line per unique dependency edge. Package
// names are mapped to D2 identifiers with [Sanitize]; names that collide after
// sanitization are kept apart by [Identifiers].
//
// [Render] hands the source to the d2 binary to produce SVG or PNG output.
// It is the only part of the package that needs anything outside the Go
// process.
//
//	src := d2.Export(g, graph.Forward)
//	if err := d2.Render(ctx, src, "deps.svg"); err != nil {
//	    return err
//	}
package d2
