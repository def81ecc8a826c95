package source

import (
	"context"

	"github.com/matzehuels/deptree/pkg/graph"
	gio "github.com/matzehuels/deptree/pkg/io"
)

// JSON loads a graph document written by `deptree diagram --format json`.
type JSON struct {
	Path string
}

// Load decodes the document into g.
func (j *JSON) Load(_ context.Context, g *graph.Graph) (*Result, error) {
	if err := gio.DecodeFile(j.Path, g); err != nil {
		return nil, err
	}
	return &Result{Kind: KindJSON, Location: j.Path}, nil
}
