package source

import (
	"context"

	"github.com/matzehuels/deptree/pkg/deps/fixture"
	"github.com/matzehuels/deptree/pkg/graph"
)

// Fixture loads a plain-text dependency fixture.
type Fixture struct {
	Path string
}

// Load parses the fixture and loads every declared package.
func (f *Fixture) Load(_ context.Context, g *graph.Graph) (*Result, error) {
	mapping, err := fixture.ParseFile(f.Path)
	if err != nil {
		return nil, err
	}
	g.Load(mapping)
	return &Result{Kind: KindFixture, Location: f.Path}, nil
}
