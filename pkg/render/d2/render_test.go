package d2

import (
	"context"
	"testing"

	"github.com/matzehuels/deptree/pkg/errors"
)

func TestRenderMissingBinary(t *testing.T) {
	old := Binary
	Binary = "deptree-no-such-d2-binary"
	t.Cleanup(func() { Binary = old })

	err := Render(context.Background(), "a -> b\n", t.TempDir()+"/out.svg")
	if err == nil {
		t.Fatal("Render() error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeRenderFailed)
	}
}
