package d2

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/matzehuels/deptree/pkg/errors"
)

// Binary is the name of the d2 executable looked up on PATH.
var Binary = "d2"

// Render compiles D2 source into an image at out using the d2 binary. The
// output format follows the extension of out (.svg, .png, .pdf).
// Requires d2: https://d2lang.com/tour/install
func Render(ctx context.Context, src, out string) error {
	bin, err := exec.LookPath(Binary)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err,
			"rendering requires the d2 binary. Install with:\n  curl -fsSL https://d2lang.com/install.sh | sh -s --")
	}

	tmp, err := os.CreateTemp("", "deptree-*.d2")
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(src); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", tmp.Name())
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s", dir)
		}
	}

	cmd := exec.CommandContext(ctx, bin, tmp.Name(), out)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "d2: %s", bytes.TrimSpace(errBuf.Bytes()))
	}
	return nil
}

// Open opens path with the platform's default viewer and returns without
// waiting for the viewer to exit. The viewer outlives the calling process.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
