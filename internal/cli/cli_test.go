package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/deptree/pkg/errors"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func repoFixture(t *testing.T) string {
	return writeFile(t, t.TempDir(), "repo.txt", "# sample\nA: B C\nB: C\n")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	repo := writeFile(t, dir, "repo.txt", "A: B C\nB: C\n")
	diagram := filepath.Join(dir, "out", "graph.d2")
	cfg := writeFile(t, dir, "config.xml", `<Config>
  <PackageName>A</PackageName>
  <RepoSource>`+repo+`</RepoSource>
  <Mode>test</Mode>
  <AsciiTree>true</AsciiTree>
  <Diagram>`+diagram+`</Diagram>
</Config>`)

	out, err := execute(t, "run", cfg, "--no-cache")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	for _, want := range []string{
		"Direct dependencies of 'A':",
		"  - B\n  - C\n",
		"A\n├── B\n│   └── C\n└── C (visited)\n",
		diagram,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(diagram)
	if err != nil {
		t.Fatalf("diagram not written: %v", err)
	}
	if want := "direction: right\n\nA: A\nB: B\nC: C\n\nA -> B\nA -> C\nB -> C\n"; string(data) != want {
		t.Errorf("diagram = %q, want %q", data, want)
	}
}

func TestRunReverseExclude(t *testing.T) {
	dir := t.TempDir()
	repo := writeFile(t, dir, "repo.txt", "B: C\nA: C\n")
	cfg := writeFile(t, dir, "deptree.yaml", "package_name: C\nrepo_source: "+repo+"\nmode: test\nascii_tree: false\nreverse: true\nexclude_filter: B\n")

	out, err := execute(t, "run", cfg, "--no-cache")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	_, tree, ok := strings.Cut(out, "Reverse dependency tree:\n")
	if !ok {
		t.Fatalf("output missing tree title:\n%s", out)
	}
	if tree != "C\n  A\n" {
		t.Errorf("reverse tree = %q, want %q", tree, "C\n  A\n")
	}
}

func TestRunConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "config.xml", "<Config><PackageName>A</PackageName></Config>")

	_, err := execute(t, "run", bad)
	if !errors.Is(err, errors.ErrCodeMissingField) {
		t.Errorf("run code = %v, want %v", errors.GetCode(err), errors.ErrCodeMissingField)
	}

	_, err = execute(t, "run", filepath.Join(dir, "missing.xml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("run code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestDeps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[package]\nname = \"app\"\n\n[dependencies]\ntokio = \"1\"\nserde = { version = \"1\" }\n")

	out, err := execute(t, "deps", "--source", dir, "--no-cache")
	if err != nil {
		t.Fatalf("deps error = %v", err)
	}
	if !strings.Contains(out, "Direct dependencies of 'app':") || !strings.Contains(out, "  - tokio\n  - serde\n") {
		t.Errorf("output:\n%s", out)
	}

	out, err = execute(t, "deps", "--source", repoFixture(t), "--no-cache")
	if err != nil {
		t.Fatalf("deps on single-root fixture error = %v", err)
	}
	if !strings.Contains(out, "Direct dependencies of 'A':") || !strings.Contains(out, "  - B\n  - C\n") {
		t.Errorf("single-root fixture output:\n%s", out)
	}

	twoRoots := writeFile(t, t.TempDir(), "repo.txt", "A: C\nB: C\n")
	_, err = execute(t, "deps", "--source", twoRoots, "--no-cache")
	if !errors.Is(err, errors.ErrCodeMissingField) {
		t.Errorf("two-root fixture code = %v, want %v", errors.GetCode(err), errors.ErrCodeMissingField)
	}
	if err != nil && !strings.Contains(err.Error(), "(A, B)") {
		t.Errorf("two-root fixture error = %v, want the roots listed", err)
	}
}

func TestTree(t *testing.T) {
	repo := repoFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"forward", []string{"A"}, "A\n  B\n    C\n  C (visited)\n"},
		{"only root", nil, "A\n  B\n    C\n  C (visited)\n"},
		{"root flag", []string{"--root", "A", "--exclude", "C"}, "A\n  B\n"},
		{"reverse", []string{"C", "--reverse"}, "C\n  A\n  B\n    A (visited)\n"},
		{"ascii", []string{"A", "--ascii"}, "A\n├── B\n│   └── C\n└── C (visited)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"tree", "--source", repo, "--no-cache"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("tree error = %v", err)
			}
			if out != tt.want {
				t.Errorf("tree output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestTreeRequiresSource(t *testing.T) {
	if _, err := execute(t, "tree", "A"); err == nil {
		t.Error("tree without --source error = nil")
	}
}

func TestDiagramStdout(t *testing.T) {
	repo := repoFixture(t)

	out, err := execute(t, "diagram", "--source", repo, "--no-cache", "--reverse")
	if err != nil {
		t.Fatalf("diagram error = %v", err)
	}
	if want := "direction: right\n\nA: A\nB: B\nC: C\n\nB -> A\nC -> A\nC -> B\n"; out != want {
		t.Errorf("diagram = %q, want %q", out, want)
	}

	out, err = execute(t, "diagram", "--source", repo, "--no-cache", "--format", "dot", "--root", "A")
	if err != nil {
		t.Fatalf("diagram error = %v", err)
	}
	if !strings.Contains(out, `"A" -> "B";`) || !strings.Contains(out, "penwidth") {
		t.Errorf("dot output:\n%s", out)
	}
}

func TestDiagramJSONFile(t *testing.T) {
	repo := repoFixture(t)
	path := filepath.Join(t.TempDir(), "graph.json")

	if _, err := execute(t, "diagram", "--source", repo, "--no-cache", "-f", "json", "-o", path); err != nil {
		t.Fatalf("diagram error = %v", err)
	}

	var doc struct {
		Nodes []struct{ ID string } `json:"nodes"`
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("nodes = %v, want 3", doc.Nodes)
	}

	out, err := execute(t, "tree", "A", "--source", path, "--no-cache")
	if err != nil {
		t.Fatalf("tree from JSON error = %v", err)
	}
	if out != "A\n  B\n    C\n  C (visited)\n" {
		t.Errorf("tree from JSON = %q", out)
	}
}

func TestDiagramFixture(t *testing.T) {
	repo := repoFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"forward", nil, "A: B C\nB: C\nC:\n"},
		{"reverse", []string{"--reverse"}, "A:\nB: A\nC: A B\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"diagram", "--source", repo, "--no-cache", "-f", "fixture"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("diagram error = %v", err)
			}
			if out != tt.want {
				t.Errorf("diagram = %q, want %q", out, tt.want)
			}
		})
	}

	// The reversed fixture loads back as a source whose forward tree is the
	// reverse tree of the original.
	path := filepath.Join(t.TempDir(), "reversed.txt")
	if _, err := execute(t, "diagram", "--source", repo, "--no-cache", "-f", "fixture", "--reverse", "-o", path); err != nil {
		t.Fatalf("diagram error = %v", err)
	}
	out, err := execute(t, "tree", "C", "--source", path, "--no-cache")
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}
	if want := "C\n  A\n  B\n    A (visited)\n"; out != want {
		t.Errorf("tree of reversed fixture = %q, want %q", out, want)
	}
}

func TestDiagramErrors(t *testing.T) {
	repo := repoFixture(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"-f", "gif"}, errors.ErrCodeInvalidValue},
		{"svg to stdout", []string{"-f", "svg"}, errors.ErrCodeInvalidInput},
		{"render without output", []string{"--render"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"diagram", "--source", repo, "--no-cache"}, tt.args...)
			if _, err := execute(t, args...); !errors.Is(err, tt.code) {
				t.Errorf("code = %v (%v), want %v", errors.GetCode(err), err, tt.code)
			}
		})
	}
}
