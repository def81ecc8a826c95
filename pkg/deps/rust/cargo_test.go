package rust

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/deptree/pkg/errors"
)

func TestCargoToml_Supports(t *testing.T) {
	parser := CargoToml{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"Cargo.toml", true},
		{"cargo.toml", true},
		{"CARGO.TOML", true},
		{"Cargo.lock", false},
		{"package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestCargoToml_Parse(t *testing.T) {
	content := `[package]
name = "my-crate"
version = "0.1.0"

[dependencies]
tokio = { version = "1.0", features = ["full"] }
serde = "1.0"
anyhow = "1"

[dependencies.clap]
version = "4"
features = ["derive"]

[dev-dependencies]
pretty_assertions = "1.0"

[build-dependencies]
cc = "1"
`

	m, err := CargoToml{}.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Name != "my-crate" {
		t.Errorf("Name = %q, want %q", m.Name, "my-crate")
	}
	if m.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", m.Version, "0.1.0")
	}
	if diff := cmp.Diff([]string{"tokio", "serde", "anyhow", "clap"}, m.Dependencies); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pretty_assertions"}, m.DevDependencies); diff != "" {
		t.Errorf("DevDependencies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cc"}, m.BuildDependencies); diff != "" {
		t.Errorf("BuildDependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestCargoToml_ParseWorkspaceVersion(t *testing.T) {
	content := `[package]
name = "member"
version.workspace = true

[dependencies]
serde.workspace = true
`
	m, err := CargoToml{}.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Version != "" {
		t.Errorf("Version = %q, want empty", m.Version)
	}
	if diff := cmp.Diff([]string{"serde"}, m.Dependencies); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestCargoToml_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no dependencies section", "[package]\nname = \"x\"\n"},
		{"empty dependencies", "[package]\nname = \"x\"\n\n[dependencies]\n\n[dev-dependencies]\nfoo = \"1\"\n"},
		{"workspace root", "[workspace]\nmembers = [\"a\", \"b\"]\n"},
		{"malformed", "[package\nname = "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CargoToml{}.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidManifest)
			}
		})
	}
}
