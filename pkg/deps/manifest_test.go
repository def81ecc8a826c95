package deps

import (
	"testing"

	"github.com/matzehuels/deptree/pkg/errors"
)

type mockManifestParserForDetect struct {
	typeName     string
	supportsFunc func(string) bool
}

func (m *mockManifestParserForDetect) Type() string { return m.typeName }
func (m *mockManifestParserForDetect) Supports(filename string) bool {
	if m.supportsFunc != nil {
		return m.supportsFunc(filename)
	}
	return false
}
func (m *mockManifestParserForDetect) Parse(data []byte) (*Manifest, error) {
	return &Manifest{Type: m.typeName}, nil
}

func TestDetectManifest(t *testing.T) {
	cargo := &mockManifestParserForDetect{
		typeName: "cargo",
		supportsFunc: func(f string) bool {
			return f == "Cargo.toml"
		},
	}
	fixture := &mockManifestParserForDetect{
		typeName: "fixture",
		supportsFunc: func(f string) bool {
			return f == "repo.txt"
		},
	}

	tests := []struct {
		name     string
		path     string
		parsers  []ManifestParser
		wantType string
		wantErr  bool
	}{
		{
			name:     "matches cargo",
			path:     "/some/path/Cargo.toml",
			parsers:  []ManifestParser{cargo, fixture},
			wantType: "cargo",
			wantErr:  false,
		},
		{
			name:     "matches fixture",
			path:     "/project/repo.txt",
			parsers:  []ManifestParser{cargo, fixture},
			wantType: "fixture",
			wantErr:  false,
		},
		{
			name:    "no match",
			path:    "/project/unknown.yaml",
			parsers: []ManifestParser{cargo, fixture},
			wantErr: true,
		},
		{
			name:    "no parsers",
			path:    "/project/anything.txt",
			parsers: []ManifestParser{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := DetectManifest(tt.path, tt.parsers...)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidManifest) {
					t.Errorf("DetectManifest() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidManifest)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectManifest() unexpected error: %v", err)
			}
			if parser.Type() != tt.wantType {
				t.Errorf("DetectManifest().Type() = %q, want %q", parser.Type(), tt.wantType)
			}
		})
	}
}

func TestDetectManifestFirstMatch(t *testing.T) {
	p1 := &mockManifestParserForDetect{
		typeName: "first",
		supportsFunc: func(f string) bool {
			return f == "test.txt"
		},
	}
	p2 := &mockManifestParserForDetect{
		typeName: "second",
		supportsFunc: func(f string) bool {
			return f == "test.txt"
		},
	}

	parser, err := DetectManifest("/path/test.txt", p1, p2)
	if err != nil {
		t.Fatalf("DetectManifest() error: %v", err)
	}
	if parser.Type() != "first" {
		t.Errorf("DetectManifest() should return first matching parser, got %q", parser.Type())
	}
}
