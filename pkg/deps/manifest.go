package deps

import (
	"path/filepath"

	"github.com/matzehuels/deptree/pkg/errors"
)

// ManifestParser reads the dependency declarations of a manifest file.
type ManifestParser interface {
	// Parse decodes manifest contents.
	Parse(data []byte) (*Manifest, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "cargo").
	Type() string
}

// Manifest holds the parsed contents of a manifest file.
type Manifest struct {
	Type              string   // Parser type that produced this result
	Name              string   // Package name, if declared
	Version           string   // Package version, if declared
	Dependencies      []string // Normal dependencies in declaration order
	DevDependencies   []string // Development-only dependencies
	BuildDependencies []string // Build script dependencies
}

// DetectManifest finds a parser that supports the given file path or URL.
// Only the last path element is matched. It returns an ErrCodeInvalidManifest
// error if no parser matches.
func DetectManifest(path string, parsers ...ManifestParser) (ManifestParser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidManifest, "unsupported manifest: %s", name)
}
