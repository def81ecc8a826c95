// Package config loads the deptree run configuration.
//
// A configuration names the package to analyze, where its manifest lives and
// how the result is printed. The original format is a flat XML document:
//
//	<Config>
//	    <PackageName>app</PackageName>
//	    <RepoSource>https://github.com/tokio-rs/mini-redis</RepoSource>
//	    <Mode>real</Mode>
//	    <AsciiTree>true</AsciiTree>
//	    <ExcludeFilter>serde</ExcludeFilter>
//	</Config>
//
// The same fields can be written as YAML or TOML; the format is picked by the
// file extension. Field names match case-insensitively and may use snake_case
// or kebab-case ("package_name", "ascii-tree").
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/errors"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "config.xml"

// Modes accepted in the Mode field.
const (
	ModeReal = "real" // Read a Cargo manifest
	ModeTest = "test" // Read a plain-text fixture
)

// Field names, as they appear in the XML format and in error messages.
const (
	FieldPackageName   = "PackageName"
	FieldRepoSource    = "RepoSource"
	FieldMode          = "Mode"
	FieldAsciiTree     = "AsciiTree"
	FieldExcludeFilter = "ExcludeFilter"
	FieldReverse       = "Reverse"
	FieldDiagram       = "Diagram"
	FieldTransitive    = "Transitive"
	FieldMaxDepth      = "MaxDepth"
)

// AppConfig is a validated run configuration.
type AppConfig struct {
	PackageName   string // Root package of the tree
	RepoSource    string // Manifest URL/path (real) or fixture path (test)
	Mode          string // ModeReal or ModeTest
	AsciiTree     bool   // Draw connectors instead of plain indentation
	ExcludeFilter string // Substring filter; empty disables filtering

	Reverse    bool   // Print who depends on PackageName instead
	Diagram    string // Write a D2 diagram to this path when set
	Transitive bool   // Resolve crates.io dependencies (real mode only)
	MaxDepth   int    // Crawl depth for Transitive
}

// Load reads and validates the configuration at path.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read config file")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot read config file")
	}
	return Parse(data, Format(path))
}

// Parse validates a configuration document in the given format.
func Parse(data []byte, format string) (*AppConfig, error) {
	var (
		fields map[string]string
		err    error
	)
	switch format {
	case "xml":
		fields, err = decodeXML(data)
	case "yaml":
		fields, err = decodeYAML(data)
	case "toml":
		fields, err = decodeTOML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return build(fields)
}

// Format maps a file name to its configuration format: "xml", "yaml" or
// "toml". Unknown extensions are treated as XML.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "xml"
	}
}

func build(fields map[string]string) (*AppConfig, error) {
	cfg := &AppConfig{MaxDepth: deps.DefaultMaxDepth}

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{FieldPackageName, &cfg.PackageName},
		{FieldRepoSource, &cfg.RepoSource},
	} {
		v, ok := fields[key(f.name)]
		if !ok || strings.TrimSpace(v) == "" {
			return nil, missing(f.name)
		}
		*f.dst = v
	}

	mode, ok := fields[key(FieldMode)]
	if !ok {
		return nil, missing(FieldMode)
	}
	cfg.Mode = strings.TrimSpace(mode)
	if cfg.Mode != ModeReal && cfg.Mode != ModeTest {
		return nil, invalid(FieldMode, "expected 'real' or 'test'")
	}

	ascii, ok := fields[key(FieldAsciiTree)]
	if !ok {
		return nil, missing(FieldAsciiTree)
	}
	var err error
	if cfg.AsciiTree, err = parseBool(FieldAsciiTree, ascii); err != nil {
		return nil, err
	}

	cfg.ExcludeFilter = fields[key(FieldExcludeFilter)]
	cfg.Diagram = strings.TrimSpace(fields[key(FieldDiagram)])

	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{FieldReverse, &cfg.Reverse},
		{FieldTransitive, &cfg.Transitive},
	} {
		if v, ok := fields[key(f.name)]; ok {
			if *f.dst, err = parseBool(f.name, v); err != nil {
				return nil, err
			}
		}
	}

	if v, ok := fields[key(FieldMaxDepth)]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return nil, invalid(FieldMaxDepth, fmt.Sprintf("expected a positive integer, got '%s'", strings.TrimSpace(v)))
		}
		cfg.MaxDepth = n
	}

	if cfg.Transitive && cfg.Mode != ModeReal {
		return nil, invalid(FieldTransitive, "only supported in real mode")
	}
	return cfg, nil
}

func parseBool(field, raw string) (bool, error) {
	switch v := strings.TrimSpace(raw); v {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, invalid(field, fmt.Sprintf("expected true/false, got '%s'", v))
	}
}

func missing(field string) error {
	return errors.New(errors.ErrCodeMissingField, "missing or empty required field: %s", field)
}

func invalid(field, msg string) error {
	return errors.New(errors.ErrCodeInvalidValue, "invalid value in field '%s': %s", field, msg)
}

// key normalizes a field name: "PackageName", "package_name" and
// "package-name" all become "packagename".
func key(name string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))
}
