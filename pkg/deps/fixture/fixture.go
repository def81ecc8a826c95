// Package fixture reads dependency fixtures: plain-text package repositories
// used to exercise deptree without a registry.
//
// Each non-blank line declares one package and its direct dependencies:
//
//	# comment
//	A: B C
//	B: C
//	C:
//
// A package listed only as a dependency needs no line of its own. When a
// package is declared twice the later line wins.
package fixture

import (
	"bufio"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/deptree/pkg/errors"
)

// Extension is the file extension of fixture files.
const Extension = ".txt"

// Parse reads a fixture and returns the package -> dependencies mapping.
// Lines without a ':' separator and lines with an empty package name are
// reported with ErrCodeInvalidFixture and their line number.
func Parse(r io.Reader) (map[string][]string, error) {
	mapping := make(map[string][]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pkg, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFixture, "line %d: invalid line format: %q", lineNo, line)
		}
		pkg = strings.TrimSpace(pkg)
		if pkg == "" {
			return nil, errors.New(errors.ErrCodeInvalidFixture, "line %d: empty package name", lineNo)
		}
		mapping[pkg] = strings.Fields(rest)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFixture, err, "read fixture")
	}
	return mapping, nil
}

// ParseFile reads the fixture at path.
func ParseFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read fixture file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFixture, err, "cannot read fixture file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Write renders mapping in fixture format with packages in sorted order.
// Names that would not parse back (empty, containing whitespace, a package
// starting with '#' or containing ':') are rejected with
// ErrCodeInvalidFixture before anything is written.
func Write(w io.Writer, mapping map[string][]string) error {
	pkgs := slices.Sorted(maps.Keys(mapping))
	for _, pkg := range pkgs {
		if !writable(pkg) || strings.HasPrefix(pkg, "#") || strings.Contains(pkg, ":") {
			return errors.New(errors.ErrCodeInvalidFixture, "package %q cannot be written as a fixture line", pkg)
		}
		for _, dep := range mapping[pkg] {
			if !writable(dep) {
				return errors.New(errors.ErrCodeInvalidFixture, "dependency %q of %s cannot be written as a fixture line", dep, pkg)
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, pkg := range pkgs {
		line := pkg + ":"
		if deps := mapping[pkg]; len(deps) > 0 {
			line += " " + strings.Join(deps, " ")
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writable(name string) bool {
	return name != "" && !strings.ContainsFunc(name, unicode.IsSpace)
}
