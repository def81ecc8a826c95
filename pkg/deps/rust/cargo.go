package rust

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/errors"
)

// ManifestFile is the conventional Cargo manifest filename.
const ManifestFile = "Cargo.toml"

// CargoToml parses Cargo.toml manifests.
type CargoToml struct{}

func (CargoToml) Type() string              { return "cargo" }
func (CargoToml) Supports(name string) bool { return strings.EqualFold(name, ManifestFile) }

// Parse decodes a Cargo manifest. Dependency names keep the order in which
// they appear in the document, whether declared inline (`serde = "1"`), as
// inline tables, or as `[dependencies.serde]` sub-tables. A manifest without
// any normal dependency is rejected with ErrCodeInvalidManifest.
func (CargoToml) Parse(data []byte) (*deps.Manifest, error) {
	var cargo cargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid Cargo.toml format")
	}

	m := &deps.Manifest{
		Type:              "cargo",
		Name:              cargo.Package.Name,
		Version:           version(cargo.Package.Version),
		Dependencies:      tableKeys(md, "dependencies"),
		DevDependencies:   tableKeys(md, "dev-dependencies"),
		BuildDependencies: tableKeys(md, "build-dependencies"),
	}
	if len(m.Dependencies) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "invalid Cargo.toml format: no [dependencies] section")
	}
	return m, nil
}

// tableKeys returns the direct child keys of table in document order.
func tableKeys(md toml.MetaData, table string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != table {
			continue
		}
		if name := key[1]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// version returns the package version, or "" when it is inherited from the
// workspace (`version.workspace = true`).
func version(v any) string {
	s, _ := v.(string)
	return s
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"` // string or {workspace = true}
	} `toml:"package"`
}
