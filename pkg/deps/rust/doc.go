// Package rust reads Rust dependency declarations.
//
// [CargoToml] parses Cargo.toml manifests with BurntSushi/toml and keeps the
// declaration order of the [dependencies] table, so trees and diagrams list
// direct dependencies the way the manifest author wrote them:
//
//	m, err := rust.CargoToml{}.Parse(data)
//	if err != nil {
//	    return err
//	}
//	g.SetDependencies(m.Name, m.Dependencies)
//
// Cargo.toml only names direct dependencies. Transitive ones come from
// crates.io through [crates.Resolve].
//
// [crates.Resolve]: github.com/matzehuels/deptree/pkg/integrations/crates.Resolve
package rust
