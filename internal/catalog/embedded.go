package catalog

import _ "embed"

// defaultTable is the six-project dataset built into the binary, used
// when no catalog file is configured.
//
//go:embed default_catalog.md
var defaultTable []byte

// Embedded constructs the catalog from the built-in dataset.
func Embedded() (*Catalog, error) {
	return build(defaultTable)
}
