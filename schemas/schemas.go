// Package schemas bundles the CSW 2.0.2 and ISO 19139 schema sets that GetRecords
// responses are validated against. The files are laid out as on
// schemas.opengis.net, so relative imports between them resolve once they are
// written to disk.
package schemas

import (
	"embed"
	"os"
)

//go:embed csw filter ows xlink iso
var bundle embed.FS

// Extract writes the bundled schema tree into dir, which must not already contain
// any of its files.
func Extract(dir string) error {
	return os.CopyFS(dir, bundle)
}
