package interfaces

import (
	"context"
	"io"

	"github.com/ternarybob/horarium/internal/models"
)

// Importer runs the full schedule extraction pipeline: load, classify,
// parse, match, aggregate. Failures are reported inside the result
// (Success=false plus Error) - Import never panics and never returns nil.
// The catalog snapshot is read-only; callers refresh it per import.
type Importer interface {
	// Import extracts schedule entries from the document at path
	Import(ctx context.Context, path string, catalog *models.Catalog) *models.ImportResult

	// ImportReader extracts schedule entries from a document stream.
	// The filename hint carries the extension used for format detection.
	ImportReader(ctx context.Context, r io.Reader, filename string, catalog *models.Catalog) *models.ImportResult
}
