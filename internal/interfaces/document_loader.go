package interfaces

import (
	"context"
	"io"

	"github.com/ternarybob/horarium/internal/models"
)

// DocumentLoader turns source files into normalized raw documents.
// A loader either returns a complete RawDocument or an error - never a
// partial document.
type DocumentLoader interface {
	// Detect resolves a file path to a document format from its extension.
	// Returns an error wrapping models.ErrUnsupportedFormat for unknown extensions.
	Detect(path string) (models.DocumentFormat, error)

	// Load reads and parses the document at path
	Load(ctx context.Context, path string) (*models.RawDocument, error)

	// LoadReader spools the stream to a temp file and parses it.
	// The temp file is removed before LoadReader returns, on every path.
	LoadReader(ctx context.Context, r io.Reader, filename string) (*models.RawDocument, error)
}
