// -----------------------------------------------------------------------
// Plain Text Loader - Line-normalized passthrough
// -----------------------------------------------------------------------

package loader

import (
	"fmt"
	"os"

	"github.com/ternarybob/horarium/internal/models"
)

// loadText keeps every non-empty line as a paragraph. Structure recovery
// is the text fallback parser's job, not the loader's.
func (s *Service) loadText(path string, doc *models.RawDocument) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read text file: %w", err)
	}

	doc.Paragraphs = splitPlainLines(string(data))
	return nil
}
