//go:build !ocr

// -----------------------------------------------------------------------
// OCR Loader Stub - Used when the "ocr" build tag is not set. Image
// formats are rejected and scanned PDFs keep their native text.
// -----------------------------------------------------------------------

package loader

import (
	"context"
	"fmt"

	"github.com/ternarybob/horarium/internal/models"
)

// loadImage rejects image documents: without Tesseract there is no text path
func (s *Service) loadImage(ctx context.Context, path string, doc *models.RawDocument) error {
	return fmt.Errorf("%w: image OCR requires a build with -tags ocr", models.ErrUnsupportedFormat)
}

// ocrPdf reports that no OCR ran, leaving the caller on the native text layer
func (s *Service) ocrPdf(ctx context.Context, path string) (string, bool, error) {
	return "", false, nil
}
