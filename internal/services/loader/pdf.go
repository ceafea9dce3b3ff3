// -----------------------------------------------------------------------
// PDF Loader - Native text extraction with an OCR fallback for scanned
// documents
// -----------------------------------------------------------------------

package loader

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/ternarybob/horarium/internal/models"
)

// loadPdf extracts the native text layer first. When the layer is smaller
// than the configured scanned-text threshold the document is treated as
// scanned and handed to OCR; a build without OCR support keeps whatever
// native text exists rather than failing the import.
func (s *Service) loadPdf(ctx context.Context, path string, doc *models.RawDocument) error {
	text, err := pdfPlainText(path)
	if err != nil {
		// Distinguish a broken container from an extraction failure
		if _, vErr := api.ReadContextFile(path); vErr != nil {
			return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, vErr)
		}
		return fmt.Errorf("extract pdf text: %w", err)
	}

	if len(strings.TrimSpace(text)) < s.config.ScannedTextThreshold {
		s.logger.Info().
			Str("file", doc.FileName).
			Int("native_chars", len(strings.TrimSpace(text))).
			Msg("PDF appears to be image-based, attempting OCR")

		ocrText, used, ocrErr := s.ocrPdf(ctx, path)
		if ocrErr != nil {
			s.logger.Warn().
				Str("file", doc.FileName).
				Err(ocrErr).
				Msg("OCR fallback failed, keeping native text")
		} else if used {
			text = ocrText
			doc.OCRUsed = true
		}
	}

	doc.Paragraphs = splitPlainLines(text)
	return nil
}

// pdfPlainText reads the whole text layer of the PDF at path
func pdfPlainText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return "", fmt.Errorf("read text layer: %w", err)
	}
	return buf.String(), nil
}
