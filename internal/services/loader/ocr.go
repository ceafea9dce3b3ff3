//go:build ocr

// -----------------------------------------------------------------------
// OCR Loader - Tesseract text recognition for image files and scanned
// PDFs, compiled in with the "ocr" build tag
// -----------------------------------------------------------------------

package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ternarybob/horarium/internal/models"
)

// loadImage runs Tesseract over the image file and keeps the recognized
// lines as paragraphs
func (s *Service) loadImage(ctx context.Context, path string, doc *models.RawDocument) error {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
	}

	text, err := client.Text()
	if err != nil {
		return fmt.Errorf("ocr image: %w", err)
	}

	doc.Paragraphs = splitPlainLines(text)
	doc.OCRUsed = true
	return nil
}

// ocrPdf recognizes text in a scanned PDF by extracting the embedded page
// images and running Tesseract over each in turn.
func (s *Service) ocrPdf(ctx context.Context, path string) (string, bool, error) {
	outDir, err := os.MkdirTemp(s.config.TempDir, "horarium-ocr-*")
	if err != nil {
		return "", false, fmt.Errorf("create ocr work dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractImagesFile(path, outDir, nil, model.NewDefaultConfiguration()); err != nil {
		return "", false, fmt.Errorf("extract page images: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", false, fmt.Errorf("read ocr work dir: %w", err)
	}
	if len(entries) == 0 {
		return "", false, fmt.Errorf("no page images found in %s", filepath.Base(path))
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage("eng"); err != nil {
		return "", false, fmt.Errorf("set ocr language: %w", err)
	}

	var text strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := client.SetImage(filepath.Join(outDir, entry.Name())); err != nil {
			s.logger.Warn().Str("image", entry.Name()).Err(err).Msg("Skipping unreadable page image")
			continue
		}
		pageText, err := client.Text()
		if err != nil {
			s.logger.Warn().Str("image", entry.Name()).Err(err).Msg("OCR failed for page image")
			continue
		}
		text.WriteString(pageText)
		text.WriteByte('\n')
	}

	return text.String(), true, nil
}
