// -----------------------------------------------------------------------
// Document Loader Service - Resolve file formats and parse source
// documents into normalized raw documents
// -----------------------------------------------------------------------

package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
)

// Service implements interfaces.DocumentLoader with one parser per format.
// Every parser produces the same RawDocument shape so downstream stages
// never branch on format.
type Service struct {
	logger arbor.ILogger
	config common.ImportConfig
}

// Compile-time assertion
var _ interfaces.DocumentLoader = (*Service)(nil)

// NewService creates a new document loader service
func NewService(config common.ImportConfig, logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		config: config,
	}
}

// formatByExtension maps lowercase file extensions to document formats
var formatByExtension = map[string]models.DocumentFormat{
	"docx": models.FormatDocx,
	"odt":  models.FormatOdt,
	"xlsx": models.FormatXlsx,
	"csv":  models.FormatCsv,
	"pdf":  models.FormatPdf,
	"html": models.FormatHTML,
	"htm":  models.FormatHTML,
	"md":   models.FormatMarkdown,
	"txt":  models.FormatText,
	"png":  models.FormatImage,
	"jpg":  models.FormatImage,
	"jpeg": models.FormatImage,
	"tiff": models.FormatImage,
}

// Detect resolves a file path to a document format from its extension
func (s *Service) Detect(path string) (models.DocumentFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", models.ErrUnsupportedFormat, filepath.Base(path))
	}

	format, ok := formatByExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: .%s", models.ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// Load reads and parses the document at path into a RawDocument
func (s *Service) Load(ctx context.Context, path string) (*models.RawDocument, error) {
	format, err := s.Detect(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}
	if s.config.MaxFileSize > 0 && info.Size() > s.config.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			models.ErrFileTooLarge, filepath.Base(path), info.Size(), s.config.MaxFileSize)
	}

	doc := &models.RawDocument{
		FileName: filepath.Base(path),
		Format:   format,
	}

	switch format {
	case models.FormatDocx:
		err = s.loadDocx(path, doc)
	case models.FormatOdt:
		err = s.loadOdt(path, doc)
	case models.FormatXlsx:
		err = s.loadXlsx(path, doc)
	case models.FormatCsv:
		err = s.loadCsv(path, doc)
	case models.FormatPdf:
		err = s.loadPdf(ctx, path, doc)
	case models.FormatHTML:
		err = s.loadHTML(path, doc)
	case models.FormatMarkdown:
		err = s.loadMarkdown(path, doc)
	case models.FormatText:
		err = s.loadText(path, doc)
	case models.FormatImage:
		err = s.loadImage(ctx, path, doc)
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("file", doc.FileName).
		Str("format", string(format)).
		Int("paragraphs", len(doc.Paragraphs)).
		Int("tables", len(doc.Tables)).
		Bool("ocr_used", doc.OCRUsed).
		Msg("Document loaded")

	return doc, nil
}

// LoadReader spools the stream to a temp file and parses it. The temp file
// is removed before LoadReader returns, on every path.
func (s *Service) LoadReader(ctx context.Context, r io.Reader, filename string) (*models.RawDocument, error) {
	if _, err := s.Detect(filename); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.config.TempDir, "horarium-import-*"+filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("create spool file: %w", err)
	}
	defer os.Remove(tmp.Name())

	src := r
	if s.config.MaxFileSize > 0 {
		// One extra byte so an over-limit stream is distinguishable from an
		// exactly-at-limit one
		src = io.LimitReader(r, s.config.MaxFileSize+1)
	}

	written, copyErr := io.Copy(tmp, src)
	if closeErr := tmp.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return nil, fmt.Errorf("spool document stream: %w", copyErr)
	}
	if s.config.MaxFileSize > 0 && written > s.config.MaxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", models.ErrFileTooLarge, filename, s.config.MaxFileSize)
	}

	doc, err := s.Load(ctx, tmp.Name())
	if err != nil {
		return nil, err
	}

	// The caller's name, not the spool file's
	doc.FileName = filename
	return doc, nil
}

// splitPlainLines normalizes extracted text into trimmed, non-empty lines
func splitPlainLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
