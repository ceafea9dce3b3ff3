// -----------------------------------------------------------------------
// Schedule Extraction Service - Runs the import pipeline from source
// document to matched schedule entries
// -----------------------------------------------------------------------

package extraction

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
)

// Service implements interfaces.Importer
type Service struct {
	logger  arbor.ILogger
	loader  interfaces.DocumentLoader
	matcher interfaces.EntityMatcher
}

// Compile-time assertion
var _ interfaces.Importer = (*Service)(nil)

// NewService creates a new extraction service
func NewService(loader interfaces.DocumentLoader, matcher interfaces.EntityMatcher, logger arbor.ILogger) *Service {
	return &Service{
		logger:  logger,
		loader:  loader,
		matcher: matcher,
	}
}

// Import extracts schedule entries from the document at path and resolves
// them against the catalog snapshot. All failures land in the result;
// entries accumulated before a failure are kept.
func (s *Service) Import(ctx context.Context, path string, catalog *models.Catalog) *models.ImportResult {
	return s.runImport(filepath.Base(path), catalog, func() (*models.RawDocument, error) {
		return s.loader.Load(ctx, path)
	})
}

// ImportReader extracts schedule entries from a document stream. The
// filename hint drives format detection and is recorded on the result.
func (s *Service) ImportReader(ctx context.Context, r io.Reader, filename string, catalog *models.Catalog) *models.ImportResult {
	return s.runImport(filename, catalog, func() (*models.RawDocument, error) {
		return s.loader.LoadReader(ctx, r, filename)
	})
}

// runImport drives the pipeline stages and owns the result lifecycle.
// A panic in any stage is recovered into the result, never propagated.
func (s *Service) runImport(fileName string, catalog *models.Catalog, load func() (*models.RawDocument, error)) (result *models.ImportResult) {
	started := time.Now()
	result = &models.ImportResult{
		ID:        common.NewImportID(),
		FileName:  fileName,
		CreatedAt: started,
		Entries:   []models.ScheduleEntry{},
	}

	stage := "load"
	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Error = fmt.Sprintf("%s: %s stage failed: %v", fileName, stage, r)
			s.logger.Error().
				Str("file", fileName).
				Str("stage", stage).
				Msgf("Import recovered from panic: %v", r)
		}
		result.EntryCount = len(result.Entries)
		result.DurationMs = time.Since(started).Milliseconds()
	}()

	s.logger.Info().Str("file", fileName).Msg("Starting schedule import")

	doc, err := load()
	if err != nil {
		result.Error = fmt.Sprintf("%s: load failed: %v", fileName, err)
		s.logger.Warn().Err(err).Str("file", fileName).Msg("Document load failed")
		return result
	}

	stage = "extract"
	s.extract(doc, result)

	stage = "match"
	s.matchEntries(result, catalog)

	result.Success = true
	s.logger.Info().
		Str("file", fileName).
		Str("format", string(result.Format)).
		Int("entries", len(result.Entries)).
		Msg("Schedule import complete")

	return result
}

// extract collects entries from every classified table, then from the
// free-text fallback. Table entries always precede text entries.
func (s *Service) extract(doc *models.RawDocument, result *models.ImportResult) {
	result.Format = doc.Format
	result.OCRUsed = doc.OCRUsed
	result.ExtractedText = doc.Text()

	for i, table := range doc.Tables {
		header := table.Header()
		if !IsScheduleTable(header) {
			s.logger.Debug().Int("table", i).Msg("Table skipped: no schedule keywords in header")
			continue
		}

		cm := MapColumns(header)
		entries := parseTable(table, cm)
		s.logger.Debug().
			Int("table", i).
			Bool("grid", cm.HasDayColumns()).
			Int("entries", len(entries)).
			Msg("Parsed schedule table")

		result.Entries = append(result.Entries, entries...)
	}

	textEntries := parseTextContent(result.ExtractedText)
	if len(textEntries) > 0 {
		s.logger.Debug().Int("entries", len(textEntries)).Msg("Text fallback produced entries")
	}
	result.Entries = append(result.Entries, textEntries...)
}

// matchEntries resolves every entry against the catalog snapshot in place.
func (s *Service) matchEntries(result *models.ImportResult, catalog *models.Catalog) {
	if catalog == nil {
		return
	}
	for i := range result.Entries {
		s.matcher.Match(&result.Entries[i], catalog)
	}
}
