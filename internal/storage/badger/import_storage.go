package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ImportStorage implements the ImportStorage interface for Badger
type ImportStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewImportStorage creates a new ImportStorage instance
func NewImportStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ImportStorage {
	return &ImportStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ImportStorage) SaveResult(ctx context.Context, result *models.ImportResult) error {
	if result.ID == "" {
		return fmt.Errorf("import result ID is required")
	}

	if err := s.db.Store().Upsert(result.ID, result); err != nil {
		return fmt.Errorf("failed to save import result: %w", err)
	}
	return nil
}

func (s *ImportStorage) GetResult(ctx context.Context, id string) (*models.ImportResult, error) {
	var result models.ImportResult
	if err := s.db.Store().Get(id, &result); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrResultNotFound, id)
		}
		return nil, fmt.Errorf("failed to get import result: %w", err)
	}
	return &result, nil
}

func (s *ImportStorage) DeleteResult(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.ImportResult{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: %s", interfaces.ErrResultNotFound, id)
		}
		return fmt.Errorf("failed to delete import result: %w", err)
	}
	return nil
}

func (s *ImportStorage) ListResults(ctx context.Context, limit int) ([]*models.ImportResult, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []models.ImportResult
	if err := s.db.Store().Find(&results, query); err != nil {
		return nil, fmt.Errorf("failed to list import results: %w", err)
	}

	out := make([]*models.ImportResult, len(results))
	for i := range results {
		out[i] = &results[i]
	}
	return out, nil
}

// GetLatestForFile returns the most recent result recorded for a file name.
// The watcher uses this to decide whether a drop-folder file changed since
// its last import.
func (s *ImportStorage) GetLatestForFile(ctx context.Context, fileName string) (*models.ImportResult, error) {
	var results []models.ImportResult
	query := badgerhold.Where("FileName").Eq(fileName).SortBy("CreatedAt").Reverse().Limit(1)
	if err := s.db.Store().Find(&results, query); err != nil {
		return nil, fmt.Errorf("failed to query import results: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no result for file %s", interfaces.ErrResultNotFound, fileName)
	}
	return &results[0], nil
}

func (s *ImportStorage) CountResults(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.ImportResult{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count import results: %w", err)
	}
	return int(count), nil
}

func (s *ImportStorage) ClearAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.ImportResult{}, nil); err != nil {
		return fmt.Errorf("failed to clear import results: %w", err)
	}
	s.logger.Debug().Msg("Import storage cleared")
	return nil
}
