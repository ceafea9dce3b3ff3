package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db      *BadgerDB
	catalog interfaces.CatalogStorage
	imports interfaces.ImportStorage
	blobs   interfaces.BlobStorage
	logger  arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:      db,
		catalog: NewCatalogStorage(db, logger),
		imports: NewImportStorage(db, logger),
		blobs:   NewBlobStorage(db, logger),
		logger:  logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// CatalogStorage returns the Catalog storage interface
func (m *Manager) CatalogStorage() interfaces.CatalogStorage {
	return m.catalog
}

// ImportStorage returns the Import storage interface
func (m *Manager) ImportStorage() interfaces.ImportStorage {
	return m.imports
}

// BlobStorage returns the Blob storage interface
func (m *Manager) BlobStorage() interfaces.BlobStorage {
	return m.blobs
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
