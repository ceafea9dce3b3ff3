package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/interfaces"
)

// blobKeyPrefix namespaces raw blob keys away from badgerhold's typed
// buckets, which share the same badger keyspace.
const blobKeyPrefix = "blob:"

// BlobStorage implements the BlobStorage interface over raw badger
// transactions. Source documents are opaque byte slices keyed by the
// import result they produced, so they skip badgerhold's struct encoding.
type BlobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewBlobStorage creates a new BlobStorage instance
func NewBlobStorage(db *BadgerDB, logger arbor.ILogger) interfaces.BlobStorage {
	return &BlobStorage{
		db:     db,
		logger: logger,
	}
}

func blobKey(id string) []byte {
	return []byte(blobKeyPrefix + id)
}

func (s *BlobStorage) SaveBlob(ctx context.Context, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("blob ID is required")
	}

	err := s.db.Badger().Update(func(txn *badger.Txn) error {
		return txn.Set(blobKey(id), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save blob: %w", err)
	}

	s.logger.Debug().Str("id", id).Int("bytes", len(data)).Msg("Source blob saved")
	return nil
}

func (s *BlobStorage) GetBlob(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := s.db.Badger().View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrBlobNotFound, id)
		}
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return data, nil
}

// DeleteBlob removes the stored bytes for id. Deleting a missing blob is
// not an error.
func (s *BlobStorage) DeleteBlob(ctx context.Context, id string) error {
	err := s.db.Badger().Update(func(txn *badger.Txn) error {
		return txn.Delete(blobKey(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
