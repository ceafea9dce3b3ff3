package interfaces

import (
	"context"

	"github.com/ternarybob/horarium/internal/models"
)

// CatalogLoadResult reports how many entities a seed file contributed
type CatalogLoadResult struct {
	Courses  int `json:"courses"`
	Teachers int `json:"teachers"`
	Rooms    int `json:"rooms"`
}

// CatalogService manages the reference catalogs imports match against
type CatalogService interface {
	// LoadFile validates a YAML seed file and upserts its entities into storage
	LoadFile(ctx context.Context, path string) (*CatalogLoadResult, error)

	// Snapshot assembles a read-only catalog from storage.
	// Callers take a fresh snapshot before each import run.
	Snapshot(ctx context.Context) (*models.Catalog, error)
}
