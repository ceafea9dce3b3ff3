// -----------------------------------------------------------------------
// Last Modified: Friday, 14th August 2026 11:42:18 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/horarium/internal/models"
)

// ErrResultNotFound is returned when an import result is not in storage
var ErrResultNotFound = errors.New("import result not found")

// ErrBlobNotFound is returned when a source blob is not in storage
var ErrBlobNotFound = errors.New("blob not found")

// CatalogStorage - interface for reference catalog persistence
type CatalogStorage interface {
	// Course operations
	StoreCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	CountCourses(ctx context.Context) (int, error)

	// Teacher operations
	StoreTeacher(ctx context.Context, teacher *models.Teacher) error
	GetTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	CountTeachers(ctx context.Context) (int, error)

	// Room operations
	StoreRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	CountRooms(ctx context.Context) (int, error)

	// Bulk operations
	ClearAll(ctx context.Context) error
}

// ImportStorage - interface for import result persistence
type ImportStorage interface {
	// CRUD operations
	SaveResult(ctx context.Context, result *models.ImportResult) error
	GetResult(ctx context.Context, id string) (*models.ImportResult, error)
	DeleteResult(ctx context.Context, id string) error

	// List operations
	ListResults(ctx context.Context, limit int) ([]*models.ImportResult, error) // Newest first
	GetLatestForFile(ctx context.Context, fileName string) (*models.ImportResult, error)

	// Stats operations
	CountResults(ctx context.Context) (int, error)

	// Bulk operations
	ClearAll(ctx context.Context) error
}

// BlobStorage - interface for original source document bytes.
// Blobs are keyed by the import result ID they belong to.
type BlobStorage interface {
	SaveBlob(ctx context.Context, id string, data []byte) error
	GetBlob(ctx context.Context, id string) ([]byte, error)
	DeleteBlob(ctx context.Context, id string) error
}

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	CatalogStorage() CatalogStorage
	ImportStorage() ImportStorage
	BlobStorage() BlobStorage
	Close() error
}
