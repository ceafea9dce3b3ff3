package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	options := badgerhold.DefaultOptions
	options.Dir = t.TempDir()
	options.ValueDir = options.Dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatalf("Failed to open badger store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store, logger: arbor.NewLogger()}
}

func TestCatalogStorage(t *testing.T) {
	db := newTestDB(t)
	storage := NewCatalogStorage(db, arbor.NewLogger())
	ctx := context.Background()

	t.Run("store and get course", func(t *testing.T) {
		err := storage.StoreCourse(ctx, &models.Course{ID: 1, Name: "Algebra I", Code: "MATH101"})
		require.NoError(t, err)

		course, err := storage.GetCourse(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Algebra I", course.Name)
		assert.Equal(t, "MATH101", course.Code)
	})

	t.Run("store rejects zero ID", func(t *testing.T) {
		err := storage.StoreCourse(ctx, &models.Course{Name: "No ID"})
		assert.Error(t, err)
	})

	t.Run("get missing course", func(t *testing.T) {
		_, err := storage.GetCourse(ctx, 999)
		assert.Error(t, err)
	})

	t.Run("upsert replaces course", func(t *testing.T) {
		require.NoError(t, storage.StoreCourse(ctx, &models.Course{ID: 2, Name: "Biology"}))
		require.NoError(t, storage.StoreCourse(ctx, &models.Course{ID: 2, Name: "Biology II", Code: "SCI202"}))

		course, err := storage.GetCourse(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Biology II", course.Name)

		count, err := storage.CountCourses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("teachers and rooms", func(t *testing.T) {
		require.NoError(t, storage.StoreTeacher(ctx, &models.Teacher{ID: 10, FirstName: "John", LastName: "Smith", Active: true}))
		require.NoError(t, storage.StoreTeacher(ctx, &models.Teacher{ID: 11, FirstName: "Mary", LastName: "Johnson", Active: true}))
		require.NoError(t, storage.StoreRoom(ctx, &models.Room{ID: 20, Number: "101"}))

		teacher, err := storage.GetTeacher(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", teacher.FullName())
		assert.True(t, teacher.Active)

		teachers, err := storage.ListTeachers(ctx)
		require.NoError(t, err)
		require.Len(t, teachers, 2)
		assert.Equal(t, "Johnson", teachers[0].LastName, "teachers list sorted by last name")

		rooms, err := storage.ListRooms(ctx)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "101", rooms[0].Number)

		count, err := storage.CountTeachers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("clear all", func(t *testing.T) {
		require.NoError(t, storage.ClearAll(ctx))

		for name, count := range map[string]func(context.Context) (int, error){
			"courses":  storage.CountCourses,
			"teachers": storage.CountTeachers,
			"rooms":    storage.CountRooms,
		} {
			n, err := count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n, "%s should be empty after ClearAll", name)
		}
	})
}

func TestImportStorage(t *testing.T) {
	db := newTestDB(t)
	storage := NewImportStorage(db, arbor.NewLogger())
	ctx := context.Background()

	newResult := func(id, fileName string, createdAt time.Time) *models.ImportResult {
		return &models.ImportResult{
			ID:        id,
			FileName:  fileName,
			Format:    models.FormatPdf,
			Success:   true,
			Entries:   []models.ScheduleEntry{{Day: models.Monday, CourseName: "Algebra I"}},
			CreatedAt: createdAt,
		}
	}

	t.Run("save and get", func(t *testing.T) {
		result := newResult("imp_1", "schedule.pdf", time.Now())
		require.NoError(t, storage.SaveResult(ctx, result))

		got, err := storage.GetResult(ctx, "imp_1")
		require.NoError(t, err)
		assert.Equal(t, "schedule.pdf", got.FileName)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "Algebra I", got.Entries[0].CourseName)
	})

	t.Run("save rejects empty ID", func(t *testing.T) {
		assert.Error(t, storage.SaveResult(ctx, &models.ImportResult{FileName: "x.pdf"}))
	})

	t.Run("get missing result", func(t *testing.T) {
		_, err := storage.GetResult(ctx, "imp_missing")
		assert.ErrorIs(t, err, interfaces.ErrResultNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		base := time.Now()
		require.NoError(t, storage.SaveResult(ctx, newResult("imp_old", "a.pdf", base.Add(-2*time.Hour))))
		require.NoError(t, storage.SaveResult(ctx, newResult("imp_new", "b.pdf", base)))

		results, err := storage.ListResults(ctx, 0)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "imp_new", results[0].ID)

		limited, err := storage.ListResults(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("latest for file", func(t *testing.T) {
		base := time.Now()
		require.NoError(t, storage.SaveResult(ctx, newResult("imp_v1", "weekly.xlsx", base.Add(-time.Hour))))
		require.NoError(t, storage.SaveResult(ctx, newResult("imp_v2", "weekly.xlsx", base)))

		latest, err := storage.GetLatestForFile(ctx, "weekly.xlsx")
		require.NoError(t, err)
		assert.Equal(t, "imp_v2", latest.ID)

		_, err = storage.GetLatestForFile(ctx, "never-imported.pdf")
		assert.ErrorIs(t, err, interfaces.ErrResultNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.DeleteResult(ctx, "imp_1"))

		_, err := storage.GetResult(ctx, "imp_1")
		assert.ErrorIs(t, err, interfaces.ErrResultNotFound)

		err = storage.DeleteResult(ctx, "imp_1")
		assert.ErrorIs(t, err, interfaces.ErrResultNotFound)
	})

	t.Run("clear all", func(t *testing.T) {
		require.NoError(t, storage.ClearAll(ctx))

		count, err := storage.CountResults(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestBlobStorage(t *testing.T) {
	db := newTestDB(t)
	storage := NewBlobStorage(db, arbor.NewLogger())
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		data := []byte("%PDF-1.4 original bytes")
		require.NoError(t, storage.SaveBlob(ctx, "imp_1", data))

		got, err := storage.GetBlob(ctx, "imp_1")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("get missing blob", func(t *testing.T) {
		_, err := storage.GetBlob(ctx, "imp_missing")
		assert.ErrorIs(t, err, interfaces.ErrBlobNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, storage.DeleteBlob(ctx, "imp_1"))
		require.NoError(t, storage.DeleteBlob(ctx, "imp_1"))

		_, err := storage.GetBlob(ctx, "imp_1")
		assert.ErrorIs(t, err, interfaces.ErrBlobNotFound)
	})
}

func newBadgerConfig(t *testing.T) *common.BadgerConfig {
	t.Helper()
	return &common.BadgerConfig{Path: filepath.Join(t.TempDir(), "data")}
}

func TestManager(t *testing.T) {
	t.Run("initializes all storages", func(t *testing.T) {
		logger := arbor.NewLogger()
		mgr, err := NewManager(logger, newBadgerConfig(t))
		require.NoError(t, err)
		defer mgr.Close()

		assert.NotNil(t, mgr.CatalogStorage())
		assert.NotNil(t, mgr.ImportStorage())
		assert.NotNil(t, mgr.BlobStorage())
	})

	t.Run("reset on startup clears data", func(t *testing.T) {
		logger := arbor.NewLogger()
		config := newBadgerConfig(t)

		mgr, err := NewManager(logger, config)
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, mgr.CatalogStorage().StoreCourse(ctx, &models.Course{ID: 1, Name: "Algebra I"}))
		require.NoError(t, mgr.Close())

		config.ResetOnStartup = true
		mgr, err = NewManager(logger, config)
		require.NoError(t, err)
		defer mgr.Close()

		count, err := mgr.CatalogStorage().CountCourses(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
