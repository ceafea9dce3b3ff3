package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CatalogStorage implements the CatalogStorage interface for Badger
type CatalogStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCatalogStorage creates a new CatalogStorage instance
func NewCatalogStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CatalogStorage {
	return &CatalogStorage{
		db:     db,
		logger: logger,
	}
}

// Courses, teachers and rooms live in separate badgerhold type buckets, so
// their integer IDs never collide across entity types.

func (s *CatalogStorage) StoreCourse(ctx context.Context, course *models.Course) error {
	if course.ID == 0 {
		return fmt.Errorf("course ID is required")
	}
	if err := s.db.Store().Upsert(course.ID, course); err != nil {
		return fmt.Errorf("failed to store course: %w", err)
	}
	return nil
}

func (s *CatalogStorage) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := s.db.Store().Get(id, &course); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("course not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

func (s *CatalogStorage) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.Store().Find(&courses, badgerhold.Where("ID").Ne(int64(0)).SortBy("Name")); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *CatalogStorage) CountCourses(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Course{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return int(count), nil
}

func (s *CatalogStorage) StoreTeacher(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == 0 {
		return fmt.Errorf("teacher ID is required")
	}
	if err := s.db.Store().Upsert(teacher.ID, teacher); err != nil {
		return fmt.Errorf("failed to store teacher: %w", err)
	}
	return nil
}

func (s *CatalogStorage) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := s.db.Store().Get(id, &teacher); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("teacher not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return &teacher, nil
}

func (s *CatalogStorage) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := s.db.Store().Find(&teachers, badgerhold.Where("ID").Ne(int64(0)).SortBy("LastName")); err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

func (s *CatalogStorage) CountTeachers(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Teacher{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}
	return int(count), nil
}

func (s *CatalogStorage) StoreRoom(ctx context.Context, room *models.Room) error {
	if room.ID == 0 {
		return fmt.Errorf("room ID is required")
	}
	if err := s.db.Store().Upsert(room.ID, room); err != nil {
		return fmt.Errorf("failed to store room: %w", err)
	}
	return nil
}

func (s *CatalogStorage) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	if err := s.db.Store().Get(id, &room); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("room not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

func (s *CatalogStorage) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Store().Find(&rooms, badgerhold.Where("ID").Ne(int64(0)).SortBy("Number")); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *CatalogStorage) CountRooms(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Room{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return int(count), nil
}

// ClearAll removes every catalog entity. Used before a full reload so stale
// entries from a previous seed file cannot shadow the new ones.
func (s *CatalogStorage) ClearAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.Course{}, nil); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}
	if err := s.db.Store().DeleteMatching(&models.Teacher{}, nil); err != nil {
		return fmt.Errorf("failed to clear teachers: %w", err)
	}
	if err := s.db.Store().DeleteMatching(&models.Room{}, nil); err != nil {
		return fmt.Errorf("failed to clear rooms: %w", err)
	}
	s.logger.Debug().Msg("Catalog storage cleared")
	return nil
}
