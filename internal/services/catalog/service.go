// -----------------------------------------------------------------------
// Catalog Service - Seed and snapshot the reference catalogs schedule
// imports resolve against
// -----------------------------------------------------------------------

package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
)

// Service implements interfaces.CatalogService over catalog storage
type Service struct {
	logger   arbor.ILogger
	storage  interfaces.CatalogStorage
	validate *validator.Validate
}

// Compile-time assertion
var _ interfaces.CatalogService = (*Service)(nil)

// NewService creates a new catalog service
func NewService(storage interfaces.CatalogStorage, logger arbor.ILogger) *Service {
	return &Service{
		logger:   logger,
		storage:  storage,
		validate: validator.New(),
	}
}

// seedTeacher mirrors models.Teacher with an optional active flag: a
// teacher omitted from the roster cleanup defaults to active, matching
// how rosters are actually maintained.
type seedTeacher struct {
	ID        int64  `yaml:"id" validate:"required,gt=0"`
	FirstName string `yaml:"first_name" validate:"required"`
	LastName  string `yaml:"last_name" validate:"required"`
	Active    *bool  `yaml:"active"`
}

// seedFile is the YAML shape of a catalog seed document
type seedFile struct {
	Courses  []models.Course `yaml:"courses"`
	Teachers []seedTeacher   `yaml:"teachers"`
	Rooms    []models.Room   `yaml:"rooms"`
}

// LoadFile validates a YAML seed file and upserts its entities into
// storage. Entities already present under the same ID are overwritten;
// nothing is deleted.
func (s *Service) LoadFile(ctx context.Context, path string) (*interfaces.CatalogLoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed %s: %w", path, err)
	}

	// Validate everything before storing anything
	for i := range seed.Courses {
		if err := s.validate.Struct(&seed.Courses[i]); err != nil {
			return nil, fmt.Errorf("catalog seed course[%d]: %w", i, err)
		}
	}
	for i := range seed.Teachers {
		if err := s.validate.Struct(&seed.Teachers[i]); err != nil {
			return nil, fmt.Errorf("catalog seed teacher[%d]: %w", i, err)
		}
	}
	for i := range seed.Rooms {
		if err := s.validate.Struct(&seed.Rooms[i]); err != nil {
			return nil, fmt.Errorf("catalog seed room[%d]: %w", i, err)
		}
	}

	for i := range seed.Courses {
		if err := s.storage.StoreCourse(ctx, &seed.Courses[i]); err != nil {
			return nil, fmt.Errorf("store course %d: %w", seed.Courses[i].ID, err)
		}
	}
	for i := range seed.Teachers {
		teacher := models.Teacher{
			ID:        seed.Teachers[i].ID,
			FirstName: seed.Teachers[i].FirstName,
			LastName:  seed.Teachers[i].LastName,
			Active:    seed.Teachers[i].Active == nil || *seed.Teachers[i].Active,
		}
		if err := s.storage.StoreTeacher(ctx, &teacher); err != nil {
			return nil, fmt.Errorf("store teacher %d: %w", teacher.ID, err)
		}
	}
	for i := range seed.Rooms {
		if err := s.storage.StoreRoom(ctx, &seed.Rooms[i]); err != nil {
			return nil, fmt.Errorf("store room %d: %w", seed.Rooms[i].ID, err)
		}
	}

	result := &interfaces.CatalogLoadResult{
		Courses:  len(seed.Courses),
		Teachers: len(seed.Teachers),
		Rooms:    len(seed.Rooms),
	}

	s.logger.Info().
		Str("file", path).
		Int("courses", result.Courses).
		Int("teachers", result.Teachers).
		Int("rooms", result.Rooms).
		Msg("Catalog seed loaded")

	return result, nil
}

// Snapshot assembles a read-only catalog from storage
func (s *Service) Snapshot(ctx context.Context) (*models.Catalog, error) {
	courses, err := s.storage.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	teachers, err := s.storage.ListTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	rooms, err := s.storage.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	return &models.Catalog{
		Courses:  courses,
		Teachers: teachers,
		Rooms:    rooms,
	}, nil
}
