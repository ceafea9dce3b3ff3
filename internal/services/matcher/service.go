// -----------------------------------------------------------------------
// Entity Matcher Service - Resolve parsed schedule text against the
// course, teacher and room catalogs
// -----------------------------------------------------------------------

package matcher

import (
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
)

// Service implements interfaces.EntityMatcher with case-insensitive scans
// over the catalog snapshot. First match wins for every entity kind.
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.EntityMatcher = (*Service)(nil)

// NewService creates a new entity matcher service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Match annotates CourseID, TeacherID and RoomID on the entry. Parse
// fields stay untouched; a field that resolves to nothing leaves its ID
// at zero.
func (s *Service) Match(entry *models.ScheduleEntry, catalog *models.Catalog) {
	if entry == nil || catalog == nil {
		return
	}

	if entry.CourseName != "" {
		entry.CourseID = matchCourse(entry.CourseName, catalog.Courses)
	}
	if entry.TeacherName != "" {
		entry.TeacherID = matchTeacher(entry.TeacherName, catalog.Teachers)
	}
	if entry.RoomNumber != "" {
		entry.RoomID = matchRoom(entry.RoomNumber, catalog.Rooms)
	}
}

// matchCourse resolves by name or code, case-insensitive exact
func matchCourse(name string, courses []models.Course) int64 {
	for _, course := range courses {
		if strings.EqualFold(course.Name, name) || (course.Code != "" && strings.EqualFold(course.Code, name)) {
			return course.ID
		}
	}
	return 0
}

// matchTeacher resolves against active teachers only. The extracted name
// matches when it contains the full "first last" name, is contained by it,
// or contains the last name on its own - so "Smith", "John Smith" and
// "Mr. John Smith" all land on the same teacher.
func matchTeacher(name string, teachers []models.Teacher) int64 {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0
	}

	for _, teacher := range teachers {
		if !teacher.Active {
			continue
		}
		fullName := strings.ToLower(teacher.FullName())
		lastName := strings.ToLower(teacher.LastName)

		if strings.Contains(fullName, needle) || strings.Contains(needle, lastName) {
			return teacher.ID
		}
	}
	return 0
}

// matchRoom resolves by number, case-insensitive exact
func matchRoom(number string, rooms []models.Room) int64 {
	for _, room := range rooms {
		if strings.EqualFold(room.Number, number) {
			return room.ID
		}
	}
	return 0
}
