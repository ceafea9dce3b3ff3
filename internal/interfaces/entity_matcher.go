package interfaces

import (
	"github.com/ternarybob/horarium/internal/models"
)

// EntityMatcher resolves the text fields of a schedule entry against a
// catalog snapshot, annotating the ID fields in place. Parse fields are
// never overwritten; an unmatched field leaves its ID at zero.
type EntityMatcher interface {
	// Match annotates CourseID, TeacherID and RoomID on the entry
	Match(entry *models.ScheduleEntry, catalog *models.Catalog)
}
