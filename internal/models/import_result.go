package models

import "time"

// ImportResult is the complete outcome of one document import: the extracted
// entries plus enough context to audit or retry the run. Immutable once the
// pipeline returns it.
type ImportResult struct {
	ID            string          `json:"id"` // imp_{uuid}
	FileName      string          `json:"file_name"`
	Format        DocumentFormat  `json:"format"`
	Success       bool            `json:"success"`
	Error         string          `json:"error,omitempty"`
	ExtractedText string          `json:"extracted_text,omitempty"`
	EntryCount    int             `json:"entry_count"`
	Entries       []ScheduleEntry `json:"entries"`
	OCRUsed       bool            `json:"ocr_used,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	DurationMs    int64           `json:"duration_ms"`
}

// MatchedCounts returns how many entries resolved to each catalog type.
// Used by import reports and the results listing.
func (r *ImportResult) MatchedCounts() (courses, teachers, rooms int) {
	for _, e := range r.Entries {
		if e.CourseID != 0 {
			courses++
		}
		if e.TeacherID != 0 {
			teachers++
		}
		if e.RoomID != 0 {
			rooms++
		}
	}
	return courses, teachers, rooms
}
