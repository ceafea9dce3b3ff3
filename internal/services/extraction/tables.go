// -----------------------------------------------------------------------
// Schedule Table Parser - Classify tables, map header cells to roles and
// parse data rows in grid or row mode
// -----------------------------------------------------------------------

package extraction

import (
	"strings"

	"github.com/ternarybob/horarium/internal/models"
)

// classifierKeywords mark a table as schedule-bearing when any of them
// appears in the joined header text.
var classifierKeywords = []string{"period", "time", "monday", "course", "teacher"}

// Role keyword lists for header mapping. Scanned left to right, first
// header cell containing any keyword wins the role.
var (
	periodKeywords  = []string{"period", "per", "p"}
	timeKeywords    = []string{"time"}
	courseKeywords  = []string{"course", "class", "subject"}
	teacherKeywords = []string{"teacher", "instructor"}
	roomKeywords    = []string{"room", "rm", "location"}
)

// IsScheduleTable reports whether a header row looks like a class schedule.
func IsScheduleTable(header []string) bool {
	joined := strings.ToLower(strings.Join(header, " "))
	for _, keyword := range classifierKeywords {
		if strings.Contains(joined, keyword) {
			return true
		}
	}
	return false
}

// MapColumns resolves header cells to semantic role columns and detects
// day-of-week columns. Unmatched roles stay at -1.
func MapColumns(header []string) models.ColumnMap {
	cm := models.NewColumnMap()
	cm.Period = findColumn(header, periodKeywords)
	cm.Time = findColumn(header, timeKeywords)
	cm.Course = findColumn(header, courseKeywords)
	cm.Teacher = findColumn(header, teacherKeywords)
	cm.Room = findColumn(header, roomKeywords)

	for i, cell := range header {
		if day, ok := models.ParseWeekday(cell); ok {
			cm.Days[day] = i
		}
	}

	return cm
}

// findColumn returns the index of the first header cell whose lowercase
// text contains one of the keywords, or -1.
func findColumn(header []string, keywords []string) int {
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return i
			}
		}
	}
	return -1
}

// parseTable turns the data rows of a classified table into schedule
// entries. Tables with day columns are grids (one cell per day); all
// others carry one entry per row.
func parseTable(table models.Table, cm models.ColumnMap) []models.ScheduleEntry {
	var entries []models.ScheduleEntry

	for _, row := range table.DataRows() {
		if len(row) == 0 {
			continue
		}
		if cm.HasDayColumns() {
			entries = append(entries, gridEntries(row, cm)...)
		} else {
			entries = append(entries, rowEntry(row, cm))
		}
	}

	return entries
}

// gridEntries emits one entry per non-blank day cell in a grid row.
// Days are visited Monday through Friday so output order is stable.
// A blank day cell means no class that day, not an unknown one.
func gridEntries(cells []string, cm models.ColumnMap) []models.ScheduleEntry {
	var entries []models.ScheduleEntry

	for _, day := range models.WeekdayOrder {
		col, ok := cm.Days[day]
		if !ok || col >= len(cells) {
			continue
		}
		content := cells[col]
		if strings.TrimSpace(content) == "" {
			continue
		}

		entry := models.ScheduleEntry{
			Day:     day,
			RawText: content,
		}
		if cm.Period >= 0 && cm.Period < len(cells) {
			entry.Period = ExtractPeriod(cells[cm.Period])
		}
		if cm.Time >= 0 && cm.Time < len(cells) {
			entry.StartTime, entry.EndTime = ExtractTimeRange(cells[cm.Time])
		}
		entry.CourseName, entry.TeacherName = SplitContentCell(content)

		entries = append(entries, entry)
	}

	return entries
}

// rowEntry builds the single entry for a row-mode data row. Role columns
// beyond the row's length read as absent, never as an error.
func rowEntry(cells []string, cm models.ColumnMap) models.ScheduleEntry {
	entry := models.ScheduleEntry{
		RawText: strings.Join(cells, " | "),
	}

	if cm.Period >= 0 && cm.Period < len(cells) {
		entry.Period = ExtractPeriod(cells[cm.Period])
	}
	if cm.Time >= 0 && cm.Time < len(cells) {
		entry.StartTime, entry.EndTime = ExtractTimeRange(cells[cm.Time])
	}
	if cm.Course >= 0 && cm.Course < len(cells) {
		entry.CourseName = strings.TrimSpace(cells[cm.Course])
	}
	if cm.Teacher >= 0 && cm.Teacher < len(cells) {
		entry.TeacherName = strings.TrimSpace(cells[cm.Teacher])
	}
	if cm.Room >= 0 && cm.Room < len(cells) {
		entry.RoomNumber = ExtractRoom(cells[cm.Room])
	}

	return entry
}
