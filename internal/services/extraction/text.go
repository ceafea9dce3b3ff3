// -----------------------------------------------------------------------
// Text Fallback Parser - Recover schedule entries from prose when the
// document carries no usable tables
// -----------------------------------------------------------------------

package extraction

import (
	"strings"

	"github.com/ternarybob/horarium/internal/models"
)

// parseTextContent scans free text line by line and materializes an entry
// for every line bearing a time range. Day labels seen on any line set a
// running day context for the lines that follow. Runs after table parsing
// and only ever adds entries.
func parseTextContent(text string) []models.ScheduleEntry {
	var entries []models.ScheduleEntry
	var currentDay models.Weekday

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if day, ok := lineDay(line); ok {
			currentDay = day
		}

		loc := timeRangePattern.FindStringIndex(line)
		if loc == nil {
			continue
		}

		entry := models.ScheduleEntry{
			RawText: line,
			Day:     currentDay,
		}
		entry.StartTime, entry.EndTime = ExtractTimeRange(line)
		entry.Period = ExtractPeriod(line)
		entry.RoomNumber = ExtractRoom(line)
		entry.CourseName, entry.TeacherName = splitLinePrefix(line[:loc[0]])

		entries = append(entries, entry)
	}

	return entries
}

// lineDay returns the first word of the line that reads as a weekday.
func lineDay(line string) (models.Weekday, bool) {
	for _, field := range strings.Fields(line) {
		if day, ok := models.ParseWeekday(field); ok {
			return day, true
		}
	}
	return "", false
}

// splitLinePrefix pulls course and teacher names out of the text before a
// line's time range. Room and period labels and day words are dropped
// first so they never leak into a name; what remains splits on " - " like
// a table cell.
func splitLinePrefix(prefix string) (course, teacher string) {
	cleaned := roomPattern.ReplaceAllString(prefix, " ")
	cleaned = periodPattern.ReplaceAllString(cleaned, " ")

	var kept []string
	for _, field := range strings.Fields(cleaned) {
		if _, ok := models.ParseWeekday(field); ok {
			continue
		}
		kept = append(kept, field)
	}

	joined := strings.Trim(strings.Join(kept, " "), " ,;:-")
	if joined == "" {
		return "", ""
	}

	course, teacher = SplitContentCell(joined)
	return strings.Trim(course, " ,;:"), strings.Trim(teacher, " ,;:")
}
