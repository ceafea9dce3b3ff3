// -----------------------------------------------------------------------
// Report Service - Human-readable import reports, markdown first and
// optionally rendered to PDF
// -----------------------------------------------------------------------

package report

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/interfaces"
	"github.com/ternarybob/horarium/internal/models"
)

// Service implements interfaces.ReportService
type Service struct {
	logger arbor.ILogger
	config common.ReportConfig
}

// Compile-time assertion
var _ interfaces.ReportService = (*Service)(nil)

// NewService creates a new report service
func NewService(config common.ReportConfig, logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		config: config,
	}
}

// BuildMarkdown composes a markdown report for an import result: a status
// summary, the extracted entries as a table, and the names that failed to
// resolve against the catalog.
func (s *Service) BuildMarkdown(result *models.ImportResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Import Report - %s\n\n", result.FileName)

	status := "Success"
	if !result.Success {
		status = "Failed"
	}
	format := string(result.Format)
	if result.OCRUsed {
		format += " (OCR)"
	}

	fmt.Fprintf(&b, "**Status:** %s\n\n", status)
	fmt.Fprintf(&b, "**Format:** %s\n\n", format)
	fmt.Fprintf(&b, "**Imported:** %s\n\n", result.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Duration:** %dms\n\n", result.DurationMs)
	fmt.Fprintf(&b, "**Entries:** %d\n\n", result.EntryCount)

	if result.Error != "" {
		fmt.Fprintf(&b, "## Error\n\n%s\n\n", result.Error)
	}

	if len(result.Entries) > 0 {
		courses, teachers, rooms := result.MatchedCounts()
		fmt.Fprintf(&b, "Matched %d courses, %d teachers and %d rooms against the catalog.\n\n",
			courses, teachers, rooms)

		b.WriteString("## Entries\n\n")
		b.WriteString("| Day | Period | Time | Course | Teacher | Room |\n")
		b.WriteString("|-----|--------|------|--------|---------|------|\n")
		for _, entry := range result.Entries {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				formatDay(entry.Day),
				formatPeriod(entry.Period),
				formatTimeRange(entry.StartTime, entry.EndTime),
				markCell(entry.CourseName, entry.CourseID),
				markCell(entry.TeacherName, entry.TeacherID),
				markCell(entry.RoomNumber, entry.RoomID))
		}
		b.WriteString("\n")

		if unmatched := collectUnmatched(result.Entries); len(unmatched) > 0 {
			b.WriteString("## Unmatched\n\n")
			b.WriteString("Names the catalog could not resolve:\n\n")
			for _, line := range unmatched {
				fmt.Fprintf(&b, "- %s\n", line)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// markCell renders an extracted name, flagging it when the catalog match
// failed. Empty names render as a dash so the table stays aligned.
func markCell(name string, id int64) string {
	if name == "" {
		return "-"
	}
	cell := escapeCell(name)
	if id == 0 {
		return cell + " (?)"
	}
	return cell
}

// escapeCell keeps extracted text from breaking markdown table syntax
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "/")
	return strings.ReplaceAll(text, "\n", " ")
}

func formatDay(day models.Weekday) string {
	if day == "" {
		return "-"
	}
	name := string(day)
	return strings.ToUpper(name[:1]) + name[1:]
}

func formatPeriod(period int) string {
	if period == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", period)
}

func formatTimeRange(start, end *models.ClockTime) string {
	switch {
	case start == nil:
		return "-"
	case end == nil:
		return start.Format()
	default:
		return start.Format() + " - " + end.Format()
	}
}

// collectUnmatched lists each distinct unresolved name once, tagged with
// its entity type, in first-seen order.
func collectUnmatched(entries []models.ScheduleEntry) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(name, kind string) {
		if name == "" {
			return
		}
		key := kind + ":" + strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, fmt.Sprintf("%s (%s)", escapeCell(name), kind))
	}

	for _, e := range entries {
		if e.CourseID == 0 {
			add(e.CourseName, "course")
		}
		if e.TeacherID == 0 {
			add(e.TeacherName, "teacher")
		}
		if e.RoomID == 0 {
			add(e.RoomNumber, "room")
		}
	}
	return out
}
