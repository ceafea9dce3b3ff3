// -----------------------------------------------------------------------
// Schedule Token Extractors - Pull time ranges, periods and rooms out of
// free-form cell and line text
// -----------------------------------------------------------------------

package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ternarybob/horarium/internal/models"
)

var (
	// Time range like "8:30 AM - 9:15 AM", "14:05-15:00" or "9:00 - 2:00 PM".
	// The meridiem is captured per side: a side is shifted to the afternoon
	// only when its own text says PM.
	timeRangePattern = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})\s*(AM|PM)?\s*[-–]\s*(\d{1,2}:\d{2})\s*(AM|PM)?`)

	// Period labels like "Period 3", "Per. 3", "P3".
	periodPattern = regexp.MustCompile(`(?i)(?:Period|Per\.?|P)\s*(\d+)`)

	// Room labels like "Room 204", "Rm. B12", "rm 101A".
	roomPattern = regexp.MustCompile(`(?i)(?:Room|Rm\.?)\s*([A-Z]?\d+[A-Z]?)`)
)

// ExtractTimeRange finds the first time range in text and returns its start
// and end. Hours are taken literally: "PM" on a side adds twelve hours when
// that side's hour is below twelve, and a bare time is never promoted to the
// afternoon. Both times are nil when no valid range is present.
func ExtractTimeRange(text string) (*models.ClockTime, *models.ClockTime) {
	m := timeRangePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}

	start, err := parseClockToken(m[1], m[2])
	if err != nil {
		return nil, nil
	}
	end, err := parseClockToken(m[3], m[4])
	if err != nil {
		return nil, nil
	}

	return start, end
}

// parseClockToken converts one side of a matched range ("H:MM" plus its
// optional meridiem) into a ClockTime.
func parseClockToken(hm, meridiem string) (*models.ClockTime, error) {
	sep := strings.Index(hm, ":")
	hour, err := strconv.Atoi(hm[:sep])
	if err != nil {
		return nil, err
	}
	minute, err := strconv.Atoi(hm[sep+1:])
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(meridiem, "PM") && hour < 12 {
		hour += 12
	}

	ct, err := models.NewClockTime(hour, minute)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// ExtractPeriod finds a period number in text. Labelled forms are tried
// first, then the whole fragment as a bare integer. Returns 0 when neither
// applies.
func ExtractPeriod(text string) int {
	if m := periodPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return n
}

// ExtractRoom finds a labelled room number in text, or "" when absent.
func ExtractRoom(text string) string {
	if m := roomPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// SplitContentCell splits a schedule cell into course and teacher. A
// " - " separator wins, then a newline; otherwise the whole cell is the
// course name. Splits are limit-2 so dashed teacher names survive intact.
func SplitContentCell(content string) (course, teacher string) {
	switch {
	case strings.Contains(content, " - "):
		parts := strings.SplitN(content, " - ", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	case strings.Contains(content, "\n"):
		parts := strings.SplitN(content, "\n", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	default:
		return strings.TrimSpace(content), ""
	}
}
