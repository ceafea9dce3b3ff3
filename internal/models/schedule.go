package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Weekday is a school-week day. Weekend days are never produced.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// WeekdayOrder lists the school week in fixed order. Iteration over day
// columns uses this slice so output order never depends on map ordering.
var WeekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseWeekday recognizes day headers and day labels: the exact single
// letters m/t/w/r/f, or any word starting with mon/tue/wed/thu/fri.
// Case-insensitive. Returns false for anything else.
func ParseWeekday(s string) (Weekday, bool) {
	day := strings.ToLower(strings.TrimSpace(s))
	switch day {
	case "m":
		return Monday, true
	case "t":
		return Tuesday, true
	case "w":
		return Wednesday, true
	case "r":
		return Thursday, true
	case "f":
		return Friday, true
	}
	switch {
	case strings.HasPrefix(day, "mon"):
		return Monday, true
	case strings.HasPrefix(day, "tue"):
		return Tuesday, true
	case strings.HasPrefix(day, "wed"):
		return Wednesday, true
	case strings.HasPrefix(day, "thu"):
		return Thursday, true
	case strings.HasPrefix(day, "fri"):
		return Friday, true
	}
	return "", false
}

// ClockTime is a wall-clock time of day in 24-hour form.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime validates the hour and minute ranges
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("hour out of range: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("minute out of range: %d", minute)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ParseClockTime parses the canonical "H:MM" 24-hour form produced by Format.
// Parse and Format round-trip: Format output always parses back to the same value.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return NewClockTime(hour, minute)
}

// Format renders the time as "H:MM" (24-hour, no leading zero on the hour)
func (c ClockTime) Format() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) String() string {
	return c.Format()
}

// MarshalJSON encodes the time as its "H:MM" string form
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Format())
}

// UnmarshalJSON decodes the "H:MM" string form
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ColumnMap records which table columns carry which schedule roles.
// An index of -1 means the role has no column. Days maps a weekday to the
// column holding that day's cells; one or more day columns switches row
// parsing to grid mode.
type ColumnMap struct {
	Period  int             `json:"period"`
	Time    int             `json:"time"`
	Course  int             `json:"course"`
	Teacher int             `json:"teacher"`
	Room    int             `json:"room"`
	Days    map[Weekday]int `json:"days,omitempty"`
}

// NewColumnMap returns a map with every role unmapped
func NewColumnMap() ColumnMap {
	return ColumnMap{
		Period:  -1,
		Time:    -1,
		Course:  -1,
		Teacher: -1,
		Room:    -1,
		Days:    make(map[Weekday]int),
	}
}

// HasDayColumns reports whether any day-style header was mapped
func (m ColumnMap) HasDayColumns() bool {
	return len(m.Days) > 0
}

// ScheduleEntry is one extracted schedule line: a course occurrence with
// whatever day, period, time, teacher and room information the source
// carried. Absent fields stay at their zero values. The matcher annotates
// the ID fields; 0 means no confident catalog match.
type ScheduleEntry struct {
	RawText     string     `json:"raw_text"`
	Day         Weekday    `json:"day,omitempty"`
	Period      int        `json:"period,omitempty"`
	StartTime   *ClockTime `json:"start_time,omitempty"`
	EndTime     *ClockTime `json:"end_time,omitempty"`
	CourseName  string     `json:"course_name,omitempty"`
	TeacherName string     `json:"teacher_name,omitempty"`
	RoomNumber  string     `json:"room_number,omitempty"`
	CourseID    int64      `json:"course_id,omitempty"`
	TeacherID   int64      `json:"teacher_id,omitempty"`
	RoomID      int64      `json:"room_id,omitempty"`
}
