package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/horarium/internal/models"
)

func TestParseTextContent(t *testing.T) {
	t.Run("Line With Time Range", func(t *testing.T) {
		entries := parseTextContent("Algebra I - Smith 9:00 - 10:00 Room 101")

		require.Len(t, entries, 1)
		entry := entries[0]
		assert.Equal(t, "Algebra I - Smith 9:00 - 10:00 Room 101", entry.RawText)
		assert.Equal(t, "Algebra I", entry.CourseName)
		assert.Equal(t, "Smith", entry.TeacherName)
		assert.Equal(t, "101", entry.RoomNumber)
		require.NotNil(t, entry.StartTime)
		assert.Equal(t, "9:00", entry.StartTime.Format())
		assert.Equal(t, "10:00", entry.EndTime.Format())
		assert.Empty(t, entry.Day)
		assert.Equal(t, 0, entry.Period)
	})

	t.Run("Day Context Carries Forward", func(t *testing.T) {
		text := strings.Join([]string{
			"Warmup 7:30 - 7:45",
			"Monday",
			"Math 8:00 - 8:45",
			"Art 9:00 - 9:45",
			"Tuesday",
			"Biology 10:00 - 11:00",
		}, "\n")

		entries := parseTextContent(text)

		require.Len(t, entries, 4)
		assert.Empty(t, entries[0].Day)
		assert.Equal(t, models.Monday, entries[1].Day)
		assert.Equal(t, "Math", entries[1].CourseName)
		assert.Equal(t, models.Monday, entries[2].Day)
		assert.Equal(t, "Art", entries[2].CourseName)
		assert.Equal(t, models.Tuesday, entries[3].Day)
		assert.Equal(t, "Biology", entries[3].CourseName)
	})

	t.Run("Lines Without Time Ranges Ignored", func(t *testing.T) {
		text := strings.Join([]string{
			"Weekly schedule",
			"",
			"Staff meeting in room 12",
			"Bring your own lunch",
		}, "\n")

		assert.Empty(t, parseTextContent(text))
	})

	t.Run("Labels Stripped From Names", func(t *testing.T) {
		entries := parseTextContent("Period 2 Chemistry - Lee Room 204 10:00 - 10:45")

		require.Len(t, entries, 1)
		entry := entries[0]
		assert.Equal(t, 2, entry.Period)
		assert.Equal(t, "204", entry.RoomNumber)
		assert.Equal(t, "Chemistry", entry.CourseName)
		assert.Equal(t, "Lee", entry.TeacherName)
	})

	t.Run("Day Word On The Same Line", func(t *testing.T) {
		entries := parseTextContent("Wednesday Gym 13:00 - 14:00")

		require.Len(t, entries, 1)
		assert.Equal(t, models.Wednesday, entries[0].Day)
		assert.Equal(t, "Gym", entries[0].CourseName)
		assert.Empty(t, entries[0].TeacherName)
	})

	t.Run("Meridiem Applies Per Side", func(t *testing.T) {
		entries := parseTextContent("Drama Club - Park 1:30 PM - 2:30 PM")

		require.Len(t, entries, 1)
		entry := entries[0]
		assert.Equal(t, "Drama Club", entry.CourseName)
		assert.Equal(t, "Park", entry.TeacherName)
		require.NotNil(t, entry.StartTime)
		assert.Equal(t, "13:30", entry.StartTime.Format())
		assert.Equal(t, "14:30", entry.EndTime.Format())
	})

	t.Run("Dangling Separator Keeps Teacher Empty", func(t *testing.T) {
		entries := parseTextContent("Science Lab - 9:00 - 10:00")

		require.Len(t, entries, 1)
		assert.Equal(t, "Science Lab", entries[0].CourseName)
		assert.Empty(t, entries[0].TeacherName)
	})

	t.Run("All Label Line Keeps Names Empty", func(t *testing.T) {
		entries := parseTextContent("Monday 9:00 - 10:00")

		require.Len(t, entries, 1)
		assert.Equal(t, models.Monday, entries[0].Day)
		assert.Empty(t, entries[0].CourseName)
		assert.Empty(t, entries[0].TeacherName)
	})

	t.Run("Empty Input", func(t *testing.T) {
		assert.Empty(t, parseTextContent(""))
	})
}
