package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/horarium/internal/models"
)

func TestLoadHTML(t *testing.T) {
	content := `<!DOCTYPE html>
<html><body>
<h1>Bell Schedule</h1>
<p>Monday</p>
<p>9:00 - 10:00 Algebra I - Smith Room 101</p>
<table>
  <tr><th>Period</th><th>Time</th><th>Monday</th></tr>
  <tr><td>1</td><td>9:00 - 10:00</td><td>Algebra I<br>Smith</td></tr>
</table>
</body></html>`

	path := filepath.Join(t.TempDir(), "schedule.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, models.FormatHTML, doc.Format)

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	assert.Equal(t, []string{"Period", "Time", "Monday"}, table.Header())
	assert.Equal(t, "Algebra I\nSmith", table.Cell(1, 2), "<br> splits a cell")

	text := doc.Text()
	assert.Contains(t, text, "Bell Schedule")
	assert.Contains(t, text, "Monday")
	assert.Contains(t, text, "9:00 - 10:00 Algebra I - Smith Room 101")
	assert.NotContains(t, text, "Period", "table content stays out of the text view")
}

func TestLoadHTML_ProseOnly(t *testing.T) {
	content := `<html><body>
<p>Monday</p>
<p>Period 1 9:00 - 10:00 Algebra I - Smith</p>
</body></html>`

	path := filepath.Join(t.TempDir(), "prose.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Empty(t, doc.Tables)

	var timeLine string
	for _, p := range doc.Paragraphs {
		if strings.Contains(p, "9:00 - 10:00") {
			timeLine = p
		}
	}
	assert.Contains(t, timeLine, "Algebra I - Smith", "prose lines survive for the text fallback")
}
