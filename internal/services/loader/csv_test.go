package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/horarium/internal/models"
)

func TestLoadCsv(t *testing.T) {
	content := `Period,Time,Monday
1,"9:00 - 10:00","Algebra I - Smith"
,,
2,10:00 - 11:00,"Math, Advanced - Johnson"
`
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, models.FormatCsv, doc.Format)
	assert.Empty(t, doc.Paragraphs)

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	require.Len(t, table.Rows, 3, "all-empty records are dropped")
	assert.Equal(t, []string{"Period", "Time", "Monday"}, table.Header())
	assert.Equal(t, "Algebra I - Smith", table.Cell(1, 2))
	assert.Equal(t, "Math, Advanced - Johnson", table.Cell(2, 2), "quoted commas survive")
}

func TestLoadCsv_RaggedRows(t *testing.T) {
	content := "Period,Monday,Tuesday\n1,Algebra I\n2,Biology,Chemistry,Extra\n"
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	assert.Len(t, table.Rows[1], 2)
	assert.Len(t, table.Rows[2], 4)
	assert.Equal(t, "", table.Cell(1, 2), "missing cell reads as absent")
}

func TestLoadCsv_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Empty(t, doc.Tables)
	assert.Empty(t, doc.Paragraphs)
}
