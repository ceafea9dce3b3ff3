package loader

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/horarium/internal/models"
)

// writeDocx builds a minimal OOXML package whose document body is the given
// WordprocessingML fragment.
func writeDocx(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schedule.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(contentTypes))
	require.NoError(t, err)

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + body + `</w:body>
</w:document>`
	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(document))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

func docxParagraph(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestLoadDocx_ParagraphsAndTables(t *testing.T) {
	body := docxParagraph("Fall Semester Schedule") + `
<w:tbl>
  <w:tr>
    <w:tc>` + docxParagraph("Period") + `</w:tc>
    <w:tc>` + docxParagraph("Monday") + `</w:tc>
  </w:tr>
  <w:tr>
    <w:tc>` + docxParagraph("1") + `</w:tc>
    <w:tc>` + docxParagraph("Algebra I") + docxParagraph("Smith") + `</w:tc>
  </w:tr>
</w:tbl>` + docxParagraph("Room assignments subject to change")

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), writeDocx(t, body))
	require.NoError(t, err)

	assert.Equal(t, models.FormatDocx, doc.Format)

	// Body-level paragraphs only; table text must not leak into the flow
	assert.Equal(t, []string{
		"Fall Semester Schedule",
		"Room assignments subject to change",
	}, doc.Paragraphs)

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	assert.Equal(t, []string{"Period", "Monday"}, table.Header())
	require.Len(t, table.DataRows(), 1)
	assert.Equal(t, "1", table.Cell(1, 0))
	assert.Equal(t, "Algebra I\nSmith", table.Cell(1, 1), "cell paragraphs join with newlines")
}

func TestLoadDocx_BreaksAndTabs(t *testing.T) {
	body := `
<w:tbl>
  <w:tr>
    <w:tc>` + docxParagraph("Time") + `</w:tc>
  </w:tr>
  <w:tr>
    <w:tc><w:p><w:r><w:t>Algebra I</w:t><w:br/><w:t>Smith</w:t></w:r></w:p></w:tc>
  </w:tr>
</w:tbl>
<w:p><w:r><w:t>Monday</w:t><w:tab/><w:t>9:00 - 10:00</w:t></w:r></w:p>`

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), writeDocx(t, body))
	require.NoError(t, err)

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "Algebra I\nSmith", doc.Tables[0].Cell(1, 0), "w:br splits a cell like a second paragraph")

	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, "Monday\t9:00 - 10:00", doc.Paragraphs[0])
}

func TestLoadDocx_NestedTableFlattens(t *testing.T) {
	body := `
<w:tbl>
  <w:tr>
    <w:tc>` + docxParagraph("Outer") + `
      <w:tbl>
        <w:tr><w:tc>` + docxParagraph("Inner") + `</w:tc></w:tr>
      </w:tbl>
    </w:tc>
  </w:tr>
</w:tbl>`

	svc := newTestService(t)
	doc, err := svc.Load(context.Background(), writeDocx(t, body))
	require.NoError(t, err)

	require.Len(t, doc.Tables, 1, "nested tables fold into the outer cell")
	require.Len(t, doc.Tables[0].Rows, 1)
	assert.Equal(t, "Outer\nInner", doc.Tables[0].Cell(0, 0))
	assert.Empty(t, doc.Paragraphs)
}

func TestLoadDocx_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0644))

	svc := newTestService(t)
	_, err := svc.Load(context.Background(), path)
	assert.ErrorIs(t, err, models.ErrInvalidDocument)
}

func TestLoadDocx_MissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<Types/>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	svc := newTestService(t)
	_, err = svc.Load(context.Background(), path)
	assert.ErrorIs(t, err, models.ErrInvalidDocument)
}
