package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/horarium/internal/common"
	"github.com/ternarybob/horarium/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	config := common.ImportConfig{
		MaxFileSize:          10 * 1024 * 1024,
		TempDir:              t.TempDir(),
		ScannedTextThreshold: 100,
	}
	return NewService(config, arbor.NewLogger())
}

func TestDetect(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name string
		path string
		want models.DocumentFormat
	}{
		{name: "Docx", path: "schedule.docx", want: models.FormatDocx},
		{name: "Docx Uppercase", path: "SCHEDULE.DOCX", want: models.FormatDocx},
		{name: "Odt", path: "schedule.odt", want: models.FormatOdt},
		{name: "Xlsx", path: "grid.xlsx", want: models.FormatXlsx},
		{name: "Csv", path: "grid.csv", want: models.FormatCsv},
		{name: "Pdf", path: "/tmp/nested/schedule.pdf", want: models.FormatPdf},
		{name: "Html", path: "page.html", want: models.FormatHTML},
		{name: "Htm", path: "page.htm", want: models.FormatHTML},
		{name: "Markdown", path: "notes.md", want: models.FormatMarkdown},
		{name: "Text", path: "plain.txt", want: models.FormatText},
		{name: "Png", path: "scan.png", want: models.FormatImage},
		{name: "Jpeg", path: "photo.jpeg", want: models.FormatImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := svc.Detect(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}

	t.Run("Unknown Extension", func(t *testing.T) {
		_, err := svc.Detect("schedule.xyz")
		assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	})

	t.Run("No Extension", func(t *testing.T) {
		_, err := svc.Detect("README")
		assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	})
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	svc := newTestService(t)

	// Detection runs before any file I/O
	_, err := svc.Load(context.Background(), "does-not-exist.xyz")
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestLoad_FileTooLarge(t *testing.T) {
	config := common.ImportConfig{MaxFileSize: 16}
	svc := NewService(config, arbor.NewLogger())

	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0644))

	_, err := svc.Load(context.Background(), path)
	assert.ErrorIs(t, err, models.ErrFileTooLarge)
}

func TestLoadReader(t *testing.T) {
	svc := newTestService(t)

	csv := "Period,Time,Monday\n1,9:00 - 10:00,Algebra I - Smith\n"
	doc, err := svc.LoadReader(context.Background(), strings.NewReader(csv), "upload.csv")
	require.NoError(t, err)

	assert.Equal(t, "upload.csv", doc.FileName)
	assert.Equal(t, models.FormatCsv, doc.Format)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, []string{"Period", "Time", "Monday"}, doc.Tables[0].Header())
}

func TestLoadReader_RemovesSpoolFile(t *testing.T) {
	tempDir := t.TempDir()
	config := common.ImportConfig{MaxFileSize: 1024, TempDir: tempDir}
	svc := NewService(config, arbor.NewLogger())

	_, err := svc.LoadReader(context.Background(), strings.NewReader("Monday 9:00 - 10:00\n"), "notes.txt")
	require.NoError(t, err)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "spool file must not outlive LoadReader")
}

func TestLoadReader_StreamTooLarge(t *testing.T) {
	config := common.ImportConfig{MaxFileSize: 8, TempDir: t.TempDir()}
	svc := NewService(config, arbor.NewLogger())

	_, err := svc.LoadReader(context.Background(), bytes.NewReader(make([]byte, 100)), "big.txt")
	assert.ErrorIs(t, err, models.ErrFileTooLarge)
}

func TestLoadReader_UnsupportedExtension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LoadReader(context.Background(), strings.NewReader("data"), "upload.xyz")
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestSplitPlainLines(t *testing.T) {
	lines := splitPlainLines("First\r\n\r\n  indented  \n\t\nlast")
	assert.Equal(t, []string{"First", "indented", "last"}, lines)
}
