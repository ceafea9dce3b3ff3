package models

import "strings"

// DocumentFormat identifies the on-disk format of a source document
type DocumentFormat string

const (
	FormatDocx     DocumentFormat = "docx"
	FormatOdt      DocumentFormat = "odt"
	FormatXlsx     DocumentFormat = "xlsx"
	FormatCsv      DocumentFormat = "csv"
	FormatPdf      DocumentFormat = "pdf"
	FormatHTML     DocumentFormat = "html"
	FormatMarkdown DocumentFormat = "markdown"
	FormatText     DocumentFormat = "text"
	FormatImage    DocumentFormat = "image"
)

// RawDocument is the normalized output of a document loader: the paragraphs
// and tables of the source file in document order. Loaders own construction;
// downstream stages treat it as read-only.
type RawDocument struct {
	FileName   string         `json:"file_name"`
	Format     DocumentFormat `json:"format"`
	Paragraphs []string       `json:"paragraphs"` // Non-empty paragraphs in document order
	Tables     []Table        `json:"tables"`     // Tables in document order
	OCRUsed    bool           `json:"ocr_used,omitempty"`
}

// Text returns the paragraph content joined with newlines. Used for the
// free-text fallback parse and for the audit copy on import results.
func (d *RawDocument) Text() string {
	return strings.Join(d.Paragraphs, "\n")
}

// Table is a rectangular-ish grid of trimmed cell strings. Rows may be
// ragged; consumers treat a missing cell as an absent value.
type Table struct {
	Rows [][]string `json:"rows"`
}

// Header returns the first row, or nil for an empty table
func (t *Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns every row after the header, or nil when the table has
// no data rows
func (t *Table) DataRows() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Cell returns the cell at (row, col), or "" when either index is out of range
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
