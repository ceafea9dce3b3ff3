// -----------------------------------------------------------------------
// OOXML Document Loader - Parse word/document.xml out of the .docx zip
// package into paragraphs and tables
// -----------------------------------------------------------------------

package loader

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/horarium/internal/models"
)

// loadDocx parses the OOXML package at path. Body-level paragraphs land in
// doc.Paragraphs; table cell paragraphs stay inside their cell (joined with
// newlines) and never leak into the paragraph flow.
func (s *Service) loadDocx(path string, doc *models.RawDocument) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %s is not a zip package: %v", models.ErrInvalidDocument, doc.FileName, err)
	}
	defer zr.Close()

	// A well-formed .docx carries both parts
	if zipPart(&zr.Reader, "[Content_Types].xml") == nil {
		return fmt.Errorf("%w: %s is missing [Content_Types].xml", models.ErrInvalidDocument, doc.FileName)
	}
	part := zipPart(&zr.Reader, "word/document.xml")
	if part == nil {
		return fmt.Errorf("%w: %s is missing word/document.xml", models.ErrInvalidDocument, doc.FileName)
	}

	rc, err := part.Open()
	if err != nil {
		return fmt.Errorf("open word/document.xml: %w", err)
	}
	defer rc.Close()

	walker := &wordXMLWalker{}
	if err := walker.run(xml.NewDecoder(rc)); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
	}

	doc.Paragraphs = walker.paragraphs
	doc.Tables = walker.tables
	return nil
}

// zipPart returns the named file from the archive, or nil when absent
func zipPart(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// wordXMLWalker accumulates paragraphs and tables from a WordprocessingML
// token stream. Tables nested inside cells are flattened into the cell text
// of the outer table.
type wordXMLWalker struct {
	paragraphs []string
	tables     []models.Table

	para   strings.Builder
	inPara bool
	inText bool

	tableDepth int
	rows       [][]string
	row        []string
	cell       []string
}

func (w *wordXMLWalker) run(decoder *xml.Decoder) error {
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			w.startElement(t)
		case xml.CharData:
			if w.inPara && w.inText {
				w.para.Write(t)
			}
		case xml.EndElement:
			w.endElement(t)
		}
	}
}

func (w *wordXMLWalker) startElement(t xml.StartElement) {
	switch t.Name.Local {
	case "tbl":
		w.tableDepth++
		if w.tableDepth == 1 {
			w.rows = nil
		}
	case "tr":
		if w.tableDepth == 1 {
			w.row = []string{}
		}
	case "tc":
		if w.tableDepth == 1 {
			w.cell = nil
		}
	case "p":
		w.inPara = true
		w.para.Reset()
	case "t":
		w.inText = true
	case "tab":
		if w.inPara {
			w.para.WriteByte('\t')
		}
	case "br", "cr":
		if w.inPara {
			w.para.WriteByte('\n')
		}
	}
}

func (w *wordXMLWalker) endElement(t xml.EndElement) {
	switch t.Name.Local {
	case "t":
		w.inText = false
	case "p":
		if !w.inPara {
			return
		}
		w.inPara = false
		text := strings.TrimSpace(w.para.String())
		if text == "" {
			return
		}
		if w.tableDepth >= 1 {
			w.cell = append(w.cell, text)
		} else {
			w.paragraphs = append(w.paragraphs, text)
		}
	case "tc":
		if w.tableDepth == 1 {
			w.row = append(w.row, strings.Join(w.cell, "\n"))
			w.cell = nil
		}
	case "tr":
		if w.tableDepth == 1 && len(w.row) > 0 {
			w.rows = append(w.rows, w.row)
			w.row = nil
		}
	case "tbl":
		if w.tableDepth == 1 && len(w.rows) > 0 {
			w.tables = append(w.tables, models.Table{Rows: w.rows})
			w.rows = nil
		}
		if w.tableDepth > 0 {
			w.tableDepth--
		}
	}
}
