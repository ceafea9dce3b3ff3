// -----------------------------------------------------------------------
// OpenDocument Text Loader - Parse content.xml out of the .odt zip
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

// loadOdt parses the OpenDocument package at path. Headings and body
// paragraphs land in doc.Paragraphs; table:table content becomes Tables.
func (s *Service) loadOdt(path string, doc *models.RawDocument) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %s is not a zip package: %v", models.ErrInvalidDocument, doc.FileName, err)
	}
	defer zr.Close()

	part := zipPart(&zr.Reader, "content.xml")
	if part == nil {
		return fmt.Errorf("%w: %s is missing content.xml", models.ErrInvalidDocument, doc.FileName)
	}

	rc, err := part.Open()
	if err != nil {
		return fmt.Errorf("open content.xml: %w", err)
	}
	defer rc.Close()

	walker := &odtXMLWalker{}
	if err := walker.run(xml.NewDecoder(rc)); err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
	}

	doc.Paragraphs = walker.paragraphs
	doc.Tables = walker.tables
	return nil
}

// odtXMLWalker accumulates paragraphs and tables from an OpenDocument
// content.xml token stream. text:h and text:p both count as paragraphs;
// inside table:table-cell they join into the cell text instead.
type odtXMLWalker struct {
	paragraphs []string
	tables     []models.Table

	para   strings.Builder
	inPara bool

	tableDepth int
	rows       [][]string
	row        []string
	cell       []string
}

func (w *odtXMLWalker) run(decoder *xml.Decoder) error {
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
			if w.inPara {
				w.para.Write(t)
			}
		case xml.EndElement:
			w.endElement(t)
		}
	}
}

func (w *odtXMLWalker) startElement(t xml.StartElement) {
	switch t.Name.Local {
	case "table":
		w.tableDepth++
		if w.tableDepth == 1 {
			w.rows = nil
		}
	case "table-row":
		if w.tableDepth == 1 {
			w.row = []string{}
		}
	case "table-cell":
		if w.tableDepth == 1 {
			w.cell = nil
		}
	case "p", "h":
		w.inPara = true
		w.para.Reset()
	case "tab":
		if w.inPara {
			w.para.WriteByte('\t')
		}
	case "line-break":
		if w.inPara {
			w.para.WriteByte('\n')
		}
	case "s":
		// <text:s/> encodes a run of preserved spaces
		if w.inPara {
			w.para.WriteByte(' ')
		}
	}
}

func (w *odtXMLWalker) endElement(t xml.EndElement) {
	switch t.Name.Local {
	case "p", "h":
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
	case "table-cell":
		if w.tableDepth == 1 {
			w.row = append(w.row, strings.Join(w.cell, "\n"))
			w.cell = nil
		}
	case "table-row":
		if w.tableDepth == 1 && len(w.row) > 0 {
			w.rows = append(w.rows, w.row)
			w.row = nil
		}
	case "table":
		if w.tableDepth == 1 && len(w.rows) > 0 {
			w.tables = append(w.tables, models.Table{Rows: w.rows})
			w.rows = nil
		}
		if w.tableDepth > 0 {
			w.tableDepth--
		}
	}
}
