// -----------------------------------------------------------------------
// Spreadsheet Loader - Read .xlsx workbooks with excelize, one table per
// non-empty sheet
// -----------------------------------------------------------------------

package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ternarybob/horarium/internal/models"
)

// loadXlsx reads every sheet of the workbook. Each non-empty sheet becomes
// one table; all-empty rows are dropped. Spreadsheets carry no paragraph
// flow, so doc.Paragraphs stays nil.
func (s *Service) loadXlsx(path string, doc *models.RawDocument) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		table := models.Table{}
		for _, cells := range rows {
			row := make([]string, len(cells))
			hasData := false
			for i, cell := range cells {
				row[i] = strings.TrimSpace(cell)
				if row[i] != "" {
					hasData = true
				}
			}
			if hasData {
				table.Rows = append(table.Rows, row)
			}
		}

		if len(table.Rows) > 0 {
			doc.Tables = append(doc.Tables, table)
		}
	}

	return nil
}
