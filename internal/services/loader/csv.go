// -----------------------------------------------------------------------
// CSV Loader - Read a comma-separated file as a single table
// -----------------------------------------------------------------------

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/horarium/internal/models"
)

// loadCsv reads the whole file as one table. Records may be ragged;
// all-empty records are dropped.
func (s *Service) loadCsv(path string, doc *models.RawDocument) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := models.Table{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
		}

		row := make([]string, len(record))
		hasData := false
		for i, cell := range record {
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
	return nil
}
