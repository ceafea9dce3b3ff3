// -----------------------------------------------------------------------
// HTML Loader - Pull tables out with goquery and keep the rest of the
// page as a markdown text view
// -----------------------------------------------------------------------

package loader

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/horarium/internal/models"
)

// loadHTML parses <table> elements into tables, then converts the
// remaining markup to markdown for the paragraph flow so prose schedules
// survive outside tables.
func (s *Service) loadHTML(path string, doc *models.RawDocument) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open html: %w", err)
	}
	defer f.Close()

	gq, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
	}

	// Line breaks inside cells separate course from teacher; keep them
	gq.Find("br").ReplaceWithHtml("\n")

	gq.Find("table").Each(func(_ int, sel *goquery.Selection) {
		table := models.Table{}
		sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.Join(splitPlainLines(cell.Text()), "\n"))
			})
			if len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		})
		if len(table.Rows) > 0 {
			doc.Tables = append(doc.Tables, table)
		}
	})

	// Tables are already captured; drop them from the text view
	gq.Find("table").Remove()

	body, err := gq.Find("body").Html()
	if err != nil {
		return fmt.Errorf("serialize html body: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(body)
	if err != nil {
		return fmt.Errorf("convert html to markdown: %w", err)
	}

	doc.Paragraphs = splitPlainLines(markdown)
	return nil
}
