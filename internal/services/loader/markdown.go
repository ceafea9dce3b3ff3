// -----------------------------------------------------------------------
// Markdown Loader - Walk the goldmark AST for headings, paragraphs and
// pipe tables
// -----------------------------------------------------------------------

package loader

import (
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ternarybob/horarium/internal/models"
)

// loadMarkdown parses the file with goldmark. Headings, paragraphs and list
// items become paragraphs in document order; pipe tables become Tables.
func (s *Service) loadMarkdown(path string, doc *models.RawDocument) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.Table),
	)
	root := md.Parser().Parse(text.NewReader(source))

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *extast.Table:
			table := markdownTable(node, source)
			if len(table.Rows) > 0 {
				doc.Tables = append(doc.Tables, table)
			}
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			if line := string(node.Text(source)); line != "" {
				doc.Paragraphs = append(doc.Paragraphs, line)
			}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.TextBlock:
			if line := string(n.Text(source)); line != "" {
				doc.Paragraphs = append(doc.Paragraphs, line)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidDocument, doc.FileName, err)
	}

	return nil
}

// markdownTable flattens a goldmark table node, header row first. A
// TableHeader node holds its cells directly, so it reads as a row too.
func markdownTable(node *extast.Table, source []byte) models.Table {
	table := models.Table{}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader, *extast.TableRow:
			if row := markdownRow(child, source); len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
	}

	return table
}

func markdownRow(row ast.Node, source []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); ok {
			cells = append(cells, string(cell.Text(source)))
		}
	}
	return cells
}
