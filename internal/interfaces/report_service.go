package interfaces

import (
	"github.com/ternarybob/horarium/internal/models"
)

// ReportService renders human-readable import reports
type ReportService interface {
	// BuildMarkdown composes a markdown report for an import result
	BuildMarkdown(result *models.ImportResult) string

	// RenderPDF converts markdown content to a PDF byte slice
	RenderPDF(markdown, title string) ([]byte, error)
}
