package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Renderer produces the paginated PDF form for a projected requisition
type Renderer struct{}

// NewRenderer creates a PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF byte stream for the document model
func (r *Renderer) Render(doc DocumentModel) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			pdf.Ln(5)
			pdf.SetFont("Arial", "BU", 12)
			pdf.CellFormat(0, 10, section.Heading, "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
		for _, field := range section.Fields {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(45, 7, field.Label+":", "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 7, field.Value, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
