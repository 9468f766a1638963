package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// pageWidth is the printable width of an A4 page with 10mm margins.
const pageWidth = 190.0

// PDFExporter renders datasets as single-table PDF documents.
type PDFExporter struct{}

// NewPDFExporter builds a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the dataset title followed by a bordered table. Columns
// share the page width equally.
func (e *PDFExporter) Render(d *Dataset) ([]byte, error) {
	if len(d.Columns) == 0 {
		return nil, fmt.Errorf("pdf export needs at least one column")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	if d.Title != "" {
		doc.SetFont("Arial", "B", 14)
		doc.CellFormat(0, 10, d.Title, "", 1, "C", false, 0, "")
		doc.Ln(4)
	}

	width := pageWidth / float64(len(d.Columns))
	doc.SetFont("Arial", "B", 10)
	for _, col := range d.Columns {
		doc.CellFormat(width, 8, col, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 9)
	for _, row := range d.Rows {
		for _, cell := range row {
			doc.CellFormat(width, 7, cell, "1", 0, "", false, 0, "")
		}
		doc.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := doc.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
