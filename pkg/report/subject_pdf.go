package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFCompiler renders faculty data into paginated PDF documents.
type PDFCompiler struct{}

// NewPDFCompiler constructs a PDF compiler.
func NewPDFCompiler() *PDFCompiler {
	return &PDFCompiler{}
}

// RenderSubject produces the single-subject profile report: a running header
// and page-number footer, the basic-information block, then one section per
// entry in doc.Sections, in order.
func (c *PDFCompiler) RenderSubject(doc SubjectDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 20, 10)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "Faculty Profile Report", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	c.sectionTitle(pdf, "Basic Information")
	for _, field := range doc.Fields {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, field.Label+":", "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, field.Value, "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	for _, section := range doc.Sections {
		c.sectionTitle(pdf, section.Title)
		pdf.SetFont("Arial", "", 9)
		for _, item := range section.Items {
			pdf.MultiCell(0, 5, item, "", "", false)
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render subject pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *PDFCompiler) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(66, 133, 244)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}
