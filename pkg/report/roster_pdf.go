package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Display-width caps for bordered cells. Longer values are clipped, not
// rejected; the spreadsheet export carries the full strings.
const (
	maxNameChars       = 25
	maxEmailChars      = 30
	maxDepartmentChars = 20
)

// RenderRosterSummary produces the one-table directory summary PDF. Filter
// annotation lines appear only when the corresponding filter is set.
func (c *PDFCompiler) RenderRosterSummary(rows []SummaryRow, academicYear, department string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Faculty Directory Summary", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if academicYear != "" {
		pdf.CellFormat(0, 6, "Academic Year: "+academicYear, "", 1, "C", false, 0, "")
	}
	if department != "" {
		pdf.CellFormat(0, 6, "Department: "+department, "", 1, "C", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(66, 133, 244)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(10, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 8, "Name", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 8, "Email", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Emp ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Department", "1", 1, "C", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 9)
	for i, row := range rows {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, clip(row.Name, maxNameChars), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, clip(row.Email, maxEmailChars), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, row.EmployeeID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, clip(row.Department, maxDepartmentChars), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Faculty: %d", len(rows)), "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render roster summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
