package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Faculty Summary"

// Banner on row 1, styled header on row 3, data from row 4. Widths are fixed
// per column, matching RosterColumns by index.
var rosterColumnWidths = []float64{25, 30, 15, 20, 25, 12, 10, 10}

// WorkbookCompiler renders the multi-subject roster into a single-sheet xlsx
// workbook.
type WorkbookCompiler struct{}

// NewWorkbookCompiler constructs a workbook compiler.
func NewWorkbookCompiler() *WorkbookCompiler {
	return &WorkbookCompiler{}
}

// RenderRoster builds the workbook. Rows are looked up by column name with an
// empty-string default, so input key ordering never affects column order. An
// empty row list still yields the banner and header rows.
func (c *WorkbookCompiler) RenderRoster(rows []map[string]string, academicYear string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}

	if err := f.MergeCell(rosterSheet, "A1", "H1"); err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}
	year := academicYear
	if year == "" {
		year = "All Years"
	}
	if err := f.SetCellValue(rosterSheet, "A1", fmt.Sprintf("Faculty Summary Report - %s", year)); err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}
	if err := f.SetCellStyle(rosterSheet, "A1", "H1", titleStyle); err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4285F4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}

	for col, header := range RosterColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 3)
		if err != nil {
			return nil, fmt.Errorf("render roster workbook: %w", err)
		}
		if err := f.SetCellValue(rosterSheet, cell, header); err != nil {
			return nil, fmt.Errorf("render roster workbook: %w", err)
		}
	}
	if err := f.SetCellStyle(rosterSheet, "A3", "H3", headerStyle); err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}

	borderStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}

	for i, row := range rows {
		rowNum := i + 4
		for col, key := range RosterColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("render roster workbook: %w", err)
			}
			if err := f.SetCellValue(rosterSheet, cell, row[key]); err != nil {
				return nil, fmt.Errorf("render roster workbook: %w", err)
			}
		}
		last, _ := excelize.CoordinatesToCellName(len(RosterColumns), rowNum)
		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellStyle(rosterSheet, first, last, borderStyle); err != nil {
			return nil, fmt.Errorf("render roster workbook: %w", err)
		}
	}

	for i, width := range rosterColumnWidths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("render roster workbook: %w", err)
		}
		if err := f.SetColWidth(rosterSheet, name, name, width); err != nil {
			return nil, fmt.Errorf("render roster workbook: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render roster workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}
