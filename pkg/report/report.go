// Package report renders assembled faculty data into downloadable documents.
// Renderers never fail on missing values; the only error surface is the
// underlying encoder, which callers map to a generation failure.
package report

// Field is one labelled value in the basic-information block of a subject
// document. Values are rendered verbatim; emptiness handling belongs to the
// assembler.
type Field struct {
	Label string
	Value string
}

// Section is a category section with pre-interpolated item lines. The title
// carries the item count, e.g. "Awards (3)".
type Section struct {
	Title string
	Items []string
}

// SubjectDocument is the assembled input for the single-subject profile PDF.
// Sections appear in the order given; empty sections must not be included.
type SubjectDocument struct {
	Fields   []Field
	Sections []Section
}

// SummaryRow is one line of the roster summary PDF.
type SummaryRow struct {
	Name       string
	Email      string
	EmployeeID string
	Department string
}

// RosterColumns is the fixed column contract of the roster workbook. Order
// and identity are structural; callers supply rows keyed by these names.
var RosterColumns = []string{"Name", "Email", "Employee ID", "Designation", "Department", "Publications", "Awards", "Patents"}
