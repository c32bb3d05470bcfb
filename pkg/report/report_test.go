package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderSubjectProducesPDF(t *testing.T) {
	doc := SubjectDocument{
		Fields: []Field{
			{Label: "Name", Value: "Dr. Asha Rao"},
			{Label: "Employee ID", Value: "EMP001"},
		},
		Sections: []Section{
			{Title: "Journal Publications (2)", Items: []string{"1. On Things", "2. More Things"}},
			{Title: "Awards (1)", Items: []string{"1. Best Teacher"}},
		},
	}

	payload, err := NewPDFCompiler().RenderSubject(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestRenderSubjectPaginatesLongSections(t *testing.T) {
	items := make([]string, 200)
	for i := range items {
		items[i] = strings.Repeat("entry text ", 5)
	}
	doc := SubjectDocument{
		Fields:   []Field{{Label: "Name", Value: "Asha Rao"}},
		Sections: []Section{{Title: "Journal Publications (200)", Items: items}},
	}

	payload, err := NewPDFCompiler().RenderSubject(doc)
	require.NoError(t, err)
	// A 200-entry section cannot fit one A4 page.
	assert.Greater(t, bytes.Count(payload, []byte("/Page")), 1)
}

func TestRenderRosterSummaryProducesPDF(t *testing.T) {
	rows := []SummaryRow{
		{Name: "Asha Rao", Email: "asha@campus.edu", EmployeeID: "EMP001", Department: "Physics"},
		{Name: strings.Repeat("VeryLongName", 5), Email: strings.Repeat("x", 60) + "@campus.edu", EmployeeID: "EMP002", Department: strings.Repeat("Dept", 10)},
	}

	payload, err := NewPDFCompiler().RenderRosterSummary(rows, "2023-24", "Physics")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestRenderRosterSummaryEmpty(t *testing.T) {
	payload, err := NewPDFCompiler().RenderRosterSummary(nil, "", "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 25))
	assert.Equal(t, strings.Repeat("a", 25), clip(strings.Repeat("a", 40), 25))
}

func TestRenderRosterColumnOrderAndBanner(t *testing.T) {
	rows := []map[string]string{
		{
			"Name": "Asha Rao", "Email": "asha@campus.edu", "Employee ID": "EMP001",
			"Designation": "Professor", "Department": "Physics",
			"Publications": "3", "Awards": "1", "Patents": "0",
		},
	}

	payload, err := NewWorkbookCompiler().RenderRoster(rows, "2023-24")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	banner, err := f.GetCellValue(rosterSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Faculty Summary Report - 2023-24", banner)

	for i, header := range RosterColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		require.NoError(t, err)
		value, err := f.GetCellValue(rosterSheet, cell)
		require.NoError(t, err)
		assert.Equal(t, header, value)
	}

	name, err := f.GetCellValue(rosterSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", name)
	pubs, err := f.GetCellValue(rosterSheet, "F4")
	require.NoError(t, err)
	assert.Equal(t, "3", pubs)
}

func TestRenderRosterEmptyStillHasBannerAndHeader(t *testing.T) {
	payload, err := NewWorkbookCompiler().RenderRoster(nil, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	banner, err := f.GetCellValue(rosterSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Faculty Summary Report - All Years", banner)

	header, err := f.GetCellValue(rosterSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	data, err := f.GetCellValue(rosterSheet, "A4")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRenderRosterIgnoresRowKeyOrder(t *testing.T) {
	rows := []map[string]string{
		{"Patents": "2", "Name": "Asha Rao"},
	}

	payload, err := NewWorkbookCompiler().RenderRoster(rows, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(rosterSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", name)
	patents, err := f.GetCellValue(rosterSheet, "H4")
	require.NoError(t, err)
	assert.Equal(t, "2", patents)
	missing, err := f.GetCellValue(rosterSheet, "B4")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
