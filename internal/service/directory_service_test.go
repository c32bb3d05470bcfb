package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-api/internal/models"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
)

type mockDirectoryFaculty struct {
	members []models.FacultySummary
	byID    *models.FacultyUser
}

func (m *mockDirectoryFaculty) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultySummary, error) {
	return m.members, nil
}

func (m *mockDirectoryFaculty) FindByID(ctx context.Context, id string) (*models.FacultyUser, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

type mockDirectoryRecords struct {
	counts      map[string][3]int
	years       []string
	departments []string
	yearsCalls  int
}

func (m *mockDirectoryRecords) FindProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return nil, sql.ErrNoRows
}

func (m *mockDirectoryRecords) CountPublications(ctx context.Context, userID, academicYear string) (int, error) {
	return m.counts[userID][0], nil
}

func (m *mockDirectoryRecords) CountAwards(ctx context.Context, userID, academicYear string) (int, error) {
	return m.counts[userID][1], nil
}

func (m *mockDirectoryRecords) CountPatents(ctx context.Context, userID, academicYear string) (int, error) {
	return m.counts[userID][2], nil
}

func (m *mockDirectoryRecords) AcademicYears(ctx context.Context) ([]string, error) {
	m.yearsCalls++
	return m.years, nil
}

func (m *mockDirectoryRecords) Departments(ctx context.Context) ([]string, error) {
	return m.departments, nil
}

func TestRosterAssemblesCounts(t *testing.T) {
	faculty := &mockDirectoryFaculty{members: []models.FacultySummary{
		{ID: "fac-1", Name: "Asha Rao", Email: "asha@campus.edu", EmployeeID: "EMP001", Department: "Physics"},
		{ID: "fac-2", Name: "Binod Jha", Email: "binod@campus.edu", EmployeeID: "EMP002", Department: "Chemistry"},
	}}
	records := &mockDirectoryRecords{counts: map[string][3]int{
		"fac-1": {3, 1, 0},
		"fac-2": {0, 2, 1},
	}}
	svc := NewDirectoryService(faculty, records, nil, 0, nil)

	rows, err := svc.Roster(context.Background(), "2023-24")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Publications)
	assert.Equal(t, 1, rows[0].Awards)
	assert.Equal(t, 1, rows[1].Patents)
	assert.Equal(t, "EMP002", rows[1].EmployeeID)
}

func TestListNormalisesNil(t *testing.T) {
	svc := NewDirectoryService(&mockDirectoryFaculty{}, &mockDirectoryRecords{}, nil, 0, nil)

	out, err := svc.List(context.Background(), models.FacultyFilter{})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGetUnknownFaculty(t *testing.T) {
	svc := NewDirectoryService(&mockDirectoryFaculty{}, &mockDirectoryRecords{}, nil, 0, nil)

	_, err := svc.Get(context.Background(), "ghost")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestLookupsWithoutCacheHitDatabase(t *testing.T) {
	records := &mockDirectoryRecords{years: []string{"2024-25", "2023-24"}, departments: []string{"Chemistry", "Physics"}}
	svc := NewDirectoryService(&mockDirectoryFaculty{}, records, nil, 0, nil)

	years, err := svc.AcademicYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-25", "2023-24"}, years)

	departments, err := svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chemistry", "Physics"}, departments)

	// A second call without a cache goes back to the database.
	_, err = svc.AcademicYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, records.yearsCalls)
}

func TestLookupsNormaliseNil(t *testing.T) {
	svc := NewDirectoryService(&mockDirectoryFaculty{}, &mockDirectoryRecords{}, nil, 0, nil)

	years, err := svc.AcademicYears(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, years)
	assert.Empty(t, years)
}
