package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/internal/service"
	"github.com/campushq/faculty-api/pkg/report"
	"github.com/campushq/faculty-api/pkg/response"
)

type conflictAccountsStub struct {
	accountsStub
}

func (s *conflictAccountsStub) EmailExists(ctx context.Context, email string) (bool, error) {
	return true, nil
}

type directoryFacultyStub struct {
	members []models.FacultySummary
}

func (s *directoryFacultyStub) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultySummary, error) {
	return s.members, nil
}

func (s *directoryFacultyStub) FindByID(ctx context.Context, id string) (*models.FacultyUser, error) {
	return nil, sql.ErrNoRows
}

type directoryRecordsStub struct{}

func (directoryRecordsStub) FindProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return nil, sql.ErrNoRows
}
func (directoryRecordsStub) CountPublications(ctx context.Context, userID, academicYear string) (int, error) {
	return 2, nil
}
func (directoryRecordsStub) CountAwards(ctx context.Context, userID, academicYear string) (int, error) {
	return 1, nil
}
func (directoryRecordsStub) CountPatents(ctx context.Context, userID, academicYear string) (int, error) {
	return 0, nil
}
func (directoryRecordsStub) AcademicYears(ctx context.Context) ([]string, error) {
	return []string{"2023-24"}, nil
}
func (directoryRecordsStub) Departments(ctx context.Context) ([]string, error) {
	return []string{"Physics"}, nil
}

func TestAdminHandlerCreateFacultyConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	facultySvc := service.NewFacultyService(&conflictAccountsStub{}, &recordsStub{}, mailerStub{}, nil, nil)
	handler := NewAdminHandler(nil, facultySvc, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(t, c, "/admin/faculty", models.CreateFacultyRequest{Name: "Asha Rao", EmployeeID: "EMP001", Email: "asha@campus.edu"})

	handler.CreateFaculty(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestAdminHandlerSetFacultyActiveRequiresFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	facultySvc := service.NewFacultyService(&accountsStub{}, &recordsStub{}, mailerStub{}, nil, nil)
	handler := NewAdminHandler(nil, facultySvc, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPatch, "/admin/faculty/fac-1/active", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "fac-1"}}

	handler.SetFacultyActive(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandlerListFacultyMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	directorySvc := service.NewDirectoryService(&directoryFacultyStub{members: []models.FacultySummary{
		{ID: "fac-1", Name: "Asha Rao"},
		{ID: "fac-2", Name: "Binod Jha"},
	}}, directoryRecordsStub{}, nil, 0, nil)
	handler := NewAdminHandler(directorySvc, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/faculty?search=a", nil)
	c.Request = req

	handler.ListFaculty(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.EqualValues(t, 2, envelope.Meta["count"])
}

func TestAdminHandlerExportRosterWorkbookHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	directorySvc := service.NewDirectoryService(&directoryFacultyStub{members: []models.FacultySummary{
		{ID: "fac-1", Name: "Asha Rao", Email: "asha@campus.edu", EmployeeID: "EMP001"},
	}}, directoryRecordsStub{}, nil, 0, nil)
	exportSvc := service.NewExportService(nil, directorySvc, report.NewPDFCompiler(), report.NewWorkbookCompiler(), nil)
	handler := NewAdminHandler(directorySvc, nil, exportSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/export/xlsx", nil)
	c.Request = req

	handler.ExportRosterWorkbook(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "all_faculty_all_years.xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestAdminHandlerLookups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	directorySvc := service.NewDirectoryService(&directoryFacultyStub{}, directoryRecordsStub{}, nil, 0, nil)
	handler := NewAdminHandler(directorySvc, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/admin/lookups/academic-years", nil)
	c.Request = req

	handler.AcademicYears(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []interface{}{"2023-24"}, envelope.Data)
}
