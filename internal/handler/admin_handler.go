package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/internal/service"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/response"
)

// AdminHandler serves the admin-side directory, provisioning and export
// endpoints.
type AdminHandler struct {
	directory *service.DirectoryService
	faculty   *service.FacultyService
	exports   *service.ExportService
	metrics   *service.MetricsService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(directory *service.DirectoryService, faculty *service.FacultyService, exports *service.ExportService, metrics *service.MetricsService) *AdminHandler {
	return &AdminHandler{directory: directory, faculty: faculty, exports: exports, metrics: metrics}
}

// ListFaculty godoc
// @Summary List faculty
// @Description List faculty accounts with optional search and filters
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, email or employee id search"
// @Param department query string false "Department filter"
// @Param designation query string false "Designation filter"
// @Success 200 {object} response.Envelope
// @Router /admin/faculty [get]
func (h *AdminHandler) ListFaculty(c *gin.Context) {
	filter := models.FacultyFilter{
		Search:      c.Query("search"),
		Department:  c.Query("department"),
		Designation: c.Query("designation"),
	}

	out, err := h.directory.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, map[string]interface{}{"count": len(out)})
}

// GetFaculty godoc
// @Summary Faculty detail
// @Description Return one faculty member's full record set
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty id"
// @Param academic_year query string false "Academic year filter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/faculty/{id} [get]
func (h *AdminHandler) GetFaculty(c *gin.Context) {
	set, err := h.faculty.GetRecordSet(c.Request.Context(), c.Param("id"), c.Query("academic_year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, set)
}

// CreateFaculty godoc
// @Summary Provision faculty account
// @Description Create a faculty account with a generated credential mailed to the new user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/faculty [post]
func (h *AdminHandler) CreateFaculty(c *gin.Context) {
	var req models.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}

	result, err := h.faculty.Provision(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// SetFacultyActive godoc
// @Summary Toggle faculty activation
// @Description Activate or deactivate a faculty account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty id"
// @Param payload body object true "Activation payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/faculty/{id}/active [patch]
func (h *AdminHandler) SetFacultyActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activation payload"))
		return
	}

	if err := h.faculty.SetActive(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"is_active": *req.Active})
}

// ExportFacultyPDF godoc
// @Summary Export faculty profile PDF
// @Description Download one faculty member's profile report as PDF
// @Tags Admin
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Faculty id"
// @Param academic_year query string false "Academic year filter"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/faculty/{id}/export/pdf [get]
func (h *AdminHandler) ExportFacultyPDF(c *gin.Context) {
	doc, err := h.exports.SubjectPDF(c.Request.Context(), c.Param("id"), c.Query("academic_year"))
	h.observeExport("subject_pdf", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Bytes)
}

// ExportRosterWorkbook godoc
// @Summary Export all-faculty workbook
// @Description Download the roster of every faculty member as an xlsx workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param academic_year query string false "Academic year filter"
// @Success 200 {file} binary
// @Failure 500 {object} response.Envelope
// @Router /admin/export/xlsx [get]
func (h *AdminHandler) ExportRosterWorkbook(c *gin.Context) {
	doc, err := h.exports.RosterWorkbook(c.Request.Context(), c.Query("academic_year"))
	h.observeExport("roster_workbook", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Bytes)
}

// ExportRosterSummaryPDF godoc
// @Summary Export directory summary PDF
// @Description Download the compact faculty directory table as PDF
// @Tags Admin
// @Produce application/pdf
// @Security BearerAuth
// @Param academic_year query string false "Academic year annotation"
// @Param department query string false "Department filter"
// @Success 200 {file} binary
// @Failure 500 {object} response.Envelope
// @Router /admin/export/summary-pdf [get]
func (h *AdminHandler) ExportRosterSummaryPDF(c *gin.Context) {
	doc, err := h.exports.RosterSummaryPDF(c.Request.Context(), c.Query("academic_year"), c.Query("department"))
	h.observeExport("roster_summary_pdf", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Bytes)
}

// AcademicYears godoc
// @Summary Academic year lookup
// @Description List every academic year present in the record tables
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/lookups/academic-years [get]
func (h *AdminHandler) AcademicYears(c *gin.Context) {
	years, err := h.directory.AcademicYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years)
}

// Departments godoc
// @Summary Department lookup
// @Description List every department found in faculty profiles
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/lookups/departments [get]
func (h *AdminHandler) Departments(c *gin.Context) {
	departments, err := h.directory.Departments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments)
}

func (h *AdminHandler) observeExport(kind string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveExport(kind, err == nil)
	}
}
