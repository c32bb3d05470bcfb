package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/internal/service"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/response"
)

// FacultyHandler serves the self-service profile, academic record and export
// endpoints for the authenticated faculty member.
type FacultyHandler struct {
	faculty *service.FacultyService
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewFacultyHandler creates a new handler.
func NewFacultyHandler(faculty *service.FacultyService, exports *service.ExportService, metrics *service.MetricsService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty, exports: exports, metrics: metrics}
}

// GetProfile godoc
// @Summary My profile
// @Description Return the authenticated faculty member's profile, null when not yet saved
// @Tags Faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /faculty/profile [get]
func (h *FacultyHandler) GetProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	profile, err := h.faculty.GetProfile(c.Request.Context(), claims.Subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// SaveProfile godoc
// @Summary Save my profile
// @Description Insert or replace the authenticated faculty member's profile
// @Tags Faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ProfileUpdate true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /faculty/profile [put]
func (h *FacultyHandler) SaveProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	profile, err := h.faculty.SaveProfile(c.Request.Context(), claims.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// AllRecords godoc
// @Summary My full record set
// @Description Return everything the authenticated faculty member has saved, optionally for one academic year
// @Tags Faculty
// @Produce json
// @Security BearerAuth
// @Param academic_year query string false "Academic year filter"
// @Success 200 {object} response.Envelope
// @Router /faculty/records [get]
func (h *FacultyHandler) AllRecords(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	set, err := h.faculty.GetRecordSet(c.Request.Context(), claims.Subject, c.Query("academic_year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, set)
}

// ExportMyPDF godoc
// @Summary Export my profile PDF
// @Description Download the authenticated faculty member's own profile report
// @Tags Faculty
// @Produce application/pdf
// @Security BearerAuth
// @Param academic_year query string false "Academic year filter"
// @Success 200 {file} binary
// @Failure 500 {object} response.Envelope
// @Router /faculty/export/pdf [get]
func (h *FacultyHandler) ExportMyPDF(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	doc, err := h.exports.MyProfilePDF(c.Request.Context(), claims.Subject, c.Query("academic_year"))
	if h.metrics != nil {
		h.metrics.ObserveExport("my_profile_pdf", err == nil)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Bytes)
}

// ListPublications godoc
// @Summary List my publications
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/publications [get]
func (h *FacultyHandler) ListPublications(c *gin.Context) {
	listRecords(c, h.faculty.ListPublications)
}

// AddPublication godoc
// @Summary Add a publication
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/publications [post]
func (h *FacultyHandler) AddPublication(c *gin.Context) {
	addRecord(c, h.faculty.AddPublication)
}

// DeletePublication godoc
// @Summary Delete a publication
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/publications/{id} [delete]
func (h *FacultyHandler) DeletePublication(c *gin.Context) {
	deleteRecord(c, h.faculty.DeletePublication)
}

// ListBookPublications godoc
// @Summary List my book publications
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/book-publications [get]
func (h *FacultyHandler) ListBookPublications(c *gin.Context) {
	listRecords(c, h.faculty.ListBookPublications)
}

// AddBookPublication godoc
// @Summary Add a book publication
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/book-publications [post]
func (h *FacultyHandler) AddBookPublication(c *gin.Context) {
	addRecord(c, h.faculty.AddBookPublication)
}

// DeleteBookPublication godoc
// @Summary Delete a book publication
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/book-publications/{id} [delete]
func (h *FacultyHandler) DeleteBookPublication(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteBookPublication)
}

// ListAwards godoc
// @Summary List my awards
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/awards [get]
func (h *FacultyHandler) ListAwards(c *gin.Context) {
	listRecords(c, h.faculty.ListAwards)
}

// AddAward godoc
// @Summary Add an award
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/awards [post]
func (h *FacultyHandler) AddAward(c *gin.Context) {
	addRecord(c, h.faculty.AddAward)
}

// DeleteAward godoc
// @Summary Delete an award
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/awards/{id} [delete]
func (h *FacultyHandler) DeleteAward(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteAward)
}

// ListResearchProjects godoc
// @Summary List my research projects
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/research-projects [get]
func (h *FacultyHandler) ListResearchProjects(c *gin.Context) {
	listRecords(c, h.faculty.ListResearchProjects)
}

// AddResearchProject godoc
// @Summary Add a research project
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/research-projects [post]
func (h *FacultyHandler) AddResearchProject(c *gin.Context) {
	addRecord(c, h.faculty.AddResearchProject)
}

// DeleteResearchProject godoc
// @Summary Delete a research project
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/research-projects/{id} [delete]
func (h *FacultyHandler) DeleteResearchProject(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteResearchProject)
}

// ListPatents godoc
// @Summary List my patents
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/patents [get]
func (h *FacultyHandler) ListPatents(c *gin.Context) {
	listRecords(c, h.faculty.ListPatents)
}

// AddPatent godoc
// @Summary Add a patent
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/patents [post]
func (h *FacultyHandler) AddPatent(c *gin.Context) {
	addRecord(c, h.faculty.AddPatent)
}

// DeletePatent godoc
// @Summary Delete a patent
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/patents/{id} [delete]
func (h *FacultyHandler) DeletePatent(c *gin.Context) {
	deleteRecord(c, h.faculty.DeletePatent)
}

// ListConferences godoc
// @Summary List my conference papers
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/conferences [get]
func (h *FacultyHandler) ListConferences(c *gin.Context) {
	listRecords(c, h.faculty.ListConferences)
}

// AddConference godoc
// @Summary Add a conference paper
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/conferences [post]
func (h *FacultyHandler) AddConference(c *gin.Context) {
	addRecord(c, h.faculty.AddConference)
}

// DeleteConference godoc
// @Summary Delete a conference paper
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/conferences/{id} [delete]
func (h *FacultyHandler) DeleteConference(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteConference)
}

// ListSeminars godoc
// @Summary List my seminars
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/seminars [get]
func (h *FacultyHandler) ListSeminars(c *gin.Context) {
	listRecords(c, h.faculty.ListSeminars)
}

// AddSeminar godoc
// @Summary Add a seminar
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/seminars [post]
func (h *FacultyHandler) AddSeminar(c *gin.Context) {
	addRecord(c, h.faculty.AddSeminar)
}

// DeleteSeminar godoc
// @Summary Delete a seminar
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/seminars/{id} [delete]
func (h *FacultyHandler) DeleteSeminar(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteSeminar)
}

// ListLectures godoc
// @Summary List my invited lectures
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/lectures [get]
func (h *FacultyHandler) ListLectures(c *gin.Context) {
	listRecords(c, h.faculty.ListLectures)
}

// AddLecture godoc
// @Summary Add an invited lecture
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/lectures [post]
func (h *FacultyHandler) AddLecture(c *gin.Context) {
	addRecord(c, h.faculty.AddLecture)
}

// DeleteLecture godoc
// @Summary Delete an invited lecture
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/lectures/{id} [delete]
func (h *FacultyHandler) DeleteLecture(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteLecture)
}

// ListMemberships godoc
// @Summary List my professional memberships
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/memberships [get]
func (h *FacultyHandler) ListMemberships(c *gin.Context) {
	listRecords(c, h.faculty.ListMemberships)
}

// AddMembership godoc
// @Summary Add a professional membership
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/memberships [post]
func (h *FacultyHandler) AddMembership(c *gin.Context) {
	addRecord(c, h.faculty.AddMembership)
}

// DeleteMembership godoc
// @Summary Delete a professional membership
// @Tags Faculty
// @Security BearerAuth
// @Router /faculty/memberships/{id} [delete]
func (h *FacultyHandler) DeleteMembership(c *gin.Context) {
	deleteRecord(c, h.faculty.DeleteMembership)
}

// listRecords, addRecord and deleteRecord fold the per-category endpoints
// into one shape: the owner always comes from the token, never the request.

func listRecords[T any](c *gin.Context, list func(ctx context.Context, userID, academicYear string) ([]T, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	out, err := list(c.Request.Context(), claims.Subject, c.Query("academic_year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if out == nil {
		out = []T{}
	}
	response.JSON(c, http.StatusOK, out, map[string]interface{}{"count": len(out)})
}

func addRecord[T any](c *gin.Context, add func(ctx context.Context, userID string, row T) (*T, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid record payload"))
		return
	}

	row, err := add(c.Request.Context(), claims.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

func deleteRecord(c *gin.Context, del func(ctx context.Context, id, userID string) error) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := del(c.Request.Context(), c.Param("id"), claims.Subject); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
