package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/campushq/faculty-api/internal/models"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/report"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportDocument is a rendered download ready to be streamed to the client.
type ExportDocument struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

type recordSetSource interface {
	GetRecordSet(ctx context.Context, userID, academicYear string) (*models.RecordSet, error)
}

type rosterSource interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultySummary, error)
	Roster(ctx context.Context, academicYear string) ([]models.RosterRow, error)
}

type subjectRenderer interface {
	RenderSubject(doc report.SubjectDocument) ([]byte, error)
	RenderRosterSummary(rows []report.SummaryRow, academicYear, department string) ([]byte, error)
}

type rosterRenderer interface {
	RenderRoster(rows []map[string]string, academicYear string) ([]byte, error)
}

// ExportService assembles faculty data into the downloadable report formats.
type ExportService struct {
	records   recordSetSource
	directory rosterSource
	pdf       subjectRenderer
	workbook  rosterRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(records recordSetSource, directory rosterSource, pdf subjectRenderer, workbook rosterRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{records: records, directory: directory, pdf: pdf, workbook: workbook, logger: logger}
}

// SubjectPDF renders the full profile report for one faculty member.
func (s *ExportService) SubjectPDF(ctx context.Context, userID, academicYear string) (*ExportDocument, error) {
	return s.subjectPDF(ctx, userID, academicYear, "faculty")
}

// MyProfilePDF renders the same profile report for the authenticated faculty
// member's own download.
func (s *ExportService) MyProfilePDF(ctx context.Context, userID, academicYear string) (*ExportDocument, error) {
	return s.subjectPDF(ctx, userID, academicYear, "my_profile")
}

func (s *ExportService) subjectPDF(ctx context.Context, userID, academicYear, prefix string) (*ExportDocument, error) {
	set, err := s.records.GetRecordSet(ctx, userID, academicYear)
	if err != nil {
		return nil, err
	}

	payload, err := s.pdf.RenderSubject(buildSubjectDocument(set, academicYear))
	if err != nil {
		s.logger.Error("rendering subject pdf", zap.String("user_id", userID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrGeneration.Code, appErrors.ErrGeneration.Status, appErrors.ErrGeneration.Message)
	}

	return &ExportDocument{
		Filename:    fmt.Sprintf("%s_%s_%s.pdf", prefix, set.User.EmployeeID, yearSlug(academicYear, "all")),
		ContentType: contentTypePDF,
		Bytes:       payload,
	}, nil
}

// RosterWorkbook renders the all-faculty spreadsheet export.
func (s *ExportService) RosterWorkbook(ctx context.Context, academicYear string) (*ExportDocument, error) {
	rows, err := s.directory.Roster(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	data := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, map[string]string{
			"Name":         row.Name,
			"Email":        row.Email,
			"Employee ID":  row.EmployeeID,
			"Designation":  row.Designation,
			"Department":   row.Department,
			"Publications": strconv.Itoa(row.Publications),
			"Awards":       strconv.Itoa(row.Awards),
			"Patents":      strconv.Itoa(row.Patents),
		})
	}

	payload, err := s.workbook.RenderRoster(data, academicYear)
	if err != nil {
		s.logger.Error("rendering roster workbook", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrGeneration.Code, appErrors.ErrGeneration.Status, appErrors.ErrGeneration.Message)
	}

	return &ExportDocument{
		Filename:    fmt.Sprintf("all_faculty_%s.xlsx", yearSlug(academicYear, "all_years")),
		ContentType: contentTypeXLSX,
		Bytes:       payload,
	}, nil
}

// RosterSummaryPDF renders the compact directory summary table.
func (s *ExportService) RosterSummaryPDF(ctx context.Context, academicYear, department string) (*ExportDocument, error) {
	members, err := s.directory.List(ctx, models.FacultyFilter{Department: department})
	if err != nil {
		return nil, err
	}

	rows := make([]report.SummaryRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, report.SummaryRow{
			Name:       m.Name,
			Email:      m.Email,
			EmployeeID: m.EmployeeID,
			Department: m.Department,
		})
	}

	payload, err := s.pdf.RenderRosterSummary(rows, academicYear, department)
	if err != nil {
		s.logger.Error("rendering roster summary pdf", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrGeneration.Code, appErrors.ErrGeneration.Status, appErrors.ErrGeneration.Message)
	}

	deptSlug := "all_depts"
	if department != "" {
		deptSlug = strings.ReplaceAll(department, " ", "_")
	}
	return &ExportDocument{
		Filename:    fmt.Sprintf("faculty_summary_%s_%s.pdf", yearSlug(academicYear, "all"), deptSlug),
		ContentType: contentTypePDF,
		Bytes:       payload,
	}, nil
}

// buildSubjectDocument flattens a record set into renderable fields and
// sections. Section order is fixed regardless of which categories hold data,
// empty categories are omitted and every heading carries its entry count.
func buildSubjectDocument(set *models.RecordSet, academicYear string) report.SubjectDocument {
	name := set.User.Name
	phone := set.User.Phone
	designation := ""
	department := ""
	if set.Profile != nil {
		if set.Profile.NamePrefix != "" {
			name = set.Profile.NamePrefix + " " + name
		}
		designation = set.Profile.Designation
		department = set.Profile.Department
		if set.Profile.Phone != "" {
			phone = set.Profile.Phone
		}
	}

	yearLabel := academicYear
	if yearLabel == "" {
		yearLabel = "All Years"
	}

	doc := report.SubjectDocument{
		Fields: []report.Field{
			{Label: "Name", Value: orNA(name)},
			{Label: "Employee ID", Value: orNA(set.User.EmployeeID)},
			{Label: "Email", Value: orNA(set.User.Email)},
			{Label: "Phone", Value: orNA(phone)},
			{Label: "Designation", Value: orNA(designation)},
			{Label: "Department", Value: orNA(department)},
			{Label: "Academic Year", Value: yearLabel},
		},
	}

	addSection(&doc, "Journal Publications", len(set.Publications), func() []string {
		items := make([]string, 0, len(set.Publications))
		for i, p := range set.Publications {
			items = append(items, fmt.Sprintf("%d. %s - %s (Journal: %s, ISSN/ISBN: %s) [%s]",
				i+1, orNA(p.Title), orNA(p.Authors), orNA(p.JournalName), orNA(p.ISSNISBN), orNA(p.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Book Publications", len(set.BookPublications), func() []string {
		items := make([]string, 0, len(set.BookPublications))
		for i, b := range set.BookPublications {
			items = append(items, fmt.Sprintf("%d. %s (Publisher: %s, ISBN: %s) [%s]",
				i+1, orNA(b.Title), orNA(b.Publisher), orNA(b.ISBN), orNA(b.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Awards", len(set.Awards), func() []string {
		items := make([]string, 0, len(set.Awards))
		for i, a := range set.Awards {
			items = append(items, fmt.Sprintf("%d. %s - %s (Level: %s, Date: %s) [%s]",
				i+1, orNA(a.Title), orNA(a.AwardingAgency), orNA(a.Level), orNA(a.AwardDate), orNA(a.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Patents", len(set.Patents), func() []string {
		items := make([]string, 0, len(set.Patents))
		for i, p := range set.Patents {
			items = append(items, fmt.Sprintf("%d. %s (Patent No: %s) [%s]",
				i+1, orNA(p.Title), orNA(p.PatentNumber), orNA(p.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Research Projects", len(set.ResearchProjects), func() []string {
		items := make([]string, 0, len(set.ResearchProjects))
		for i, p := range set.ResearchProjects {
			items = append(items, fmt.Sprintf("%d. %s - %s (Period: %s, Role: %s, Grant: %.2f) [%s]",
				i+1, orNA(p.Title), orNA(p.Agency), orNA(p.Period), orNA(p.InvestigatorType), p.GrantAmount, orNA(p.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Conferences", len(set.Conferences), func() []string {
		items := make([]string, 0, len(set.Conferences))
		for i, c := range set.Conferences {
			items = append(items, fmt.Sprintf("%d. %s - %s (Level: %s, ISSN/ISBN: %s) [%s]",
				i+1, orNA(c.PaperTitle), orNA(c.ConferenceDetails), orNA(c.Level), orNA(c.ISSNISBN), orNA(c.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Seminars", len(set.Seminars), func() []string {
		items := make([]string, 0, len(set.Seminars))
		for i, m := range set.Seminars {
			items = append(items, fmt.Sprintf("%d. %s (Venue: %s, Held On: %s) [%s]",
				i+1, orNA(m.Title), orNA(m.Venue), orNA(m.HeldOn), orNA(m.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Invited Lectures", len(set.Lectures), func() []string {
		items := make([]string, 0, len(set.Lectures))
		for i, l := range set.Lectures {
			items = append(items, fmt.Sprintf("%d. %s (Institution: %s, Delivered On: %s) [%s]",
				i+1, orNA(l.Topic), orNA(l.Institution), orNA(l.DeliveredOn), orNA(l.AcademicYear)))
		}
		return items
	})
	addSection(&doc, "Professional Memberships", len(set.Memberships), func() []string {
		items := make([]string, 0, len(set.Memberships))
		for i, m := range set.Memberships {
			items = append(items, fmt.Sprintf("%d. %s (Type: %s) [%s]",
				i+1, orNA(m.Body), orNA(m.MembershipType), orNA(m.AcademicYear)))
		}
		return items
	})

	return doc
}

func addSection(doc *report.SubjectDocument, title string, count int, build func() []string) {
	if count == 0 {
		return
	}
	doc.Sections = append(doc.Sections, report.Section{
		Title: fmt.Sprintf("%s (%d)", title, count),
		Items: build(),
	})
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

func yearSlug(academicYear, fallback string) string {
	if academicYear == "" {
		return fallback
	}
	return strings.ReplaceAll(academicYear, " ", "_")
}
