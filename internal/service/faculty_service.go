package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/faculty-api/internal/models"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/password"
)

type facultyAccountRepository interface {
	FindByID(ctx context.Context, id string) (*models.FacultyUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmployeeIDExists(ctx context.Context, employeeID string) (bool, error)
	Create(ctx context.Context, user *models.FacultyUser) error
	SetActive(ctx context.Context, id string, active bool) error
}

type recordStore interface {
	FindProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.Profile, error)

	ListPublications(ctx context.Context, userID, academicYear string) ([]models.Publication, error)
	CreatePublication(ctx context.Context, row *models.Publication) error
	DeletePublication(ctx context.Context, id, userID string) error
	ListBookPublications(ctx context.Context, userID, academicYear string) ([]models.BookPublication, error)
	CreateBookPublication(ctx context.Context, row *models.BookPublication) error
	DeleteBookPublication(ctx context.Context, id, userID string) error
	ListAwards(ctx context.Context, userID, academicYear string) ([]models.Award, error)
	CreateAward(ctx context.Context, row *models.Award) error
	DeleteAward(ctx context.Context, id, userID string) error
	ListResearchProjects(ctx context.Context, userID, academicYear string) ([]models.ResearchProject, error)
	CreateResearchProject(ctx context.Context, row *models.ResearchProject) error
	DeleteResearchProject(ctx context.Context, id, userID string) error
	ListPatents(ctx context.Context, userID, academicYear string) ([]models.Patent, error)
	CreatePatent(ctx context.Context, row *models.Patent) error
	DeletePatent(ctx context.Context, id, userID string) error
	ListConferences(ctx context.Context, userID, academicYear string) ([]models.Conference, error)
	CreateConference(ctx context.Context, row *models.Conference) error
	DeleteConference(ctx context.Context, id, userID string) error
	ListSeminars(ctx context.Context, userID, academicYear string) ([]models.Seminar, error)
	CreateSeminar(ctx context.Context, row *models.Seminar) error
	DeleteSeminar(ctx context.Context, id, userID string) error
	ListLectures(ctx context.Context, userID, academicYear string) ([]models.Lecture, error)
	CreateLecture(ctx context.Context, row *models.Lecture) error
	DeleteLecture(ctx context.Context, id, userID string) error
	ListMemberships(ctx context.Context, userID, academicYear string) ([]models.Membership, error)
	CreateMembership(ctx context.Context, row *models.Membership) error
	DeleteMembership(ctx context.Context, id, userID string) error
}

type credentialMailer interface {
	SendCredential(toEmail, name, credential string) bool
}

// FacultyService covers account provisioning plus the self-service profile
// and academic record operations.
type FacultyService struct {
	accounts  facultyAccountRepository
	records   recordStore
	mailer    credentialMailer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService instance.
func NewFacultyService(accounts facultyAccountRepository, records recordStore, mailer credentialMailer, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FacultyService{accounts: accounts, records: records, mailer: mailer, validator: validate, logger: logger}
}

// Provision creates a faculty account with a generated credential. The
// credential is mailed to the new account; if delivery fails it is handed
// back inline so the admin can pass it on manually.
func (s *FacultyService) Provision(ctx context.Context, req models.CreateFacultyRequest) (*models.ProvisionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	if exists, err := s.accounts.EmailExists(ctx, req.Email); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	if exists, err := s.accounts.EmployeeIDExists(ctx, req.EmployeeID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check employee id")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "employee id already registered")
	}

	credential, err := password.Generate(password.DefaultLength)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate credential")
	}
	hash, err := password.Hash(credential)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash credential")
	}

	user := &models.FacultyUser{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		EmployeeID:   req.EmployeeID,
		Phone:        req.Phone,
		Active:       true,
	}
	if err := s.accounts.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}

	s.logger.Info("faculty provisioned", zap.String("user_id", user.ID), zap.String("employee_id", user.EmployeeID))

	if s.mailer != nil && s.mailer.SendCredential(req.Email, req.Name, credential) {
		return &models.ProvisionResult{
			Message: "Faculty account created. Login credentials sent to " + req.Email + ".",
			Success: true,
		}, nil
	}
	return &models.ProvisionResult{
		Message: fmt.Sprintf("Faculty account created. Credential mail could not be delivered; temporary password: %s", credential),
		Success: true,
	}, nil
}

// SetActive toggles account activation for a faculty member.
func (s *FacultyService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.accounts.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update activation")
	}
	s.logger.Info("faculty activation changed", zap.String("user_id", id), zap.Bool("active", active))
	return nil
}

// GetProfile returns the profile for a faculty user, or nil when none has
// been saved yet.
func (s *FacultyService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.records.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch profile")
	}
	return profile, nil
}

// SaveProfile inserts or replaces the profile for a faculty user.
func (s *FacultyService) SaveProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.Profile, error) {
	profile, err := s.records.UpsertProfile(ctx, userID, in)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save profile")
	}
	return profile, nil
}

// GetRecordSet assembles everything a faculty user owns, optionally narrowed
// to one academic year.
func (s *FacultyService) GetRecordSet(ctx context.Context, userID, academicYear string) (*models.RecordSet, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty")
	}

	set := &models.RecordSet{User: *user}
	if set.Profile, err = s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	if set.Publications, err = s.records.ListPublications(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.BookPublications, err = s.records.ListBookPublications(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.Awards, err = s.records.ListAwards(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.ResearchProjects, err = s.records.ListResearchProjects(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.Patents, err = s.records.ListPatents(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.Conferences, err = s.records.ListConferences(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.Seminars, err = s.records.ListSeminars(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.Lectures, err = s.records.ListLectures(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	if set.Memberships, err = s.records.ListMemberships(ctx, userID, academicYear); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}

	return set, nil
}

// ListPublications returns publications owned by the user.
func (s *FacultyService) ListPublications(ctx context.Context, userID, academicYear string) ([]models.Publication, error) {
	out, err := s.records.ListPublications(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddPublication stores a publication for the user.
func (s *FacultyService) AddPublication(ctx context.Context, userID string, row models.Publication) (*models.Publication, error) {
	row.UserID = userID
	if err := s.records.CreatePublication(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeletePublication removes a publication owned by the user.
func (s *FacultyService) DeletePublication(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeletePublication(ctx, id, userID))
}

// ListBookPublications returns book publications owned by the user.
func (s *FacultyService) ListBookPublications(ctx context.Context, userID, academicYear string) ([]models.BookPublication, error) {
	out, err := s.records.ListBookPublications(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddBookPublication stores a book publication for the user.
func (s *FacultyService) AddBookPublication(ctx context.Context, userID string, row models.BookPublication) (*models.BookPublication, error) {
	row.UserID = userID
	if err := s.records.CreateBookPublication(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteBookPublication removes a book publication owned by the user.
func (s *FacultyService) DeleteBookPublication(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteBookPublication(ctx, id, userID))
}

// ListAwards returns awards owned by the user.
func (s *FacultyService) ListAwards(ctx context.Context, userID, academicYear string) ([]models.Award, error) {
	out, err := s.records.ListAwards(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddAward stores an award for the user.
func (s *FacultyService) AddAward(ctx context.Context, userID string, row models.Award) (*models.Award, error) {
	row.UserID = userID
	if err := s.records.CreateAward(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteAward removes an award owned by the user.
func (s *FacultyService) DeleteAward(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteAward(ctx, id, userID))
}

// ListResearchProjects returns research projects owned by the user.
func (s *FacultyService) ListResearchProjects(ctx context.Context, userID, academicYear string) ([]models.ResearchProject, error) {
	out, err := s.records.ListResearchProjects(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddResearchProject stores a research project for the user.
func (s *FacultyService) AddResearchProject(ctx context.Context, userID string, row models.ResearchProject) (*models.ResearchProject, error) {
	row.UserID = userID
	if err := s.records.CreateResearchProject(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteResearchProject removes a research project owned by the user.
func (s *FacultyService) DeleteResearchProject(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteResearchProject(ctx, id, userID))
}

// ListPatents returns patents owned by the user.
func (s *FacultyService) ListPatents(ctx context.Context, userID, academicYear string) ([]models.Patent, error) {
	out, err := s.records.ListPatents(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddPatent stores a patent for the user.
func (s *FacultyService) AddPatent(ctx context.Context, userID string, row models.Patent) (*models.Patent, error) {
	row.UserID = userID
	if err := s.records.CreatePatent(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeletePatent removes a patent owned by the user.
func (s *FacultyService) DeletePatent(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeletePatent(ctx, id, userID))
}

// ListConferences returns conference papers owned by the user.
func (s *FacultyService) ListConferences(ctx context.Context, userID, academicYear string) ([]models.Conference, error) {
	out, err := s.records.ListConferences(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddConference stores a conference paper for the user.
func (s *FacultyService) AddConference(ctx context.Context, userID string, row models.Conference) (*models.Conference, error) {
	row.UserID = userID
	if err := s.records.CreateConference(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteConference removes a conference paper owned by the user.
func (s *FacultyService) DeleteConference(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteConference(ctx, id, userID))
}

// ListSeminars returns seminars owned by the user.
func (s *FacultyService) ListSeminars(ctx context.Context, userID, academicYear string) ([]models.Seminar, error) {
	out, err := s.records.ListSeminars(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddSeminar stores a seminar for the user.
func (s *FacultyService) AddSeminar(ctx context.Context, userID string, row models.Seminar) (*models.Seminar, error) {
	row.UserID = userID
	if err := s.records.CreateSeminar(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteSeminar removes a seminar owned by the user.
func (s *FacultyService) DeleteSeminar(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteSeminar(ctx, id, userID))
}

// ListLectures returns invited lectures owned by the user.
func (s *FacultyService) ListLectures(ctx context.Context, userID, academicYear string) ([]models.Lecture, error) {
	out, err := s.records.ListLectures(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddLecture stores an invited lecture for the user.
func (s *FacultyService) AddLecture(ctx context.Context, userID string, row models.Lecture) (*models.Lecture, error) {
	row.UserID = userID
	if err := s.records.CreateLecture(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteLecture removes an invited lecture owned by the user.
func (s *FacultyService) DeleteLecture(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteLecture(ctx, id, userID))
}

// ListMemberships returns professional memberships owned by the user.
func (s *FacultyService) ListMemberships(ctx context.Context, userID, academicYear string) ([]models.Membership, error) {
	out, err := s.records.ListMemberships(ctx, userID, academicYear)
	return out, s.wrapList(err)
}

// AddMembership stores a membership for the user.
func (s *FacultyService) AddMembership(ctx context.Context, userID string, row models.Membership) (*models.Membership, error) {
	row.UserID = userID
	if err := s.records.CreateMembership(ctx, &row); err != nil {
		return nil, s.wrapCreate(err)
	}
	return &row, nil
}

// DeleteMembership removes a membership owned by the user.
func (s *FacultyService) DeleteMembership(ctx context.Context, id, userID string) error {
	return s.wrapDelete(s.records.DeleteMembership(ctx, id, userID))
}

func (s *FacultyService) wrapList(err error) error {
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch records")
	}
	return nil
}

func (s *FacultyService) wrapCreate(err error) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save record")
}

func (s *FacultyService) wrapDelete(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete record")
}
