package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-api/internal/models"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/password"
)

type mockFacultyAccounts struct {
	created          *models.FacultyUser
	byID             *models.FacultyUser
	emailTaken       bool
	employeeIDTaken  bool
	setActiveMissing bool
	lastActive       *bool
}

func (m *mockFacultyAccounts) FindByID(ctx context.Context, id string) (*models.FacultyUser, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

func (m *mockFacultyAccounts) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailTaken, nil
}

func (m *mockFacultyAccounts) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	return m.employeeIDTaken, nil
}

func (m *mockFacultyAccounts) Create(ctx context.Context, user *models.FacultyUser) error {
	user.ID = "fac-new"
	m.created = user
	return nil
}

func (m *mockFacultyAccounts) SetActive(ctx context.Context, id string, active bool) error {
	if m.setActiveMissing {
		return sql.ErrNoRows
	}
	m.lastActive = &active
	return nil
}

// mockRecords keeps just enough state for the record set and CRUD paths.
type mockRecords struct {
	profile   *models.Profile
	pubs      []models.Publication
	awards    []models.Award
	deleteErr error
}

func (m *mockRecords) FindProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if m.profile == nil {
		return nil, sql.ErrNoRows
	}
	return m.profile, nil
}

func (m *mockRecords) UpsertProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.Profile, error) {
	m.profile = &models.Profile{UserID: userID, Name: in.Name, Designation: in.Designation, Department: in.Department, NamePrefix: in.NamePrefix, FacultyID: in.FacultyID, Phone: in.Phone}
	return m.profile, nil
}

func (m *mockRecords) ListPublications(ctx context.Context, userID, academicYear string) ([]models.Publication, error) {
	return m.pubs, nil
}

func (m *mockRecords) CreatePublication(ctx context.Context, row *models.Publication) error {
	row.ID = "pub-new"
	m.pubs = append(m.pubs, *row)
	return nil
}

func (m *mockRecords) DeletePublication(ctx context.Context, id, userID string) error {
	return m.deleteErr
}

func (m *mockRecords) ListBookPublications(ctx context.Context, userID, academicYear string) ([]models.BookPublication, error) {
	return nil, nil
}
func (m *mockRecords) CreateBookPublication(ctx context.Context, row *models.BookPublication) error {
	return nil
}
func (m *mockRecords) DeleteBookPublication(ctx context.Context, id, userID string) error {
	return m.deleteErr
}
func (m *mockRecords) ListAwards(ctx context.Context, userID, academicYear string) ([]models.Award, error) {
	return m.awards, nil
}
func (m *mockRecords) CreateAward(ctx context.Context, row *models.Award) error { return nil }
func (m *mockRecords) DeleteAward(ctx context.Context, id, userID string) error { return m.deleteErr }
func (m *mockRecords) ListResearchProjects(ctx context.Context, userID, academicYear string) ([]models.ResearchProject, error) {
	return nil, nil
}
func (m *mockRecords) CreateResearchProject(ctx context.Context, row *models.ResearchProject) error {
	return nil
}
func (m *mockRecords) DeleteResearchProject(ctx context.Context, id, userID string) error {
	return m.deleteErr
}
func (m *mockRecords) ListPatents(ctx context.Context, userID, academicYear string) ([]models.Patent, error) {
	return nil, nil
}
func (m *mockRecords) CreatePatent(ctx context.Context, row *models.Patent) error { return nil }
func (m *mockRecords) DeletePatent(ctx context.Context, id, userID string) error {
	return m.deleteErr
}
func (m *mockRecords) ListConferences(ctx context.Context, userID, academicYear string) ([]models.Conference, error) {
	return nil, nil
}
func (m *mockRecords) CreateConference(ctx context.Context, row *models.Conference) error { return nil }
func (m *mockRecords) DeleteConference(ctx context.Context, id, userID string) error {
	return m.deleteErr
}
func (m *mockRecords) ListSeminars(ctx context.Context, userID, academicYear string) ([]models.Seminar, error) {
	return nil, nil
}
func (m *mockRecords) CreateSeminar(ctx context.Context, row *models.Seminar) error { return nil }
func (m *mockRecords) DeleteSeminar(ctx context.Context, id, userID string) error {
	return m.deleteErr
}
func (m *mockRecords) ListLectures(ctx context.Context, userID, academicYear string) ([]models.Lecture, error) {
	return nil, nil
}
func (m *mockRecords) CreateLecture(ctx context.Context, row *models.Lecture) error { return nil }
func (m *mockRecords) DeleteLecture(ctx context.Context, id, userID string) error {
	return m.deleteErr
}
func (m *mockRecords) ListMemberships(ctx context.Context, userID, academicYear string) ([]models.Membership, error) {
	return nil, nil
}
func (m *mockRecords) CreateMembership(ctx context.Context, row *models.Membership) error { return nil }
func (m *mockRecords) DeleteMembership(ctx context.Context, id, userID string) error {
	return m.deleteErr
}

type mockMailer struct {
	delivered bool
	lastCred  string
}

func (m *mockMailer) SendCredential(toEmail, name, credential string) bool {
	m.lastCred = credential
	return m.delivered
}

func provisionReq() models.CreateFacultyRequest {
	return models.CreateFacultyRequest{Name: "Asha Rao", EmployeeID: "EMP001", Email: "asha@campus.edu", Phone: "9999999999"}
}

func TestProvisionCreatesActiveAccountWithHashedCredential(t *testing.T) {
	accounts := &mockFacultyAccounts{}
	mail := &mockMailer{delivered: true}
	svc := NewFacultyService(accounts, &mockRecords{}, mail, nil, nil)

	result, err := svc.Provision(context.Background(), provisionReq())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "asha@campus.edu")
	assert.NotContains(t, result.Message, mail.lastCred)

	require.NotNil(t, accounts.created)
	assert.True(t, accounts.created.Active)
	assert.Len(t, mail.lastCred, password.DefaultLength)
	assert.True(t, password.Verify(mail.lastCred, accounts.created.PasswordHash))
}

func TestProvisionReturnsCredentialInlineWhenMailFails(t *testing.T) {
	accounts := &mockFacultyAccounts{}
	mail := &mockMailer{delivered: false}
	svc := NewFacultyService(accounts, &mockRecords{}, mail, nil, nil)

	result, err := svc.Provision(context.Background(), provisionReq())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, mail.lastCred)
}

func TestProvisionDuplicateEmailConflict(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{emailTaken: true}, &mockRecords{}, &mockMailer{}, nil, nil)

	_, err := svc.Provision(context.Background(), provisionReq())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestProvisionDuplicateEmployeeIDConflict(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{employeeIDTaken: true}, &mockRecords{}, &mockMailer{}, nil, nil)

	_, err := svc.Provision(context.Background(), provisionReq())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestProvisionRejectsInvalidPayload(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{}, &mockRecords{}, &mockMailer{}, nil, nil)

	_, err := svc.Provision(context.Background(), models.CreateFacultyRequest{Name: "X", Email: "not-an-email"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSetActiveMissingFaculty(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{setActiveMissing: true}, &mockRecords{}, &mockMailer{}, nil, nil)

	err := svc.SetActive(context.Background(), "fac-missing", false)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGetProfileAbsentReturnsNil(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{}, &mockRecords{}, &mockMailer{}, nil, nil)

	profile, err := svc.GetProfile(context.Background(), "fac-1")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetRecordSetAssemblesEverything(t *testing.T) {
	accounts := &mockFacultyAccounts{byID: &models.FacultyUser{ID: "fac-1", Name: "Asha Rao", EmployeeID: "EMP001", Active: true}}
	records := &mockRecords{
		profile: &models.Profile{UserID: "fac-1", Department: "Physics"},
		pubs:    []models.Publication{{ID: "pub-1", Title: "On Things"}},
		awards:  []models.Award{{ID: "awd-1", Title: "Best Teacher"}},
	}
	svc := NewFacultyService(accounts, records, &mockMailer{}, nil, nil)

	set, err := svc.GetRecordSet(context.Background(), "fac-1", "2023-24")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", set.User.EmployeeID)
	require.NotNil(t, set.Profile)
	assert.Equal(t, "Physics", set.Profile.Department)
	assert.Len(t, set.Publications, 1)
	assert.Len(t, set.Awards, 1)
	assert.Empty(t, set.Patents)
}

func TestGetRecordSetUnknownFaculty(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{}, &mockRecords{}, &mockMailer{}, nil, nil)

	_, err := svc.GetRecordSet(context.Background(), "ghost", "")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestDeleteRecordNotFound(t *testing.T) {
	svc := NewFacultyService(&mockFacultyAccounts{}, &mockRecords{deleteErr: sql.ErrNoRows}, &mockMailer{}, nil, nil)

	err := svc.DeletePublication(context.Background(), "pub-ghost", "fac-1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAddPublicationStampsOwner(t *testing.T) {
	records := &mockRecords{}
	svc := NewFacultyService(&mockFacultyAccounts{}, records, &mockMailer{}, nil, nil)

	row, err := svc.AddPublication(context.Background(), "fac-1", models.Publication{Title: "On Things", UserID: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, "fac-1", row.UserID)
	assert.Equal(t, "pub-new", row.ID)
}
