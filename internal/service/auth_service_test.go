package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/pkg/config"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/password"
)

type mockAdminRepo struct {
	byEmail           *models.AdminUser
	byID              *models.AdminUser
	findByEmailErr    error
	updatePasswordErr error
	updatedHash       string
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

func (m *mockAdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	m.updatedHash = passwordHash
	return nil
}

type mockFacultyAuthRepo struct {
	byEmail     *models.FacultyUser
	byID        *models.FacultyUser
	updatedHash string
}

func (m *mockFacultyAuthRepo) FindByEmail(ctx context.Context, email string) (*models.FacultyUser, error) {
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockFacultyAuthRepo) FindByID(ctx context.Context, id string) (*models.FacultyUser, error) {
	if m.byID == nil {
		return nil, sql.ErrNoRows
	}
	return m.byID, nil
}

func (m *mockFacultyAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	m.updatedHash = passwordHash
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return hash
}

func TestLoginAdminSuccess(t *testing.T) {
	admins := &mockAdminRepo{byEmail: &models.AdminUser{
		ID: "admin-1", Email: "root@campus.edu", PasswordHash: mustHash(t, "secret123"), Name: "Root", Active: true,
	}}
	svc := NewAuthService(admins, &mockFacultyAuthRepo{}, nil, nil, testJWTConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "root@campus.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.UserType)
	assert.Equal(t, "bearer", res.TokenType)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.UserType)
	assert.Empty(t, claims.EmployeeID)
}

func TestLoginInactiveAdminFailsBeforePasswordCheck(t *testing.T) {
	admins := &mockAdminRepo{byEmail: &models.AdminUser{
		ID: "admin-1", Email: "root@campus.edu", PasswordHash: mustHash(t, "secret123"), Active: false,
	}}
	svc := NewAuthService(admins, &mockFacultyAuthRepo{}, nil, nil, testJWTConfig())

	// Wrong password on a deactivated account still reports the
	// deactivation, not bad credentials.
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "root@campus.edu", Password: "wrong-password"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
	assert.Equal(t, 403, appErr.Status)
}

func TestLoginAdminMismatchFallsThroughToFaculty(t *testing.T) {
	shared := "asha@campus.edu"
	admins := &mockAdminRepo{byEmail: &models.AdminUser{
		ID: "admin-1", Email: shared, PasswordHash: mustHash(t, "admin-password"), Active: true,
	}}
	faculty := &mockFacultyAuthRepo{byEmail: &models.FacultyUser{
		ID: "fac-1", Email: shared, PasswordHash: mustHash(t, "faculty-password"), Name: "Asha", EmployeeID: "EMP001", Active: true,
	}}
	svc := NewAuthService(admins, faculty, nil, nil, testJWTConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: shared, Password: "faculty-password"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, res.UserType)
	assert.Equal(t, "fac-1", res.UserID)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", claims.EmployeeID)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockAdminRepo{}, &mockFacultyAuthRepo{}, nil, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@campus.edu", Password: "whatever"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, 401, appErr.Status)
}

func TestLoginInactiveFaculty(t *testing.T) {
	faculty := &mockFacultyAuthRepo{byEmail: &models.FacultyUser{
		ID: "fac-1", Email: "asha@campus.edu", PasswordHash: mustHash(t, "secret123"), Active: false,
	}}
	svc := NewAuthService(&mockAdminRepo{}, faculty, nil, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@campus.edu", Password: "secret123"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestLoginFacultyWrongPassword(t *testing.T) {
	faculty := &mockFacultyAuthRepo{byEmail: &models.FacultyUser{
		ID: "fac-1", Email: "asha@campus.edu", PasswordHash: mustHash(t, "secret123"), Active: true,
	}}
	svc := NewAuthService(&mockAdminRepo{}, faculty, nil, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "asha@campus.edu", Password: "nope"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&mockAdminRepo{}, &mockFacultyAuthRepo{}, nil, nil, testJWTConfig())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		appErr := appErrors.FromError(err)
		assert.Equal(t, 401, appErr.Status)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := NewAuthService(&mockAdminRepo{}, &mockFacultyAuthRepo{}, nil, nil, testJWTConfig())

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		UserType:         models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.Error(t, err)
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	cfg := testJWTConfig()
	svc := NewAuthService(&mockAdminRepo{}, &mockFacultyAuthRepo{}, nil, nil, cfg)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		UserType:         models.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	svc := NewAuthService(&mockAdminRepo{}, &mockFacultyAuthRepo{}, nil, nil, cfg)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		UserType:         models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	faculty := &mockFacultyAuthRepo{byID: &models.FacultyUser{
		ID: "fac-1", PasswordHash: mustHash(t, "current"), Active: true,
	}}
	svc := NewAuthService(&mockAdminRepo{}, faculty, nil, nil, testJWTConfig())

	claims := &models.Claims{UserType: models.RoleFaculty, RegisteredClaims: jwt.RegisteredClaims{Subject: "fac-1"}}
	err := svc.ChangePassword(context.Background(), claims, models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "brand-new"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Empty(t, faculty.updatedHash)
}

func TestChangePasswordSuccess(t *testing.T) {
	faculty := &mockFacultyAuthRepo{byID: &models.FacultyUser{
		ID: "fac-1", PasswordHash: mustHash(t, "current"), Active: true,
	}}
	svc := NewAuthService(&mockAdminRepo{}, faculty, nil, nil, testJWTConfig())

	claims := &models.Claims{UserType: models.RoleFaculty, RegisteredClaims: jwt.RegisteredClaims{Subject: "fac-1"}}
	require.NoError(t, svc.ChangePassword(context.Background(), claims, models.ChangePasswordRequest{OldPassword: "current", NewPassword: "brand-new"}))
	assert.NotEmpty(t, faculty.updatedHash)
	assert.True(t, password.Verify("brand-new", faculty.updatedHash))
}

func TestMeResolvesAdmin(t *testing.T) {
	admins := &mockAdminRepo{byID: &models.AdminUser{ID: "admin-1", Email: "root@campus.edu", Name: "Root", Active: true}}
	svc := NewAuthService(admins, &mockFacultyAuthRepo{}, nil, nil, testJWTConfig())

	claims := &models.Claims{UserType: models.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"}}
	info, err := svc.Me(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, info.UserType)
	assert.Equal(t, "root@campus.edu", info.Email)
}
