package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/pkg/config"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
	"github.com/campushq/faculty-api/pkg/password"
)

type authAdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id string) (*models.AdminUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}

type authFacultyRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.FacultyUser, error)
	FindByID(ctx context.Context, id string) (*models.FacultyUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}

// AuthService provides login, token issuing and password management for both
// principal kinds.
type AuthService struct {
	admins    authAdminRepository
	faculty   authFacultyRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    config.JWTConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(admins authAdminRepository, faculty authFacultyRepository, validate *validator.Validate, logger *zap.Logger, cfg config.JWTConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{admins: admins, faculty: faculty, validator: validate, logger: logger, config: cfg}
}

// Login authenticates against the admins table first, then faculty accounts.
// An inactive account that matches the email fails before the password is
// checked, so disabled principals learn their state even with a wrong
// password. An admin row whose password does not match falls through to the
// faculty lookup.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
	}
	if admin != nil {
		if !admin.Active {
			return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
		}
		if password.Verify(req.Password, admin.PasswordHash) {
			token, err := s.issueToken(admin.ID, admin.Email, admin.Name, "", models.RoleAdmin)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
			}
			s.logger.Info("admin login", zap.String("user_id", admin.ID))
			return &models.LoginResponse{
				AccessToken: token,
				TokenType:   "bearer",
				UserType:    models.RoleAdmin,
				UserID:      admin.ID,
				Name:        admin.Name,
			}, nil
		}
	}

	user, err := s.faculty.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty")
	}
	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, err := s.issueToken(user.ID, user.Email, user.Name, user.EmployeeID, models.RoleFaculty)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	s.logger.Info("faculty login", zap.String("user_id", user.ID))
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserType:    models.RoleFaculty,
		UserID:      user.ID,
		Name:        user.Name,
	}, nil
}

// ValidateToken decodes and verifies an access token. It is total over its
// input: any malformed, forged or expired token yields an unauthorized error,
// never a panic.
func (s *AuthService) ValidateToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	if !claims.UserType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unknown principal role")
	}
	return claims, nil
}

// Me resolves the authenticated principal against its backing table.
func (s *AuthService) Me(ctx context.Context, claims *models.Claims) (*models.UserInfo, error) {
	switch claims.UserType {
	case models.RoleAdmin:
		admin, err := s.admins.FindByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
		}
		return &models.UserInfo{UserID: admin.ID, Email: admin.Email, UserType: models.RoleAdmin, Name: admin.Name}, nil
	case models.RoleFaculty:
		user, err := s.faculty.FindByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty")
		}
		return &models.UserInfo{UserID: user.ID, Email: user.Email, UserType: models.RoleFaculty, Name: user.Name}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unknown principal role")
	}
}

// ChangePassword verifies the current password and stores a new hash for the
// authenticated principal.
func (s *AuthService) ChangePassword(ctx context.Context, claims *models.Claims, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}

	var currentHash string
	switch claims.UserType {
	case models.RoleAdmin:
		admin, err := s.admins.FindByID(ctx, claims.Subject)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
		}
		currentHash = admin.PasswordHash
	case models.RoleFaculty:
		user, err := s.faculty.FindByID(ctx, claims.Subject)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty")
		}
		currentHash = user.PasswordHash
	default:
		return appErrors.Clone(appErrors.ErrUnauthorized, "unknown principal role")
	}

	if !password.Verify(req.OldPassword, currentHash) {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "current password is incorrect")
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := time.Now().UTC()
	switch claims.UserType {
	case models.RoleAdmin:
		err = s.admins.UpdatePassword(ctx, claims.Subject, hash, now)
	default:
		err = s.faculty.UpdatePassword(ctx, claims.Subject, hash, now)
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	s.logger.Info("password changed", zap.String("user_id", claims.Subject), zap.String("role", string(claims.UserType)))
	return nil
}

func (s *AuthService) issueToken(userID, email, name, employeeID string, role models.Role) (string, error) {
	now := time.Now().UTC()
	claims := models.Claims{
		UserType:   role,
		Email:      email,
		Name:       name,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}
