package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a principal.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and principal info for routing.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserType    Role   `json:"user_type"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
}

// ChangePasswordRequest payload for updating the current principal's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// CreateFacultyRequest is the admin-side provisioning payload.
type CreateFacultyRequest struct {
	Name       string `json:"name" validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
}

// ProvisionResult reports the outcome of a faculty provisioning call. When the
// credential mail cannot be delivered the plaintext credential is handed back
// to the caller instead.
type ProvisionResult struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Claims represents the JWT payload for access tokens. The subject claim
// carries the principal id.
type Claims struct {
	UserType   Role   `json:"user_type"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// UserInfo describes the authenticated principal in responses.
type UserInfo struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	UserType Role   `json:"user_type"`
	Name     string `json:"name"`
}
