package models

import "time"

// Role is the closed set of principal roles carried inside access tokens.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
)

// Valid reports whether the role is one of the two known variants.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleFaculty
}

// AdminUser represents a row in the admins table.
type AdminUser struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Active       bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyUser represents a row in the faculty_users table.
type FacultyUser struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	EmployeeID   string    `db:"employee_id" json:"employee_id"`
	Phone        string    `db:"phone" json:"phone"`
	Active       bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyFilter captures admin-side listing criteria.
type FacultyFilter struct {
	Search      string
	Department  string
	Designation string
}

// FacultySummary is a faculty user joined with the profile fields the
// admin directory displays.
type FacultySummary struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	EmployeeID  string    `db:"employee_id" json:"employee_id"`
	Phone       string    `db:"phone" json:"phone"`
	Active      bool      `db:"is_active" json:"is_active"`
	Designation string    `db:"designation" json:"designation"`
	Department  string    `db:"department" json:"department"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
