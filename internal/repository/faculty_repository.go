package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-api/internal/models"
)

// FacultyRepository provides database access to faculty accounts and the
// directory view joined with profiles.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new instance of FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// FindByEmail returns a faculty account by email address.
func (r *FacultyRepository) FindByEmail(ctx context.Context, email string) (*models.FacultyUser, error) {
	const query = `SELECT id, email, password_hash, name, employee_id, phone, is_active, created_at, updated_at FROM faculty_users WHERE email = $1 LIMIT 1`
	var user models.FacultyUser
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faculty by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a faculty account by identifier.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.FacultyUser, error) {
	const query = `SELECT id, email, password_hash, name, employee_id, phone, is_active, created_at, updated_at FROM faculty_users WHERE id = $1 LIMIT 1`
	var user models.FacultyUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faculty by id: %w", err)
	}
	return &user, nil
}

// EmailExists reports whether a faculty account already uses the email.
func (r *FacultyRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM faculty_users WHERE email = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check faculty email: %w", err)
	}
	return exists, nil
}

// EmployeeIDExists reports whether a faculty account already uses the
// employee identifier.
func (r *FacultyRepository) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM faculty_users WHERE employee_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, employeeID); err != nil {
		return false, fmt.Errorf("check faculty employee id: %w", err)
	}
	return exists, nil
}

// Create inserts a new faculty account.
func (r *FacultyRepository) Create(ctx context.Context, user *models.FacultyUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO faculty_users (id, email, password_hash, name, employee_id, phone, is_active, created_at, updated_at) VALUES (:id, :email, :password_hash, :name, :employee_id, :phone, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// List returns the directory view of faculty accounts joined with profile
// designation and department, newest first.
func (r *FacultyRepository) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultySummary, error) {
	query := `SELECT u.id, u.email, u.name, u.employee_id, u.phone, u.is_active, u.created_at,
		COALESCE(p.designation, '') AS designation, COALESCE(p.department, '') AS department
		FROM faculty_users u
		LEFT JOIN faculty_profiles p ON p.user_id = u.id`

	conditions := []string{}
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(LOWER(u.name) LIKE $%d OR LOWER(u.email) LIKE $%d OR LOWER(u.employee_id) LIKE $%d)", n, n, n))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("p.department = $%d", len(args)))
	}
	if filter.Designation != "" {
		args = append(args, filter.Designation)
		conditions = append(conditions, fmt.Sprintf("p.designation = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY u.created_at DESC"

	var out []models.FacultySummary
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return out, nil
}

// SetActive toggles the account activation flag.
func (r *FacultyRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE faculty_users SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set faculty active: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword updates the stored password hash.
func (r *FacultyRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE faculty_users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, updatedAt); err != nil {
		return fmt.Errorf("update faculty password: %w", err)
	}
	return nil
}
