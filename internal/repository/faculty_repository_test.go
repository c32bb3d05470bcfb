package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-api/internal/models"
)

func newFacultyRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func facultyColumns() []string {
	return []string{"id", "email", "password_hash", "name", "employee_id", "phone", "is_active", "created_at", "updated_at"}
}

func TestFacultyRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()

	repo := NewFacultyRepository(db)
	rows := sqlmock.NewRows(facultyColumns()).
		AddRow("fac-1", "asha@campus.edu", "$2a$10$hash", "Asha Rao", "EMP001", "9999999999", true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM faculty_users WHERE email")).
		WithArgs("asha@campus.edu").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "asha@campus.edu")
	require.NoError(t, err)
	require.Equal(t, "EMP001", user.EmployeeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()

	repo := NewFacultyRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty_users")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.FacultyUser{
		Email:        "asha@campus.edu",
		PasswordHash: "$2a$10$hash",
		Name:         "Asha Rao",
		EmployeeID:   "EMP001",
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()

	repo := NewFacultyRepository(db)
	rows := sqlmock.NewRows([]string{"id", "email", "name", "employee_id", "phone", "is_active", "created_at", "designation", "department"}).
		AddRow("fac-1", "asha@campus.edu", "Asha Rao", "EMP001", "", true, time.Now(), "Professor", "Physics")
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN faculty_profiles")).
		WithArgs("%asha%", "Physics").
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), models.FacultyFilter{Search: "Asha", Department: "Physics"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Physics", out[0].Department)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositorySetActiveMissingRow(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()

	repo := NewFacultyRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE faculty_users SET is_active")).
		WithArgs("fac-missing", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "fac-missing", false)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryEmployeeIDExists(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()

	repo := NewFacultyRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM faculty_users WHERE employee_id")).
		WithArgs("EMP001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.EmployeeIDExists(context.Background(), "EMP001")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
