package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-api/internal/models"
)

// RecordRepository provides database access to faculty profiles and the
// per-category academic record tables. Every category row is owned by one
// faculty user and tagged with an academic year.
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new instance of RecordRepository.
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// FindProfile returns the profile for a faculty user.
func (r *RecordRepository) FindProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const query = `SELECT id, user_id, name_prefix, name, designation, department, faculty_id, phone, created_at, updated_at FROM faculty_profiles WHERE user_id = $1 LIMIT 1`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// UpsertProfile inserts or replaces the profile for a faculty user and
// returns the stored row.
func (r *RecordRepository) UpsertProfile(ctx context.Context, userID string, in models.ProfileUpdate) (*models.Profile, error) {
	const query = `INSERT INTO faculty_profiles (id, user_id, name_prefix, name, designation, department, faculty_id, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			name_prefix = EXCLUDED.name_prefix,
			name = EXCLUDED.name,
			designation = EXCLUDED.designation,
			department = EXCLUDED.department,
			faculty_id = EXCLUDED.faculty_id,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, name_prefix, name, designation, department, faculty_id, phone, created_at, updated_at`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query,
		uuid.NewString(), userID, in.NamePrefix, in.Name, in.Designation, in.Department, in.FacultyID, in.Phone, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &profile, nil
}

// ListPublications returns publications owned by the user, optionally
// narrowed to one academic year, newest first.
func (r *RecordRepository) ListPublications(ctx context.Context, userID, academicYear string) ([]models.Publication, error) {
	var out []models.Publication
	err := r.listOwned(ctx, &out, "publications", "id, user_id, academic_year, authors, title, journal_name, issn_isbn, url, created_at", userID, academicYear)
	return out, err
}

// CreatePublication inserts a publication entry.
func (r *RecordRepository) CreatePublication(ctx context.Context, row *models.Publication) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO publications (id, user_id, academic_year, authors, title, journal_name, issn_isbn, url, created_at) VALUES (:id, :user_id, :academic_year, :authors, :title, :journal_name, :issn_isbn, :url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create publication: %w", err)
	}
	return nil
}

// DeletePublication removes a publication owned by the user.
func (r *RecordRepository) DeletePublication(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "publications", id, userID)
}

// ListBookPublications returns book publications owned by the user.
func (r *RecordRepository) ListBookPublications(ctx context.Context, userID, academicYear string) ([]models.BookPublication, error) {
	var out []models.BookPublication
	err := r.listOwned(ctx, &out, "book_publications", "id, user_id, academic_year, title, publisher, isbn, created_at", userID, academicYear)
	return out, err
}

// CreateBookPublication inserts a book publication entry.
func (r *RecordRepository) CreateBookPublication(ctx context.Context, row *models.BookPublication) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO book_publications (id, user_id, academic_year, title, publisher, isbn, created_at) VALUES (:id, :user_id, :academic_year, :title, :publisher, :isbn, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create book publication: %w", err)
	}
	return nil
}

// DeleteBookPublication removes a book publication owned by the user.
func (r *RecordRepository) DeleteBookPublication(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "book_publications", id, userID)
}

// ListAwards returns awards owned by the user.
func (r *RecordRepository) ListAwards(ctx context.Context, userID, academicYear string) ([]models.Award, error) {
	var out []models.Award
	err := r.listOwned(ctx, &out, "awards", "id, user_id, academic_year, title, awarding_agency, level, award_date, created_at", userID, academicYear)
	return out, err
}

// CreateAward inserts an award entry.
func (r *RecordRepository) CreateAward(ctx context.Context, row *models.Award) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO awards (id, user_id, academic_year, title, awarding_agency, level, award_date, created_at) VALUES (:id, :user_id, :academic_year, :title, :awarding_agency, :level, :award_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create award: %w", err)
	}
	return nil
}

// DeleteAward removes an award owned by the user.
func (r *RecordRepository) DeleteAward(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "awards", id, userID)
}

// ListResearchProjects returns research projects owned by the user.
func (r *RecordRepository) ListResearchProjects(ctx context.Context, userID, academicYear string) ([]models.ResearchProject, error) {
	var out []models.ResearchProject
	err := r.listOwned(ctx, &out, "research_projects", "id, user_id, academic_year, title, agency, period, investigator_type, grant_amount, created_at", userID, academicYear)
	return out, err
}

// CreateResearchProject inserts a research project entry.
func (r *RecordRepository) CreateResearchProject(ctx context.Context, row *models.ResearchProject) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO research_projects (id, user_id, academic_year, title, agency, period, investigator_type, grant_amount, created_at) VALUES (:id, :user_id, :academic_year, :title, :agency, :period, :investigator_type, :grant_amount, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create research project: %w", err)
	}
	return nil
}

// DeleteResearchProject removes a research project owned by the user.
func (r *RecordRepository) DeleteResearchProject(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "research_projects", id, userID)
}

// ListPatents returns patents owned by the user.
func (r *RecordRepository) ListPatents(ctx context.Context, userID, academicYear string) ([]models.Patent, error) {
	var out []models.Patent
	err := r.listOwned(ctx, &out, "patents", "id, user_id, academic_year, title, patent_number, created_at", userID, academicYear)
	return out, err
}

// CreatePatent inserts a patent entry.
func (r *RecordRepository) CreatePatent(ctx context.Context, row *models.Patent) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO patents (id, user_id, academic_year, title, patent_number, created_at) VALUES (:id, :user_id, :academic_year, :title, :patent_number, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create patent: %w", err)
	}
	return nil
}

// DeletePatent removes a patent owned by the user.
func (r *RecordRepository) DeletePatent(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "patents", id, userID)
}

// ListConferences returns conference papers owned by the user.
func (r *RecordRepository) ListConferences(ctx context.Context, userID, academicYear string) ([]models.Conference, error) {
	var out []models.Conference
	err := r.listOwned(ctx, &out, "conferences", "id, user_id, academic_year, paper_title, issn_isbn, conference_details, level, created_at", userID, academicYear)
	return out, err
}

// CreateConference inserts a conference paper entry.
func (r *RecordRepository) CreateConference(ctx context.Context, row *models.Conference) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO conferences (id, user_id, academic_year, paper_title, issn_isbn, conference_details, level, created_at) VALUES (:id, :user_id, :academic_year, :paper_title, :issn_isbn, :conference_details, :level, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create conference: %w", err)
	}
	return nil
}

// DeleteConference removes a conference paper owned by the user.
func (r *RecordRepository) DeleteConference(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "conferences", id, userID)
}

// ListSeminars returns seminars owned by the user.
func (r *RecordRepository) ListSeminars(ctx context.Context, userID, academicYear string) ([]models.Seminar, error) {
	var out []models.Seminar
	err := r.listOwned(ctx, &out, "seminars", "id, user_id, academic_year, title, venue, held_on, created_at", userID, academicYear)
	return out, err
}

// CreateSeminar inserts a seminar entry.
func (r *RecordRepository) CreateSeminar(ctx context.Context, row *models.Seminar) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO seminars (id, user_id, academic_year, title, venue, held_on, created_at) VALUES (:id, :user_id, :academic_year, :title, :venue, :held_on, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create seminar: %w", err)
	}
	return nil
}

// DeleteSeminar removes a seminar owned by the user.
func (r *RecordRepository) DeleteSeminar(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "seminars", id, userID)
}

// ListLectures returns invited lectures owned by the user.
func (r *RecordRepository) ListLectures(ctx context.Context, userID, academicYear string) ([]models.Lecture, error) {
	var out []models.Lecture
	err := r.listOwned(ctx, &out, "lectures", "id, user_id, academic_year, topic, institution, delivered_on, created_at", userID, academicYear)
	return out, err
}

// CreateLecture inserts an invited lecture entry.
func (r *RecordRepository) CreateLecture(ctx context.Context, row *models.Lecture) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO lectures (id, user_id, academic_year, topic, institution, delivered_on, created_at) VALUES (:id, :user_id, :academic_year, :topic, :institution, :delivered_on, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create lecture: %w", err)
	}
	return nil
}

// DeleteLecture removes an invited lecture owned by the user.
func (r *RecordRepository) DeleteLecture(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "lectures", id, userID)
}

// ListMemberships returns professional memberships owned by the user.
func (r *RecordRepository) ListMemberships(ctx context.Context, userID, academicYear string) ([]models.Membership, error) {
	var out []models.Membership
	err := r.listOwned(ctx, &out, "memberships", "id, user_id, academic_year, body, membership_type, created_at", userID, academicYear)
	return out, err
}

// CreateMembership inserts a membership entry.
func (r *RecordRepository) CreateMembership(ctx context.Context, row *models.Membership) error {
	stampNew(&row.ID, &row.CreatedAt)
	const query = `INSERT INTO memberships (id, user_id, academic_year, body, membership_type, created_at) VALUES (:id, :user_id, :academic_year, :body, :membership_type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// DeleteMembership removes a membership owned by the user.
func (r *RecordRepository) DeleteMembership(ctx context.Context, id, userID string) error {
	return r.deleteOwned(ctx, "memberships", id, userID)
}

// CountPublications counts publications owned by the user.
func (r *RecordRepository) CountPublications(ctx context.Context, userID, academicYear string) (int, error) {
	return r.countOwned(ctx, "publications", userID, academicYear)
}

// CountAwards counts awards owned by the user.
func (r *RecordRepository) CountAwards(ctx context.Context, userID, academicYear string) (int, error) {
	return r.countOwned(ctx, "awards", userID, academicYear)
}

// CountPatents counts patents owned by the user.
func (r *RecordRepository) CountPatents(ctx context.Context, userID, academicYear string) (int, error) {
	return r.countOwned(ctx, "patents", userID, academicYear)
}

// AcademicYears returns every distinct academic year appearing in any record
// table, newest first.
func (r *RecordRepository) AcademicYears(ctx context.Context) ([]string, error) {
	const query = `SELECT academic_year FROM publications WHERE academic_year <> ''
		UNION SELECT academic_year FROM book_publications WHERE academic_year <> ''
		UNION SELECT academic_year FROM awards WHERE academic_year <> ''
		UNION SELECT academic_year FROM research_projects WHERE academic_year <> ''
		UNION SELECT academic_year FROM patents WHERE academic_year <> ''
		UNION SELECT academic_year FROM conferences WHERE academic_year <> ''
		UNION SELECT academic_year FROM seminars WHERE academic_year <> ''
		UNION SELECT academic_year FROM lectures WHERE academic_year <> ''
		UNION SELECT academic_year FROM memberships WHERE academic_year <> ''
		ORDER BY academic_year DESC`
	var years []string
	if err := r.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}

// Departments returns every distinct department found in faculty profiles.
func (r *RecordRepository) Departments(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT department FROM faculty_profiles WHERE department <> '' ORDER BY department`
	var departments []string
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

func (r *RecordRepository) listOwned(ctx context.Context, dest interface{}, table, columns, userID, academicYear string) error {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1", columns, table)
	args := []interface{}{userID}
	if academicYear != "" {
		query += " AND academic_year = $2"
		args = append(args, academicYear)
	}
	query += " ORDER BY created_at DESC"

	if err := r.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	return nil
}

func (r *RecordRepository) deleteOwned(ctx context.Context, table, id, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", table)
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *RecordRepository) countOwned(ctx context.Context, table, userID, academicYear string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE user_id = $1", table)
	args := []interface{}{userID}
	if academicYear != "" {
		query += " AND academic_year = $2"
		args = append(args, academicYear)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

func stampNew(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
