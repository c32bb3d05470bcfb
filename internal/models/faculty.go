package models

import "time"

// Profile holds the self-maintained academic profile of a faculty user.
// Optional text columns default to the empty string rather than NULL.
type Profile struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	NamePrefix  string    `db:"name_prefix" json:"name_prefix"`
	Name        string    `db:"name" json:"name"`
	Designation string    `db:"designation" json:"designation"`
	Department  string    `db:"department" json:"department"`
	FacultyID   string    `db:"faculty_id" json:"faculty_id"`
	Phone       string    `db:"phone" json:"phone"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileUpdate is the upsert payload for a faculty profile.
type ProfileUpdate struct {
	NamePrefix  string `json:"name_prefix"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	FacultyID   string `json:"faculty_id"`
	Phone       string `json:"phone"`
}

// Publication is a journal publication entry.
type Publication struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Authors      string    `db:"authors" json:"authors"`
	Title        string    `db:"title" json:"title"`
	JournalName  string    `db:"journal_name" json:"journal_name"`
	ISSNISBN     string    `db:"issn_isbn" json:"issn_isbn"`
	URL          string    `db:"url" json:"url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// BookPublication is a published book or chapter entry.
type BookPublication struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Title        string    `db:"title" json:"title"`
	Publisher    string    `db:"publisher" json:"publisher"`
	ISBN         string    `db:"isbn" json:"isbn"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Award is a recognition entry.
type Award struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	AcademicYear   string    `db:"academic_year" json:"academic_year"`
	Title          string    `db:"title" json:"title"`
	AwardingAgency string    `db:"awarding_agency" json:"awarding_agency"`
	Level          string    `db:"level" json:"level"`
	AwardDate      string    `db:"award_date" json:"award_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ResearchProject is a funded project entry.
type ResearchProject struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"user_id"`
	AcademicYear     string    `db:"academic_year" json:"academic_year"`
	Title            string    `db:"title" json:"title"`
	Agency           string    `db:"agency" json:"agency"`
	Period           string    `db:"period" json:"period"`
	InvestigatorType string    `db:"investigator_type" json:"investigator_type"`
	GrantAmount      float64   `db:"grant_amount" json:"grant_amount"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Patent is a filed or granted patent entry.
type Patent struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Title        string    `db:"title" json:"title"`
	PatentNumber string    `db:"patent_number" json:"patent_number"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Conference is a conference paper entry.
type Conference struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	AcademicYear      string    `db:"academic_year" json:"academic_year"`
	PaperTitle        string    `db:"paper_title" json:"paper_title"`
	ISSNISBN          string    `db:"issn_isbn" json:"issn_isbn"`
	ConferenceDetails string    `db:"conference_details" json:"conference_details"`
	Level             string    `db:"level" json:"level"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// Seminar is an organized or attended seminar entry.
type Seminar struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Title        string    `db:"title" json:"title"`
	Venue        string    `db:"venue" json:"venue"`
	HeldOn       string    `db:"held_on" json:"held_on"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Lecture is an invited lecture entry.
type Lecture struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Topic        string    `db:"topic" json:"topic"`
	Institution  string    `db:"institution" json:"institution"`
	DeliveredOn  string    `db:"delivered_on" json:"delivered_on"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Membership is a professional-body membership entry.
type Membership struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	AcademicYear   string    `db:"academic_year" json:"academic_year"`
	Body           string    `db:"body" json:"body"`
	MembershipType string    `db:"membership_type" json:"membership_type"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// RecordSet aggregates everything owned by one faculty user, optionally
// narrowed to one academic year.
type RecordSet struct {
	User             FacultyUser       `json:"user"`
	Profile          *Profile          `json:"profile"`
	Publications     []Publication     `json:"publications"`
	BookPublications []BookPublication `json:"book_publications"`
	Awards           []Award           `json:"awards"`
	ResearchProjects []ResearchProject `json:"research_projects"`
	Patents          []Patent          `json:"patents"`
	Conferences      []Conference      `json:"conferences"`
	Seminars         []Seminar         `json:"seminars"`
	Lectures         []Lecture         `json:"lectures"`
	Memberships      []Membership      `json:"memberships"`
}

// RosterRow is one faculty member's summary line for multi-subject exports.
type RosterRow struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	EmployeeID   string `json:"employee_id"`
	Designation  string `json:"designation"`
	Department   string `json:"department"`
	Publications int    `json:"publications"`
	Awards       int    `json:"awards"`
	Patents      int    `json:"patents"`
}
