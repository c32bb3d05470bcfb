package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campushq/faculty-api/internal/models"
	appErrors "github.com/campushq/faculty-api/pkg/errors"
)

const (
	academicYearsCacheKey = "lookup:academic_years"
	departmentsCacheKey   = "lookup:departments"
)

type directoryFacultyRepository interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultySummary, error)
	FindByID(ctx context.Context, id string) (*models.FacultyUser, error)
}

type directoryRecordRepository interface {
	FindProfile(ctx context.Context, userID string) (*models.Profile, error)
	CountPublications(ctx context.Context, userID, academicYear string) (int, error)
	CountAwards(ctx context.Context, userID, academicYear string) (int, error)
	CountPatents(ctx context.Context, userID, academicYear string) (int, error)
	AcademicYears(ctx context.Context) ([]string, error)
	Departments(ctx context.Context) ([]string, error)
}

// DirectoryService serves the admin-side faculty directory, roster assembly
// and the filter lookups. Lookup results are cached in Redis since they only
// change when records are added.
type DirectoryService struct {
	faculty  directoryFacultyRepository
	records  directoryRecordRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDirectoryService constructs a DirectoryService instance. The cache
// client may be nil, in which case lookups always hit the database.
func NewDirectoryService(faculty directoryFacultyRepository, records directoryRecordRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{faculty: faculty, records: records, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns the filtered faculty directory.
func (s *DirectoryService) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultySummary, error) {
	out, err := s.faculty.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}
	if out == nil {
		out = []models.FacultySummary{}
	}
	return out, nil
}

// Get returns a single faculty account.
func (s *DirectoryService) Get(ctx context.Context, id string) (*models.FacultyUser, error) {
	user, err := s.faculty.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty")
	}
	return user, nil
}

// Roster builds one summary row per faculty member with record counts,
// optionally narrowed to one academic year. Ordering follows the directory
// listing, so roster exports are stable between calls.
func (s *DirectoryService) Roster(ctx context.Context, academicYear string) ([]models.RosterRow, error) {
	members, err := s.List(ctx, models.FacultyFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]models.RosterRow, 0, len(members))
	for _, m := range members {
		row := models.RosterRow{
			Name:        m.Name,
			Email:       m.Email,
			EmployeeID:  m.EmployeeID,
			Designation: m.Designation,
			Department:  m.Department,
		}
		if row.Publications, err = s.records.CountPublications(ctx, m.ID, academicYear); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count records")
		}
		if row.Awards, err = s.records.CountAwards(ctx, m.ID, academicYear); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count records")
		}
		if row.Patents, err = s.records.CountPatents(ctx, m.ID, academicYear); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count records")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AcademicYears returns every academic year appearing in any record table.
func (s *DirectoryService) AcademicYears(ctx context.Context) ([]string, error) {
	return s.cachedLookup(ctx, academicYearsCacheKey, s.records.AcademicYears)
}

// Departments returns every department found in faculty profiles.
func (s *DirectoryService) Departments(ctx context.Context) ([]string, error) {
	return s.cachedLookup(ctx, departmentsCacheKey, s.records.Departments)
}

func (s *DirectoryService) cachedLookup(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached []string
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	values, err := fetch(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lookup")
	}
	if values == nil {
		values = []string{}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(values); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("caching lookup", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return values, nil
}
