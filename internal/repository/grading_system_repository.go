package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

// GradingSystemRepository manages grading system persistence. Grade ranges
// are always written together with their parent system so a reader never
// observes a partially replaced scale.
type GradingSystemRepository struct {
	db *sqlx.DB
}

// NewGradingSystemRepository creates a new repository instance.
func NewGradingSystemRepository(db *sqlx.DB) *GradingSystemRepository {
	return &GradingSystemRepository{db: db}
}

// List returns grading systems matching the provided filter.
func (r *GradingSystemRepository) List(ctx context.Context, filter models.GradingSystemFilter) ([]models.GradingSystem, error) {
	query := `SELECT id, name, type, min_score, max_score, pass_mark, active, created_at, updated_at
        FROM grading_systems WHERE 1=1`
	args := []interface{}{}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", len(args)+1)
		args = append(args, *filter.Active)
	}
	query += " ORDER BY name ASC"

	var systems []models.GradingSystem
	if err := r.db.SelectContext(ctx, &systems, query, args...); err != nil {
		return nil, fmt.Errorf("list grading systems: %w", err)
	}
	for i := range systems {
		ranges, err := r.loadRanges(ctx, systems[i].ID)
		if err != nil {
			return nil, err
		}
		systems[i].Ranges = ranges
	}
	return systems, nil
}

// FindByID returns a grading system by ID with its grade ranges.
func (r *GradingSystemRepository) FindByID(ctx context.Context, id string) (*models.GradingSystem, error) {
	const query = `SELECT id, name, type, min_score, max_score, pass_mark, active, created_at, updated_at
        FROM grading_systems WHERE id = $1`
	var system models.GradingSystem
	if err := r.db.GetContext(ctx, &system, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("grading system %s not found", id))
		}
		return nil, fmt.Errorf("find grading system: %w", err)
	}
	ranges, err := r.loadRanges(ctx, id)
	if err != nil {
		return nil, err
	}
	system.Ranges = ranges
	return &system, nil
}

// Create inserts a grading system with its ranges in one transaction.
func (r *GradingSystemRepository) Create(ctx context.Context, system *models.GradingSystem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if system.ID == "" {
		system.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if system.CreatedAt.IsZero() {
		system.CreatedAt = now
	}
	system.UpdatedAt = now

	const insertSystem = `INSERT INTO grading_systems (id, name, type, min_score, max_score, pass_mark, active, created_at, updated_at)
        VALUES (:id, :name, :type, :min_score, :max_score, :pass_mark, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertSystem, system); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert grading system: %w", err)
	}
	if err := r.replaceRangesTx(ctx, tx, system.ID, system.Ranges); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grading system: %w", err)
	}
	return nil
}

// Update applies changes to the system row and rewrites its ranges.
func (r *GradingSystemRepository) Update(ctx context.Context, system *models.GradingSystem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	system.UpdatedAt = time.Now().UTC()
	const updateQuery = `UPDATE grading_systems SET name = :name, type = :type, min_score = :min_score,
        max_score = :max_score, pass_mark = :pass_mark, active = :active, updated_at = :updated_at WHERE id = :id`
	result, err := tx.NamedExecContext(ctx, updateQuery, system)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("update grading system: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		tx.Rollback() //nolint:errcheck
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("grading system %s not found", system.ID))
	}
	if err := r.replaceRangesTx(ctx, tx, system.ID, system.Ranges); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grading system: %w", err)
	}
	return nil
}

// SetActive toggles the active flag without touching ranges.
func (r *GradingSystemRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE grading_systems SET active = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC()); err != nil {
		return fmt.Errorf("set grading system active: %w", err)
	}
	return nil
}

// InUse reports whether any computed result references the system's grades.
func (r *GradingSystemRepository) InUse(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM subject_results sr
        JOIN scoring_configurations sc ON sc.id = sr.configuration_id
        WHERE sc.grading_system_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check grading system usage: %w", err)
	}
	return true, nil
}

// replaceRangesTx rewrites the system's grade ranges in a transaction.
func (r *GradingSystemRepository) replaceRangesTx(ctx context.Context, tx *sqlx.Tx, systemID string, ranges []models.GradeRange) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM grade_ranges WHERE grading_system_id = $1", systemID); err != nil {
		return fmt.Errorf("clear grade ranges: %w", err)
	}
	if len(ranges) == 0 {
		return nil
	}
	const insertRange = `INSERT INTO grade_ranges (id, grading_system_id, grade, remark, min_score, max_score, grade_point, is_passing)
        VALUES (:id, :grading_system_id, :grade, :remark, :min_score, :max_score, :grade_point, :is_passing)`
	for i := range ranges {
		if ranges[i].ID == "" {
			ranges[i].ID = uuid.NewString()
		}
		ranges[i].GradingSystemID = systemID
		if _, err := tx.NamedExecContext(ctx, insertRange, ranges[i]); err != nil {
			return fmt.Errorf("insert grade range: %w", err)
		}
	}
	return nil
}

func (r *GradingSystemRepository) loadRanges(ctx context.Context, systemID string) ([]models.GradeRange, error) {
	const query = `SELECT id, grading_system_id, grade, remark, min_score, max_score, grade_point, is_passing
        FROM grade_ranges WHERE grading_system_id = $1 ORDER BY min_score ASC`
	var ranges []models.GradeRange
	if err := r.db.SelectContext(ctx, &ranges, query, systemID); err != nil {
		return nil, fmt.Errorf("load grade ranges: %w", err)
	}
	return ranges, nil
}
