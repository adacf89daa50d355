package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

const pqUniqueViolation = "23505"

const scoringConfigColumns = `id, name, education_level, result_type, grading_system_id, active, is_default,
    first_test_max, second_test_max, third_test_max,
    first_term_max, second_term_max, third_term_max,
    continuous_assessment_max, take_home_test_max, appearance_max, practical_max, project_max, note_copying_max,
    exam_max, total_max, ca_weight_percent, exam_weight_percent,
    created_at, updated_at`

// ScoringConfigRepository manages scoring configuration persistence.
//
// The single-default-per-level invariant is enforced twice: the validator
// checks it against the sibling set, and a partial unique index
// (education_level) WHERE is_default AND active closes the window between
// check and write. A unique violation surfaces as ErrDefaultExists.
type ScoringConfigRepository struct {
	db *sqlx.DB
}

// NewScoringConfigRepository creates a new repository instance.
func NewScoringConfigRepository(db *sqlx.DB) *ScoringConfigRepository {
	return &ScoringConfigRepository{db: db}
}

// List returns configurations matching the provided filter.
func (r *ScoringConfigRepository) List(ctx context.Context, filter models.ScoringConfigFilter) ([]models.ScoringConfiguration, error) {
	query := `SELECT ` + scoringConfigColumns + ` FROM scoring_configurations WHERE 1=1`
	args := []interface{}{}
	if filter.EducationLevel != "" {
		query += fmt.Sprintf(" AND education_level = $%d", len(args)+1)
		args = append(args, filter.EducationLevel)
	}
	if filter.ResultType != "" {
		query += fmt.Sprintf(" AND result_type = $%d", len(args)+1)
		args = append(args, filter.ResultType)
	}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", len(args)+1)
		args = append(args, *filter.Active)
	}
	query += " ORDER BY education_level, result_type, created_at DESC"

	var configs []models.ScoringConfiguration
	if err := r.db.SelectContext(ctx, &configs, query, args...); err != nil {
		return nil, fmt.Errorf("list scoring configurations: %w", err)
	}
	return configs, nil
}

// FindByID returns a configuration by ID.
func (r *ScoringConfigRepository) FindByID(ctx context.Context, id string) (*models.ScoringConfiguration, error) {
	query := `SELECT ` + scoringConfigColumns + ` FROM scoring_configurations WHERE id = $1`
	var config models.ScoringConfiguration
	if err := r.db.GetContext(ctx, &config, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("scoring configuration %s not found", id))
		}
		return nil, fmt.Errorf("find scoring configuration: %w", err)
	}
	return &config, nil
}

// ListByEducationLevel returns active configurations for one level.
func (r *ScoringConfigRepository) ListByEducationLevel(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	query := `SELECT ` + scoringConfigColumns + ` FROM scoring_configurations
        WHERE education_level = $1 AND active = TRUE ORDER BY result_type, created_at DESC`
	var configs []models.ScoringConfiguration
	if err := r.db.SelectContext(ctx, &configs, query, level); err != nil {
		return nil, fmt.Errorf("list scoring configurations by level: %w", err)
	}
	return configs, nil
}

// ListSiblings returns the active configurations sharing the level, used by
// the validator's single-default check. The caller excludes the record
// under edit by ID.
func (r *ScoringConfigRepository) ListSiblings(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	return r.ListByEducationLevel(ctx, level)
}

// FindDefault returns the active default configuration for a level, or a
// typed not-found error when none is flagged.
func (r *ScoringConfigRepository) FindDefault(ctx context.Context, level models.EducationLevel) (*models.ScoringConfiguration, error) {
	query := `SELECT ` + scoringConfigColumns + ` FROM scoring_configurations
        WHERE education_level = $1 AND is_default = TRUE AND active = TRUE`
	var config models.ScoringConfiguration
	if err := r.db.GetContext(ctx, &config, query, level); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNoDefaultConfig,
				fmt.Sprintf("no default scoring configuration for %s", level))
		}
		return nil, fmt.Errorf("find default scoring configuration: %w", err)
	}
	return &config, nil
}

// Create inserts a configuration.
func (r *ScoringConfigRepository) Create(ctx context.Context, config *models.ScoringConfiguration) error {
	if config.ID == "" {
		config.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = now
	}
	config.UpdatedAt = now

	const query = `INSERT INTO scoring_configurations (id, name, education_level, result_type, grading_system_id, active, is_default,
        first_test_max, second_test_max, third_test_max,
        first_term_max, second_term_max, third_term_max,
        continuous_assessment_max, take_home_test_max, appearance_max, practical_max, project_max, note_copying_max,
        exam_max, total_max, ca_weight_percent, exam_weight_percent,
        created_at, updated_at)
        VALUES (:id, :name, :education_level, :result_type, :grading_system_id, :active, :is_default,
        :first_test_max, :second_test_max, :third_test_max,
        :first_term_max, :second_term_max, :third_term_max,
        :continuous_assessment_max, :take_home_test_max, :appearance_max, :practical_max, :project_max, :note_copying_max,
        :exam_max, :total_max, :ca_weight_percent, :exam_weight_percent,
        :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, config); err != nil {
		if isUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrDefaultExists,
				fmt.Sprintf("an active default configuration already exists for %s", config.EducationLevel))
		}
		return fmt.Errorf("insert scoring configuration: %w", err)
	}
	return nil
}

// Update rewrites a configuration row in full.
func (r *ScoringConfigRepository) Update(ctx context.Context, config *models.ScoringConfiguration) error {
	config.UpdatedAt = time.Now().UTC()
	const query = `UPDATE scoring_configurations SET name = :name, education_level = :education_level,
        result_type = :result_type, grading_system_id = :grading_system_id, active = :active, is_default = :is_default,
        first_test_max = :first_test_max, second_test_max = :second_test_max, third_test_max = :third_test_max,
        first_term_max = :first_term_max, second_term_max = :second_term_max, third_term_max = :third_term_max,
        continuous_assessment_max = :continuous_assessment_max, take_home_test_max = :take_home_test_max,
        appearance_max = :appearance_max, practical_max = :practical_max, project_max = :project_max,
        note_copying_max = :note_copying_max,
        exam_max = :exam_max, total_max = :total_max,
        ca_weight_percent = :ca_weight_percent, exam_weight_percent = :exam_weight_percent,
        updated_at = :updated_at
        WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, config)
	if err != nil {
		if isUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrDefaultExists,
				fmt.Sprintf("an active default configuration already exists for %s", config.EducationLevel))
		}
		return fmt.Errorf("update scoring configuration: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("scoring configuration %s not found", config.ID))
	}
	return nil
}

// SoftDelete deactivates a configuration. Rows are never physically removed;
// existing results keep referencing them by id.
func (r *ScoringConfigRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE scoring_configurations SET active = FALSE, is_default = FALSE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate scoring configuration: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("scoring configuration %s not found", id))
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
