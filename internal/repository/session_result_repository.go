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

const sessionResultColumns = `id, student_id, subject_id, class_id, academic_session_id, configuration_id,
    term1_total, term2_total, term3_total, average_for_year, obtainable, obtained,
    overall_grade, grade_point, is_passed,
    class_position, class_average, class_highest, class_lowest,
    created_at, updated_at`

// SessionResultRepository manages Senior Secondary annual rollup persistence.
type SessionResultRepository struct {
	db *sqlx.DB
}

// NewSessionResultRepository creates a new repository instance.
func NewSessionResultRepository(db *sqlx.DB) *SessionResultRepository {
	return &SessionResultRepository{db: db}
}

// FindByScope returns the session result for one student/subject/year.
func (r *SessionResultRepository) FindByScope(ctx context.Context, studentID, subjectID, academicSessionID string) (*models.SessionResult, error) {
	query := `SELECT ` + sessionResultColumns + ` FROM session_results
        WHERE student_id = $1 AND subject_id = $2 AND academic_session_id = $3`
	var result models.SessionResult
	if err := r.db.GetContext(ctx, &result, query, studentID, subjectID, academicSessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session result not found for scope")
		}
		return nil, fmt.Errorf("find session result: %w", err)
	}
	return &result, nil
}

// ListByClassScope returns all session results for one class/subject/year.
func (r *SessionResultRepository) ListByClassScope(ctx context.Context, classID, subjectID, academicSessionID string) ([]models.SessionResult, error) {
	query := `SELECT ` + sessionResultColumns + ` FROM session_results
        WHERE class_id = $1 AND subject_id = $2 AND academic_session_id = $3
        ORDER BY average_for_year DESC`
	var results []models.SessionResult
	if err := r.db.SelectContext(ctx, &results, query, classID, subjectID, academicSessionID); err != nil {
		return nil, fmt.Errorf("list session results: %w", err)
	}
	return results, nil
}

// Upsert writes the full session result keyed on the natural scope.
// Re-aggregation replaces the row; ranking columns reset until the class is
// ranked again.
func (r *SessionResultRepository) Upsert(ctx context.Context, result *models.SessionResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now

	const query = `INSERT INTO session_results (id, student_id, subject_id, class_id, academic_session_id, configuration_id,
        term1_total, term2_total, term3_total, average_for_year, obtainable, obtained,
        overall_grade, grade_point, is_passed,
        class_position, class_average, class_highest, class_lowest,
        created_at, updated_at)
        VALUES (:id, :student_id, :subject_id, :class_id, :academic_session_id, :configuration_id,
        :term1_total, :term2_total, :term3_total, :average_for_year, :obtainable, :obtained,
        :overall_grade, :grade_point, :is_passed,
        :class_position, :class_average, :class_highest, :class_lowest,
        :created_at, :updated_at)
        ON CONFLICT (student_id, subject_id, academic_session_id) DO UPDATE SET
        configuration_id = EXCLUDED.configuration_id,
        term1_total = EXCLUDED.term1_total, term2_total = EXCLUDED.term2_total, term3_total = EXCLUDED.term3_total,
        average_for_year = EXCLUDED.average_for_year, obtainable = EXCLUDED.obtainable, obtained = EXCLUDED.obtained,
        overall_grade = EXCLUDED.overall_grade, grade_point = EXCLUDED.grade_point, is_passed = EXCLUDED.is_passed,
        class_position = NULL, class_average = NULL, class_highest = NULL, class_lowest = NULL,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("upsert session result: %w", err)
	}
	return nil
}

// UpdateRanking writes positions and class statistics in one transaction.
func (r *SessionResultRepository) UpdateRanking(ctx context.Context, results []models.SessionResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `UPDATE session_results SET class_position = :class_position, class_average = :class_average,
        class_highest = :class_highest, class_lowest = :class_lowest, updated_at = :updated_at WHERE id = :id`
	now := time.Now().UTC()
	for i := range results {
		results[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, results[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("update session result ranking: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session result ranking: %w", err)
	}
	return nil
}

// DeleteByScope invalidates the session result for one student/subject/year.
// Called when a contributing termly result is corrected so a stale rollup
// never survives a recomputation.
func (r *SessionResultRepository) DeleteByScope(ctx context.Context, studentID, subjectID, academicSessionID string) error {
	const query = `DELETE FROM session_results WHERE student_id = $1 AND subject_id = $2 AND academic_session_id = $3`
	if _, err := r.db.ExecContext(ctx, query, studentID, subjectID, academicSessionID); err != nil {
		return fmt.Errorf("delete session result: %w", err)
	}
	return nil
}
