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

const subjectResultColumns = `id, student_id, subject_id, class_id, exam_session_id, configuration_id,
    first_test, second_test, third_test,
    continuous_assessment, take_home_test, appearance, practical, project, note_copying,
    exam, mark_obtained,
    total_score, percentage, grade, grade_point, is_passed,
    position, class_average, class_highest, class_lowest,
    status, created_at, updated_at`

// SubjectResultRepository manages termly result persistence. Derived columns
// are always written as a whole tuple alongside the raw scores that produced
// them, never merged field by field.
type SubjectResultRepository struct {
	db *sqlx.DB
}

// NewSubjectResultRepository creates a new repository instance.
func NewSubjectResultRepository(db *sqlx.DB) *SubjectResultRepository {
	return &SubjectResultRepository{db: db}
}

// FindByID returns a result by ID.
func (r *SubjectResultRepository) FindByID(ctx context.Context, id string) (*models.SubjectResult, error) {
	query := `SELECT ` + subjectResultColumns + ` FROM subject_results WHERE id = $1`
	var result models.SubjectResult
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("result %s not found", id))
		}
		return nil, fmt.Errorf("find result: %w", err)
	}
	return &result, nil
}

// FindByScope returns the result for one student/subject/exam session.
func (r *SubjectResultRepository) FindByScope(ctx context.Context, studentID, subjectID, examSessionID string) (*models.SubjectResult, error) {
	query := `SELECT ` + subjectResultColumns + ` FROM subject_results
        WHERE student_id = $1 AND subject_id = $2 AND exam_session_id = $3`
	var result models.SubjectResult
	if err := r.db.GetContext(ctx, &result, query, studentID, subjectID, examSessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found for scope")
		}
		return nil, fmt.Errorf("find result by scope: %w", err)
	}
	return &result, nil
}

// ListByClassScope returns all results for one class/subject/exam session.
func (r *SubjectResultRepository) ListByClassScope(ctx context.Context, classID, subjectID, examSessionID string) ([]models.SubjectResult, error) {
	query := `SELECT ` + subjectResultColumns + ` FROM subject_results
        WHERE class_id = $1 AND subject_id = $2 AND exam_session_id = $3
        ORDER BY total_score DESC NULLS LAST`
	var results []models.SubjectResult
	if err := r.db.SelectContext(ctx, &results, query, classID, subjectID, examSessionID); err != nil {
		return nil, fmt.Errorf("list results by class scope: %w", err)
	}
	return results, nil
}

// Upsert writes the full result row keyed on the natural scope. A re-entry
// for the same student/subject/exam session replaces raw scores and the
// whole derived tuple at once.
func (r *SubjectResultRepository) Upsert(ctx context.Context, result *models.SubjectResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now

	const query = `INSERT INTO subject_results (id, student_id, subject_id, class_id, exam_session_id, configuration_id,
        first_test, second_test, third_test,
        continuous_assessment, take_home_test, appearance, practical, project, note_copying,
        exam, mark_obtained,
        total_score, percentage, grade, grade_point, is_passed,
        position, class_average, class_highest, class_lowest,
        status, created_at, updated_at)
        VALUES (:id, :student_id, :subject_id, :class_id, :exam_session_id, :configuration_id,
        :first_test, :second_test, :third_test,
        :continuous_assessment, :take_home_test, :appearance, :practical, :project, :note_copying,
        :exam, :mark_obtained,
        :total_score, :percentage, :grade, :grade_point, :is_passed,
        :position, :class_average, :class_highest, :class_lowest,
        :status, :created_at, :updated_at)
        ON CONFLICT (student_id, subject_id, exam_session_id) DO UPDATE SET
        configuration_id = EXCLUDED.configuration_id,
        first_test = EXCLUDED.first_test, second_test = EXCLUDED.second_test, third_test = EXCLUDED.third_test,
        continuous_assessment = EXCLUDED.continuous_assessment, take_home_test = EXCLUDED.take_home_test,
        appearance = EXCLUDED.appearance, practical = EXCLUDED.practical, project = EXCLUDED.project,
        note_copying = EXCLUDED.note_copying,
        exam = EXCLUDED.exam, mark_obtained = EXCLUDED.mark_obtained,
        total_score = EXCLUDED.total_score, percentage = EXCLUDED.percentage, grade = EXCLUDED.grade,
        grade_point = EXCLUDED.grade_point, is_passed = EXCLUDED.is_passed,
        position = NULL, class_average = NULL, class_highest = NULL, class_lowest = NULL,
        status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

// UpdateStatus moves a result to a new workflow status.
func (r *SubjectResultRepository) UpdateStatus(ctx context.Context, id string, status models.ResultStatus) error {
	const query = `UPDATE subject_results SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update result status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("result %s not found", id))
	}
	return nil
}

// UpdateRanking writes positions and class statistics for a whole class
// scope in one transaction so readers never see a half-ranked class.
func (r *SubjectResultRepository) UpdateRanking(ctx context.Context, results []models.SubjectResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `UPDATE subject_results SET position = :position, class_average = :class_average,
        class_highest = :class_highest, class_lowest = :class_lowest, updated_at = :updated_at WHERE id = :id`
	now := time.Now().UTC()
	for i := range results {
		results[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, results[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("update result ranking: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit result ranking: %w", err)
	}
	return nil
}
