package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

// ExamSessionRepository reads exam sessions. The rows are owned by the exam
// scheduling module; this service never writes them.
type ExamSessionRepository struct {
	db *sqlx.DB
}

// NewExamSessionRepository creates a new repository instance.
func NewExamSessionRepository(db *sqlx.DB) *ExamSessionRepository {
	return &ExamSessionRepository{db: db}
}

// FindByID returns an exam session by ID.
func (r *ExamSessionRepository) FindByID(ctx context.Context, id string) (*models.ExamSession, error) {
	const query = `SELECT id, name, exam_type, term, academic_session_id, start_date, end_date, is_published, is_active
        FROM exam_sessions WHERE id = $1`
	var session models.ExamSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("exam session %s not found", id))
		}
		return nil, fmt.Errorf("find exam session: %w", err)
	}
	return &session, nil
}

// ListByAcademicSession returns the exam sessions of one academic year,
// ordered by term.
func (r *ExamSessionRepository) ListByAcademicSession(ctx context.Context, academicSessionID string) ([]models.ExamSession, error) {
	const query = `SELECT id, name, exam_type, term, academic_session_id, start_date, end_date, is_published, is_active
        FROM exam_sessions WHERE academic_session_id = $1
        ORDER BY CASE term WHEN 'FIRST' THEN 1 WHEN 'SECOND' THEN 2 ELSE 3 END`
	var sessions []models.ExamSession
	if err := r.db.SelectContext(ctx, &sessions, query, academicSessionID); err != nil {
		return nil, fmt.Errorf("list exam sessions: %w", err)
	}
	return sessions, nil
}
