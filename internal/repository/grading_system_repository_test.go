package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

func newGradingSystemRepoMock(t *testing.T) (*GradingSystemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewGradingSystemRepository(sqlx.NewDb(db, "postgres")), mock
}

func gradingSystemRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "type", "min_score", "max_score", "pass_mark", "active", "created_at", "updated_at",
	}).AddRow("gs-1", "WAEC Standard", "LETTER", 0.0, 100.0, 40.0, true, now, now)
}

func gradeRangeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "grading_system_id", "grade", "remark", "min_score", "max_score", "grade_point", "is_passing",
	}).
		AddRow("gr-1", "gs-1", "F9", "Fail", 0.0, 39.0, 0.0, false).
		AddRow("gr-2", "gs-1", "C4", "Credit", 40.0, 69.0, 2.0, true).
		AddRow("gr-3", "gs-1", "A1", "Excellent", 70.0, 100.0, 4.0, true)
}

func TestGradingSystemRepositoryFindByID(t *testing.T) {
	repo, mock := newGradingSystemRepoMock(t)

	mock.ExpectQuery("SELECT id, name, type, min_score").
		WithArgs("gs-1").
		WillReturnRows(gradingSystemRows())
	mock.ExpectQuery("SELECT id, grading_system_id, grade").
		WithArgs("gs-1").
		WillReturnRows(gradeRangeRows())

	system, err := repo.FindByID(context.Background(), "gs-1")
	require.NoError(t, err)
	assert.Equal(t, "WAEC Standard", system.Name)
	require.Len(t, system.Ranges, 3)
	assert.Equal(t, "F9", system.Ranges[0].Grade)
	assert.True(t, system.Ranges[2].IsPassing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradingSystemRepositoryFindByIDNotFound(t *testing.T) {
	repo, mock := newGradingSystemRepoMock(t)

	mock.ExpectQuery("SELECT id, name, type, min_score").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradingSystemRepositoryCreate(t *testing.T) {
	repo, mock := newGradingSystemRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO grading_systems").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM grade_ranges").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO grade_ranges").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO grade_ranges").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	system := &models.GradingSystem{
		Name:     "Primary Scale",
		Type:     "LETTER",
		MaxScore: 100,
		PassMark: 40,
		Active:   true,
		Ranges: []models.GradeRange{
			{Grade: "F", MinScore: 0, MaxScore: 39},
			{Grade: "P", MinScore: 40, MaxScore: 100, IsPassing: true},
		},
	}
	err := repo.Create(context.Background(), system)
	require.NoError(t, err)
	assert.NotEmpty(t, system.ID)
	assert.Equal(t, system.ID, system.Ranges[0].GradingSystemID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradingSystemRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newGradingSystemRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE grading_systems SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &models.GradingSystem{ID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradingSystemRepositoryUpdateReplacesRanges(t *testing.T) {
	repo, mock := newGradingSystemRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE grading_systems SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM grade_ranges").
		WithArgs("gs-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO grade_ranges").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	system := &models.GradingSystem{
		ID:       "gs-1",
		Name:     "Revised Scale",
		Type:     "LETTER",
		MaxScore: 100,
		PassMark: 50,
		Active:   true,
		Ranges: []models.GradeRange{
			{Grade: "P", MinScore: 0, MaxScore: 100, IsPassing: true},
		},
	}
	require.NoError(t, repo.Update(context.Background(), system))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradingSystemRepositoryInUse(t *testing.T) {
	repo, mock := newGradingSystemRepoMock(t)

	mock.ExpectQuery("SELECT 1 FROM subject_results").
		WithArgs("gs-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	inUse, err := repo.InUse(context.Background(), "gs-1")
	require.NoError(t, err)
	assert.True(t, inUse)

	mock.ExpectQuery("SELECT 1 FROM subject_results").
		WithArgs("gs-2").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	inUse, err = repo.InUse(context.Background(), "gs-2")
	require.NoError(t, err)
	assert.False(t, inUse)
}
