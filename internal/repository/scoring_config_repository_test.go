package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

func newScoringConfigRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func scoringConfigRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "education_level", "result_type", "grading_system_id", "active", "is_default",
		"first_test_max", "second_test_max", "third_test_max",
		"first_term_max", "second_term_max", "third_term_max",
		"continuous_assessment_max", "take_home_test_max", "appearance_max", "practical_max", "project_max", "note_copying_max",
		"exam_max", "total_max", "ca_weight_percent", "exam_weight_percent",
		"created_at", "updated_at",
	})
}

func floatPtr(v float64) *float64 { return &v }

func TestScoringConfigRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	now := time.Now()
	rows := scoringConfigRows().AddRow(
		"cfg-1", "SS Termly", "SENIOR_SECONDARY", "TERMLY", "gs-1", true, true,
		10.0, 10.0, 10.0,
		nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		70.0, 100.0, 30.0, 70.0,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM scoring_configurations WHERE id").
		WithArgs("cfg-1").
		WillReturnRows(rows)

	config, err := repo.FindByID(context.Background(), "cfg-1")
	require.NoError(t, err)
	assert.Equal(t, models.LevelSeniorSecondary, config.EducationLevel)
	assert.Equal(t, models.ResultTypeTermly, config.ResultType)
	require.NotNil(t, config.ExamMax)
	assert.Equal(t, 70.0, *config.ExamMax)
	assert.Nil(t, config.FirstTermMax)
}

func TestScoringConfigRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM scoring_configurations WHERE id").
		WithArgs("cfg-missing").
		WillReturnRows(scoringConfigRows())

	_, err := repo.FindByID(context.Background(), "cfg-missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigRepositoryFindDefault(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	now := time.Now()
	rows := scoringConfigRows().AddRow(
		"cfg-nur", "Nursery Default", "NURSERY", "TERMLY", "gs-1", true, true,
		nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, 50.0, nil, nil,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM scoring_configurations").
		WithArgs(models.LevelNursery).
		WillReturnRows(rows)

	config, err := repo.FindDefault(context.Background(), models.LevelNursery)
	require.NoError(t, err)
	assert.True(t, config.IsDefault)
	require.NotNil(t, config.TotalMax)
	assert.Equal(t, 50.0, *config.TotalMax)
}

func TestScoringConfigRepositoryFindDefaultAbsent(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM scoring_configurations").
		WithArgs(models.LevelPrimary).
		WillReturnRows(scoringConfigRows())

	_, err := repo.FindDefault(context.Background(), models.LevelPrimary)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoDefaultConfig.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	mock.ExpectExec("INSERT INTO scoring_configurations").
		WillReturnResult(sqlmock.NewResult(1, 1))

	config := &models.ScoringConfiguration{
		Name:            "SS Termly",
		EducationLevel:  models.LevelSeniorSecondary,
		ResultType:      models.ResultTypeTermly,
		GradingSystemID: "gs-1",
		Active:          true,
		FirstTestMax:    floatPtr(10),
		SecondTestMax:   floatPtr(10),
		ThirdTestMax:    floatPtr(10),
		ExamMax:         floatPtr(70),
		TotalMax:        floatPtr(100),
	}
	require.NoError(t, repo.Create(context.Background(), config))
	assert.NotEmpty(t, config.ID)
}

func TestScoringConfigRepositoryCreateDefaultRace(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	mock.ExpectExec("INSERT INTO scoring_configurations").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_scoring_configurations_default_per_level"})

	config := &models.ScoringConfiguration{
		Name:           "Another Default",
		EducationLevel: models.LevelPrimary,
		ResultType:     models.ResultTypeTermly,
		Active:         true,
		IsDefault:      true,
	}
	err := repo.Create(context.Background(), config)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDefaultExists.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	mock.ExpectExec("UPDATE scoring_configurations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	config := &models.ScoringConfiguration{
		ID:             "cfg-missing",
		EducationLevel: models.LevelPrimary,
		ResultType:     models.ResultTypeTermly,
	}
	err := repo.Update(context.Background(), config)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	mock.ExpectExec("UPDATE scoring_configurations SET active = FALSE").
		WithArgs("cfg-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "cfg-1"))
}

func TestScoringConfigRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newScoringConfigRepoMock(t)
	defer cleanup()

	repo := NewScoringConfigRepository(db)
	active := true
	now := time.Now()
	rows := scoringConfigRows().AddRow(
		"cfg-1", "Primary Termly", "PRIMARY", "TERMLY", "gs-1", true, false,
		nil, nil, nil,
		nil, nil, nil,
		15.0, 5.0, 5.0, 5.0, 5.0, 5.0,
		60.0, 100.0, 40.0, 60.0,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM scoring_configurations").
		WithArgs(models.LevelPrimary, models.ResultTypeTermly, active).
		WillReturnRows(rows)

	configs, err := repo.List(context.Background(), models.ScoringConfigFilter{
		EducationLevel: models.LevelPrimary,
		ResultType:     models.ResultTypeTermly,
		Active:         &active,
	})
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Primary Termly", configs[0].Name)
}
