package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/scoring"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

type stubConfigRepo struct {
	configs       map[string]*models.ScoringConfiguration
	siblings      []models.ScoringConfiguration
	defaultConfig *models.ScoringConfiguration
	createErr     error
	created       *models.ScoringConfiguration
	updated       *models.ScoringConfiguration
	softDeleted   []string
}

func (s *stubConfigRepo) List(ctx context.Context, filter models.ScoringConfigFilter) ([]models.ScoringConfiguration, error) {
	return s.siblings, nil
}

func (s *stubConfigRepo) FindByID(ctx context.Context, id string) (*models.ScoringConfiguration, error) {
	if cfg, ok := s.configs[id]; ok {
		return cfg, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "scoring configuration not found")
}

func (s *stubConfigRepo) ListByEducationLevel(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	return s.siblings, nil
}

func (s *stubConfigRepo) ListSiblings(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	return s.siblings, nil
}

func (s *stubConfigRepo) FindDefault(ctx context.Context, level models.EducationLevel) (*models.ScoringConfiguration, error) {
	if s.defaultConfig == nil {
		return nil, appErrors.Clone(appErrors.ErrNoDefaultConfig, "no default")
	}
	return s.defaultConfig, nil
}

func (s *stubConfigRepo) Create(ctx context.Context, config *models.ScoringConfiguration) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = config
	return nil
}

func (s *stubConfigRepo) Update(ctx context.Context, config *models.ScoringConfiguration) error {
	s.updated = config
	return nil
}

func (s *stubConfigRepo) SoftDelete(ctx context.Context, id string) error {
	s.softDeleted = append(s.softDeleted, id)
	return nil
}

type stubGradingSystems struct {
	systems map[string]*models.GradingSystem
}

func (s *stubGradingSystems) FindByID(ctx context.Context, id string) (*models.GradingSystem, error) {
	if sys, ok := s.systems[id]; ok {
		return sys, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "grading system not found")
}

func fptr(v float64) *float64 { return &v }

func testGradingSystem() *models.GradingSystem {
	return &models.GradingSystem{
		ID: "gs-1", Name: "Standard", Type: models.GradingTypePercentage,
		MinScore: 0, MaxScore: 100, PassMark: 40, Active: true,
		Ranges: []models.GradeRange{
			{Grade: "A", MinScore: 70, MaxScore: 100, GradePoint: fptr(5), IsPassing: true},
			{Grade: "B", MinScore: 60, MaxScore: 69, GradePoint: fptr(4), IsPassing: true},
			{Grade: "C", MinScore: 50, MaxScore: 59, GradePoint: fptr(3), IsPassing: true},
			{Grade: "D", MinScore: 40, MaxScore: 49, GradePoint: fptr(2), IsPassing: true},
			{Grade: "F", MinScore: 0, MaxScore: 39, GradePoint: fptr(0), IsPassing: false},
		},
	}
}

func seniorTermlyRequest() SaveScoringConfigRequest {
	return SaveScoringConfigRequest{
		Name:              "SS Termly",
		EducationLevel:    models.LevelSeniorSecondary,
		ResultType:        models.ResultTypeTermly,
		GradingSystemID:   "gs-1",
		FirstTestMax:      fptr(10),
		SecondTestMax:     fptr(10),
		ThirdTestMax:      fptr(10),
		ExamMax:           fptr(70),
		TotalMax:          fptr(100),
		CAWeightPercent:   fptr(30),
		ExamWeightPercent: fptr(70),
	}
}

func newConfigService(repo *stubConfigRepo) *ScoringConfigService {
	systems := &stubGradingSystems{systems: map[string]*models.GradingSystem{"gs-1": testGradingSystem()}}
	cache := NewCacheService(nil, nil, 0, nil, false)
	return NewScoringConfigService(repo, systems, cache, 0, nil, nil)
}

func TestScoringConfigServiceCreate(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := newConfigService(repo)

	config, err := svc.Create(context.Background(), seniorTermlyRequest())
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.True(t, config.Active)
	assert.Equal(t, models.LevelSeniorSecondary, config.EducationLevel)
}

func TestScoringConfigServiceCreateReportsAllViolations(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := newConfigService(repo)

	req := seniorTermlyRequest()
	req.ExamMax = fptr(60)
	req.CAWeightPercent = fptr(40)

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	var vErr *ValidationFailedError
	require.True(t, errors.As(err, &vErr))
	assert.GreaterOrEqual(t, len(vErr.Violations), 2)
	assert.Nil(t, repo.created)
}

func TestScoringConfigServiceCreateDefaultConflict(t *testing.T) {
	repo := &stubConfigRepo{createErr: appErrors.Clone(appErrors.ErrDefaultExists, "default exists")}
	svc := newConfigService(repo)

	req := seniorTermlyRequest()
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDefaultExists.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigServiceCreateUnknownGradingSystem(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := newConfigService(repo)

	req := seniorTermlyRequest()
	req.GradingSystemID = "gs-missing"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigServiceValidateDryRun(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := newConfigService(repo)

	req := seniorTermlyRequest()
	req.CAWeightPercent = fptr(40)

	result, err := svc.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.OK)
	require.NotEmpty(t, result.Violations)
	assert.Equal(t, scoring.RuleWeightsSumTo100, result.Violations[0].Rule)
	assert.Nil(t, repo.created)
}

func TestScoringConfigServiceUpdateExcludesSelf(t *testing.T) {
	existing := &models.ScoringConfiguration{
		ID:              "cfg-1",
		Name:            "SS Termly",
		EducationLevel:  models.LevelSeniorSecondary,
		ResultType:      models.ResultTypeTermly,
		GradingSystemID: "gs-1",
		Active:          true,
		IsDefault:       true,
	}
	repo := &stubConfigRepo{
		configs:  map[string]*models.ScoringConfiguration{"cfg-1": existing},
		siblings: []models.ScoringConfiguration{*existing},
	}
	svc := newConfigService(repo)

	req := seniorTermlyRequest()
	req.IsDefault = true
	updated, err := svc.Update(context.Background(), "cfg-1", req)
	require.NoError(t, err)
	assert.Equal(t, "cfg-1", updated.ID)
	require.NotNil(t, repo.updated)
	assert.True(t, repo.updated.IsDefault)
}

func TestScoringConfigServiceGetDefaultAbsent(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := newConfigService(repo)

	_, err := svc.GetDefault(context.Background(), models.LevelPrimary)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoDefaultConfig.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigServiceGetDefaultUnknownLevel(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := newConfigService(repo)

	_, err := svc.GetDefault(context.Background(), models.EducationLevel("KINDERGARTEN"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoringConfigServiceDeleteSoft(t *testing.T) {
	existing := &models.ScoringConfiguration{
		ID:             "cfg-1",
		EducationLevel: models.LevelPrimary,
		ResultType:     models.ResultTypeTermly,
	}
	repo := &stubConfigRepo{configs: map[string]*models.ScoringConfiguration{"cfg-1": existing}}
	svc := newConfigService(repo)

	require.NoError(t, svc.Delete(context.Background(), "cfg-1"))
	assert.Equal(t, []string{"cfg-1"}, repo.softDeleted)
}
