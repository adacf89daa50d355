package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/scoring"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

type scoringConfigRepository interface {
	List(ctx context.Context, filter models.ScoringConfigFilter) ([]models.ScoringConfiguration, error)
	FindByID(ctx context.Context, id string) (*models.ScoringConfiguration, error)
	ListByEducationLevel(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error)
	ListSiblings(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error)
	FindDefault(ctx context.Context, level models.EducationLevel) (*models.ScoringConfiguration, error)
	Create(ctx context.Context, config *models.ScoringConfiguration) error
	Update(ctx context.Context, config *models.ScoringConfiguration) error
	SoftDelete(ctx context.Context, id string) error
}

type gradingSystemReader interface {
	FindByID(ctx context.Context, id string) (*models.GradingSystem, error)
}

const defaultConfigKeyPrefix = "scoring:default-config:"

// SaveScoringConfigRequest handles create and update payloads. Component
// maxima stay nil for fields the chosen level does not use; the rule checker
// rejects values set outside the applicable set.
type SaveScoringConfigRequest struct {
	Name            string                `json:"name" validate:"required"`
	EducationLevel  models.EducationLevel `json:"education_level" validate:"required,oneof=NURSERY PRIMARY JUNIOR_SECONDARY SENIOR_SECONDARY"`
	ResultType      models.ResultType     `json:"result_type" validate:"required,oneof=TERMLY SESSION"`
	GradingSystemID string                `json:"grading_system_id" validate:"required"`
	IsDefault       bool                  `json:"is_default"`

	FirstTestMax  *float64 `json:"first_test_max"`
	SecondTestMax *float64 `json:"second_test_max"`
	ThirdTestMax  *float64 `json:"third_test_max"`

	FirstTermMax  *float64 `json:"first_term_max"`
	SecondTermMax *float64 `json:"second_term_max"`
	ThirdTermMax  *float64 `json:"third_term_max"`

	ContinuousAssessmentMax *float64 `json:"continuous_assessment_max"`
	TakeHomeTestMax         *float64 `json:"take_home_test_max"`
	AppearanceMax           *float64 `json:"appearance_max"`
	PracticalMax            *float64 `json:"practical_max"`
	ProjectMax              *float64 `json:"project_max"`
	NoteCopyingMax          *float64 `json:"note_copying_max"`

	ExamMax           *float64 `json:"exam_max"`
	TotalMax          *float64 `json:"total_max"`
	CAWeightPercent   *float64 `json:"ca_weight_percent"`
	ExamWeightPercent *float64 `json:"exam_weight_percent"`
}

// ScoringConfigService manages scoring configuration lifecycle. Every write
// passes the full rule checker against the current sibling set; the partial
// unique index closes the remaining race on the default flag.
type ScoringConfigService struct {
	repo           scoringConfigRepository
	gradingSystems gradingSystemReader
	cache          *CacheService
	cacheTTL       time.Duration
	validator      *validator.Validate
	logger         *zap.Logger
}

// NewScoringConfigService constructs the service.
func NewScoringConfigService(repo scoringConfigRepository, gradingSystems gradingSystemReader, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ScoringConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoringConfigService{
		repo:           repo,
		gradingSystems: gradingSystems,
		cache:          cache,
		cacheTTL:       cacheTTL,
		validator:      validate,
		logger:         logger,
	}
}

// List returns configurations for the filter.
func (s *ScoringConfigService) List(ctx context.Context, filter models.ScoringConfigFilter) ([]models.ScoringConfiguration, error) {
	configs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scoring configurations")
	}
	return configs, nil
}

// Get returns a configuration by ID.
func (s *ScoringConfigService) Get(ctx context.Context, id string) (*models.ScoringConfiguration, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByEducationLevel returns the active configurations for one level.
func (s *ScoringConfigService) GetByEducationLevel(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown education level %s", level))
	}
	configs, err := s.repo.ListByEducationLevel(ctx, level)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scoring configurations")
	}
	return configs, nil
}

// GetDefault returns the default configuration for a level, cached. Absence
// is a typed not-found so callers can distinguish it from a lookup failure.
func (s *ScoringConfigService) GetDefault(ctx context.Context, level models.EducationLevel) (*models.ScoringConfiguration, error) {
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown education level %s", level))
	}
	key := defaultConfigKeyPrefix + string(level)
	var cached models.ScoringConfiguration
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}
	config, err := s.repo.FindDefault(ctx, level)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, config, s.cacheTTL); err != nil {
		s.logger.Warn("default config cache set failed", zap.String("level", string(level)), zap.Error(err))
	}
	return config, nil
}

// Validate runs the full rule checker without persisting anything. The
// result reports every violation, not just the first.
func (s *ScoringConfigService) Validate(ctx context.Context, req SaveScoringConfigRequest) (scoring.ValidationResult, error) {
	config, err := s.buildConfig(req)
	if err != nil {
		return scoring.ValidationResult{}, err
	}
	siblings, err := s.repo.ListSiblings(ctx, config.EducationLevel)
	if err != nil {
		return scoring.ValidationResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sibling configurations")
	}
	return scoring.ValidateConfiguration(*config, siblings), nil
}

// Create inserts a configuration after rule validation.
func (s *ScoringConfigService) Create(ctx context.Context, req SaveScoringConfigRequest) (*models.ScoringConfiguration, error) {
	config, err := s.buildConfig(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkRules(ctx, config); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, config); err != nil {
		return nil, err
	}
	s.invalidateDefault(ctx, config.EducationLevel)
	s.logger.Info("scoring configuration created",
		zap.String("id", config.ID),
		zap.String("education_level", string(config.EducationLevel)),
		zap.String("result_type", string(config.ResultType)))
	return config, nil
}

// Update rewrites a configuration after rule validation. The record under
// edit is excluded from its own sibling set by ID.
func (s *ScoringConfigService) Update(ctx context.Context, id string, req SaveScoringConfigRequest) (*models.ScoringConfiguration, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	config, err := s.buildConfig(req)
	if err != nil {
		return nil, err
	}
	config.ID = existing.ID
	config.Active = existing.Active
	config.CreatedAt = existing.CreatedAt
	if err := s.checkRules(ctx, config); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, config); err != nil {
		return nil, err
	}
	s.invalidateDefault(ctx, config.EducationLevel)
	if existing.EducationLevel != config.EducationLevel {
		s.invalidateDefault(ctx, existing.EducationLevel)
	}
	s.logger.Info("scoring configuration updated", zap.String("id", id))
	return config, nil
}

// Delete deactivates a configuration. Rows stay resolvable by ID so
// existing results keep their provenance.
func (s *ScoringConfigService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateDefault(ctx, existing.EducationLevel)
	s.logger.Info("scoring configuration deactivated", zap.String("id", id))
	return nil
}

func (s *ScoringConfigService) buildConfig(req SaveScoringConfigRequest) (*models.ScoringConfiguration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scoring configuration payload")
	}
	return &models.ScoringConfiguration{
		Name:            req.Name,
		EducationLevel:  req.EducationLevel,
		ResultType:      req.ResultType,
		GradingSystemID: req.GradingSystemID,
		Active:          true,
		IsDefault:       req.IsDefault,

		FirstTestMax:  req.FirstTestMax,
		SecondTestMax: req.SecondTestMax,
		ThirdTestMax:  req.ThirdTestMax,

		FirstTermMax:  req.FirstTermMax,
		SecondTermMax: req.SecondTermMax,
		ThirdTermMax:  req.ThirdTermMax,

		ContinuousAssessmentMax: req.ContinuousAssessmentMax,
		TakeHomeTestMax:         req.TakeHomeTestMax,
		AppearanceMax:           req.AppearanceMax,
		PracticalMax:            req.PracticalMax,
		ProjectMax:              req.ProjectMax,
		NoteCopyingMax:          req.NoteCopyingMax,

		ExamMax:           req.ExamMax,
		TotalMax:          req.TotalMax,
		CAWeightPercent:   req.CAWeightPercent,
		ExamWeightPercent: req.ExamWeightPercent,
	}, nil
}

func (s *ScoringConfigService) checkRules(ctx context.Context, config *models.ScoringConfiguration) error {
	if _, err := s.gradingSystems.FindByID(ctx, config.GradingSystemID); err != nil {
		return err
	}
	siblings, err := s.repo.ListSiblings(ctx, config.EducationLevel)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sibling configurations")
	}
	if result := scoring.ValidateConfiguration(*config, siblings); !result.OK {
		return &ValidationFailedError{Violations: result.Violations}
	}
	return nil
}

func (s *ScoringConfigService) invalidateDefault(ctx context.Context, level models.EducationLevel) {
	if err := s.cache.Invalidate(ctx, defaultConfigKeyPrefix+string(level)); err != nil {
		s.logger.Warn("default config cache invalidation failed", zap.String("level", string(level)), zap.Error(err))
	}
}
