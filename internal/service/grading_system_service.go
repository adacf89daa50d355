package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/scoring"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

type gradingSystemRepository interface {
	List(ctx context.Context, filter models.GradingSystemFilter) ([]models.GradingSystem, error)
	FindByID(ctx context.Context, id string) (*models.GradingSystem, error)
	Create(ctx context.Context, system *models.GradingSystem) error
	Update(ctx context.Context, system *models.GradingSystem) error
	SetActive(ctx context.Context, id string, active bool) error
	InUse(ctx context.Context, id string) (bool, error)
}

// ValidationFailedError carries the full rule violation list so callers can
// report every violation at once rather than the first one found.
type ValidationFailedError struct {
	Violations []scoring.Violation
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d violation(s)", len(e.Violations))
}

// GradeRangeRequest is one score interval in a grading system payload.
type GradeRangeRequest struct {
	Grade      string   `json:"grade" validate:"required"`
	Remark     string   `json:"remark"`
	MinScore   float64  `json:"min_score"`
	MaxScore   float64  `json:"max_score"`
	GradePoint *float64 `json:"grade_point"`
	IsPassing  bool     `json:"is_passing"`
}

// SaveGradingSystemRequest handles create and update payloads.
type SaveGradingSystemRequest struct {
	Name     string                   `json:"name" validate:"required"`
	Type     models.GradingSystemType `json:"type" validate:"required,oneof=PERCENTAGE POINTS LETTER PASS_FAIL"`
	MinScore float64                  `json:"min_score"`
	MaxScore float64                  `json:"max_score" validate:"gtfield=MinScore"`
	PassMark float64                  `json:"pass_mark"`
	Ranges   []GradeRangeRequest      `json:"ranges" validate:"required,min=1,dive"`
}

// GradingSystemService manages the grading catalog. Every write passes the
// range coverage check so a lookup gap at computation time is a data error,
// not an expected path.
type GradingSystemService struct {
	repo      gradingSystemRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradingSystemService constructs the service.
func NewGradingSystemService(repo gradingSystemRepository, validate *validator.Validate, logger *zap.Logger) *GradingSystemService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingSystemService{repo: repo, validator: validate, logger: logger}
}

// List returns grading systems for the filter.
func (s *GradingSystemService) List(ctx context.Context, filter models.GradingSystemFilter) ([]models.GradingSystem, error) {
	systems, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grading systems")
	}
	return systems, nil
}

// Get returns a grading system by ID.
func (s *GradingSystemService) Get(ctx context.Context, id string) (*models.GradingSystem, error) {
	system, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return system, nil
}

// Create inserts a new grading system after structural validation.
func (s *GradingSystemService) Create(ctx context.Context, req SaveGradingSystemRequest) (*models.GradingSystem, error) {
	system, err := s.buildSystem(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, system); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grading system")
	}
	s.logger.Info("grading system created", zap.String("id", system.ID), zap.String("name", system.Name))
	return system, nil
}

// Update rewrites a grading system and its ranges.
func (s *GradingSystemService) Update(ctx context.Context, id string, req SaveGradingSystemRequest) (*models.GradingSystem, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	system, err := s.buildSystem(req)
	if err != nil {
		return nil, err
	}
	system.ID = existing.ID
	system.Active = existing.Active
	system.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, system); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grading system")
	}
	s.logger.Info("grading system updated", zap.String("id", id))
	return system, nil
}

// Deactivate soft-deletes a grading system. Systems referenced by computed
// results stay resolvable by ID so historical grades keep their meaning.
func (s *GradingSystemService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate grading system")
	}
	s.logger.Info("grading system deactivated", zap.String("id", id))
	return nil
}

func (s *GradingSystemService) buildSystem(req SaveGradingSystemRequest) (*models.GradingSystem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grading system payload")
	}
	system := &models.GradingSystem{
		Name:     req.Name,
		Type:     req.Type,
		MinScore: req.MinScore,
		MaxScore: req.MaxScore,
		PassMark: req.PassMark,
		Active:   true,
		Ranges:   make([]models.GradeRange, len(req.Ranges)),
	}
	for i, r := range req.Ranges {
		system.Ranges[i] = models.GradeRange{
			Grade:      r.Grade,
			Remark:     r.Remark,
			MinScore:   r.MinScore,
			MaxScore:   r.MaxScore,
			GradePoint: r.GradePoint,
			IsPassing:  r.IsPassing,
		}
	}
	if violations := scoring.ValidateGradingSystem(*system); len(violations) > 0 {
		return nil, &ValidationFailedError{Violations: violations}
	}
	return system, nil
}
