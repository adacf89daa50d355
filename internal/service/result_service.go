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

type subjectResultRepository interface {
	FindByID(ctx context.Context, id string) (*models.SubjectResult, error)
	FindByScope(ctx context.Context, studentID, subjectID, examSessionID string) (*models.SubjectResult, error)
	ListByClassScope(ctx context.Context, classID, subjectID, examSessionID string) ([]models.SubjectResult, error)
	Upsert(ctx context.Context, result *models.SubjectResult) error
	UpdateStatus(ctx context.Context, id string, status models.ResultStatus) error
	UpdateRanking(ctx context.Context, results []models.SubjectResult) error
}

type sessionResultRepository interface {
	FindByScope(ctx context.Context, studentID, subjectID, academicSessionID string) (*models.SessionResult, error)
	ListByClassScope(ctx context.Context, classID, subjectID, academicSessionID string) ([]models.SessionResult, error)
	Upsert(ctx context.Context, result *models.SessionResult) error
	UpdateRanking(ctx context.Context, results []models.SessionResult) error
	DeleteByScope(ctx context.Context, studentID, subjectID, academicSessionID string) error
}

type examSessionReader interface {
	FindByID(ctx context.Context, id string) (*models.ExamSession, error)
	ListByAcademicSession(ctx context.Context, academicSessionID string) ([]models.ExamSession, error)
}

type configReader interface {
	FindByID(ctx context.Context, id string) (*models.ScoringConfiguration, error)
	FindDefault(ctx context.Context, level models.EducationLevel) (*models.ScoringConfiguration, error)
	ListByEducationLevel(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error)
}

var statusOrder = map[models.ResultStatus]int{
	models.StatusDraft:     0,
	models.StatusSubmitted: 1,
	models.StatusApproved:  2,
	models.StatusPublished: 3,
}

// EnterScoresRequest carries raw component scores for one student/subject in
// one exam session. ConfigurationID may be empty, in which case the active
// default for the education level applies.
type EnterScoresRequest struct {
	StudentID       string                `json:"student_id" validate:"required"`
	SubjectID       string                `json:"subject_id" validate:"required"`
	ClassID         string                `json:"class_id" validate:"required"`
	ExamSessionID   string                `json:"exam_session_id" validate:"required"`
	ConfigurationID string                `json:"configuration_id"`
	EducationLevel  models.EducationLevel `json:"education_level" validate:"required_without=ConfigurationID,omitempty,oneof=NURSERY PRIMARY JUNIOR_SECONDARY SENIOR_SECONDARY"`

	Scores models.RawScores `json:"scores"`
}

// AggregateSessionRequest identifies the termly results to roll up into one
// Senior Secondary session result.
type AggregateSessionRequest struct {
	StudentID         string `json:"student_id" validate:"required"`
	SubjectID         string `json:"subject_id" validate:"required"`
	ClassID           string `json:"class_id" validate:"required"`
	AcademicSessionID string `json:"academic_session_id" validate:"required"`
	ConfigurationID   string `json:"configuration_id"`
}

// ResultService orchestrates score entry, computation, workflow status,
// ranking and session aggregation. All arithmetic lives in the scoring
// package; this service loads inputs, persists outputs and keeps derived
// data consistent across corrections.
type ResultService struct {
	results        subjectResultRepository
	sessionResults sessionResultRepository
	examSessions   examSessionReader
	configs        configReader
	gradingSystems gradingSystemReader
	metrics        *MetricsService
	validator      *validator.Validate
	logger         *zap.Logger
}

// NewResultService constructs the service.
func NewResultService(
	results subjectResultRepository,
	sessionResults sessionResultRepository,
	examSessions examSessionReader,
	configs configReader,
	gradingSystems gradingSystemReader,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		results:        results,
		sessionResults: sessionResults,
		examSessions:   examSessions,
		configs:        configs,
		gradingSystems: gradingSystems,
		metrics:        metrics,
		validator:      validate,
		logger:         logger,
	}
}

// Get returns a termly result by ID.
func (s *ResultService) Get(ctx context.Context, id string) (*models.SubjectResult, error) {
	return s.results.FindByID(ctx, id)
}

// EnterScores records raw scores and computes the full derived tuple in the
// same write. Re-entering scores for the same scope replaces the previous
// row and invalidates any session rollup built on the old total.
func (s *ResultService) EnterScores(ctx context.Context, req EnterScoresRequest) (*models.SubjectResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid score entry payload")
	}
	examSession, err := s.examSessions.FindByID(ctx, req.ExamSessionID)
	if err != nil {
		return nil, err
	}
	existing, err := s.results.FindByScope(ctx, req.StudentID, req.SubjectID, req.ExamSessionID)
	if err != nil && appErrors.FromError(err).Code != appErrors.ErrNotFound.Code {
		return nil, err
	}
	if existing != nil && existing.Status.Immutable() {
		return nil, appErrors.Clone(appErrors.ErrResultImmutable,
			fmt.Sprintf("result %s is %s and can no longer be modified", existing.ID, existing.Status))
	}

	config, err := s.resolveConfig(ctx, req.ConfigurationID, req.EducationLevel)
	if err != nil {
		return nil, err
	}
	system, err := s.gradingSystems.FindByID(ctx, config.GradingSystemID)
	if err != nil {
		return nil, err
	}

	computed, err := scoring.ComputeResult(*config, req.Scores, *system)
	if err != nil {
		s.metrics.RecordComputationError(appErrors.FromError(err).Code)
		return nil, err
	}
	s.metrics.RecordComputation(config.EducationLevel)

	result := &models.SubjectResult{
		StudentID:       req.StudentID,
		SubjectID:       req.SubjectID,
		ClassID:         req.ClassID,
		ExamSessionID:   req.ExamSessionID,
		ConfigurationID: config.ID,
		RawScores:       req.Scores,
		Status:          models.StatusDraft,
	}
	if existing != nil {
		result.ID = existing.ID
		result.CreatedAt = existing.CreatedAt
		result.Status = existing.Status
	}
	applyComputed(result, computed)

	if err := s.results.Upsert(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist result")
	}
	if existing != nil {
		if err := s.sessionResults.DeleteByScope(ctx, req.StudentID, req.SubjectID, examSession.AcademicSessionID); err != nil {
			s.logger.Warn("stale session result invalidation failed",
				zap.String("student_id", req.StudentID),
				zap.String("subject_id", req.SubjectID),
				zap.Error(err))
		}
	}
	s.logger.Info("scores entered",
		zap.String("result_id", result.ID),
		zap.String("student_id", req.StudentID),
		zap.String("subject_id", req.SubjectID),
		zap.String("exam_session_id", req.ExamSessionID))
	return result, nil
}

// Recompute re-derives the computed tuple from the stored raw scores. The
// computation is idempotent; unchanged inputs produce an identical tuple.
func (s *ResultService) Recompute(ctx context.Context, id string) (*models.SubjectResult, error) {
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.Status.Immutable() {
		return nil, appErrors.Clone(appErrors.ErrResultImmutable,
			fmt.Sprintf("result %s is %s and can no longer be recomputed", id, result.Status))
	}
	config, err := s.configs.FindByID(ctx, result.ConfigurationID)
	if err != nil {
		return nil, err
	}
	system, err := s.gradingSystems.FindByID(ctx, config.GradingSystemID)
	if err != nil {
		return nil, err
	}
	computed, err := scoring.ComputeResult(*config, result.RawScores, *system)
	if err != nil {
		s.metrics.RecordComputationError(appErrors.FromError(err).Code)
		return nil, err
	}
	s.metrics.RecordComputation(config.EducationLevel)
	applyComputed(result, computed)
	if err := s.results.Upsert(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist result")
	}
	return result, nil
}

// UpdateStatus moves a result forward through DRAFT, SUBMITTED, APPROVED,
// PUBLISHED. Backward transitions are rejected; approved results are never
// deleted or demoted.
func (s *ResultService) UpdateStatus(ctx context.Context, id string, status models.ResultStatus) (*models.SubjectResult, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown result status %s", status))
	}
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if statusOrder[status] <= statusOrder[result.Status] {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("cannot move result from %s to %s", result.Status, status))
	}
	if err := s.results.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	result.Status = status
	s.logger.Info("result status updated", zap.String("result_id", id), zap.String("status", string(status)))
	return result, nil
}

// RankClass assigns competition positions and class statistics across one
// class/subject/exam session. Results without a computed total are left
// unranked and excluded from the statistics.
func (s *ResultService) RankClass(ctx context.Context, classID, subjectID, examSessionID string) ([]models.SubjectResult, error) {
	results, err := s.results.ListByClassScope(ctx, classID, subjectID, examSessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class results")
	}
	entries := make([]scoring.RankEntry, 0, len(results))
	for _, r := range results {
		if r.TotalScore != nil {
			entries = append(entries, scoring.RankEntry{ID: r.ID, Score: *r.TotalScore})
		}
	}
	placements, stats := scoring.Rank(entries)
	byID := make(map[string]scoring.Placement, len(placements))
	for _, p := range placements {
		byID[p.ID] = p
	}

	ranked := make([]models.SubjectResult, 0, len(placements))
	for i := range results {
		p, ok := byID[results[i].ID]
		if !ok {
			continue
		}
		position := p.Position
		results[i].Position = &position
		average := stats.Average
		highest := stats.Highest
		lowest := stats.Lowest
		results[i].ClassAverage = &average
		results[i].ClassHighest = &highest
		results[i].ClassLowest = &lowest
		ranked = append(ranked, results[i])
	}
	if err := s.results.UpdateRanking(ctx, ranked); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist ranking")
	}
	s.logger.Info("class ranked",
		zap.String("class_id", classID),
		zap.String("subject_id", subjectID),
		zap.Int("ranked", len(ranked)),
		zap.Int("skipped", len(results)-len(ranked)))
	return results, nil
}

// AggregateSession rolls the three termly results of one academic session
// into a Senior Secondary session result.
func (s *ResultService) AggregateSession(ctx context.Context, req AggregateSessionRequest) (*models.SessionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session aggregation payload")
	}
	config, err := s.resolveSessionConfig(ctx, req.ConfigurationID)
	if err != nil {
		return nil, err
	}
	system, err := s.gradingSystems.FindByID(ctx, config.GradingSystemID)
	if err != nil {
		return nil, err
	}
	terms, err := s.loadTermResults(ctx, req)
	if err != nil {
		return nil, err
	}

	sessionResult, err := scoring.AggregateSession(terms[0], terms[1], terms[2], *config, *system)
	if err != nil {
		return nil, err
	}
	sessionResult.AcademicSessionID = req.AcademicSessionID
	sessionResult.ClassID = req.ClassID
	s.metrics.RecordAggregation()

	if err := s.sessionResults.Upsert(ctx, &sessionResult); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session result")
	}
	s.logger.Info("session result aggregated",
		zap.String("student_id", req.StudentID),
		zap.String("subject_id", req.SubjectID),
		zap.String("academic_session_id", req.AcademicSessionID))
	return &sessionResult, nil
}

// RankSessionResults assigns positions and class statistics across one
// class/subject/academic session.
func (s *ResultService) RankSessionResults(ctx context.Context, classID, subjectID, academicSessionID string) ([]models.SessionResult, error) {
	results, err := s.sessionResults.ListByClassScope(ctx, classID, subjectID, academicSessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session results")
	}
	entries := make([]scoring.RankEntry, len(results))
	for i, r := range results {
		entries[i] = scoring.RankEntry{ID: r.ID, Score: r.AverageForYear}
	}
	placements, stats := scoring.Rank(entries)
	byID := make(map[string]scoring.Placement, len(placements))
	for _, p := range placements {
		byID[p.ID] = p
	}
	for i := range results {
		p := byID[results[i].ID]
		position := p.Position
		average := stats.Average
		highest := stats.Highest
		lowest := stats.Lowest
		results[i].ClassPosition = &position
		results[i].ClassAverage = &average
		results[i].ClassHighest = &highest
		results[i].ClassLowest = &lowest
	}
	if err := s.sessionResults.UpdateRanking(ctx, results); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session ranking")
	}
	return results, nil
}

func (s *ResultService) resolveConfig(ctx context.Context, configurationID string, level models.EducationLevel) (*models.ScoringConfiguration, error) {
	if configurationID != "" {
		return s.configs.FindByID(ctx, configurationID)
	}
	return s.configs.FindDefault(ctx, level)
}

// resolveSessionConfig picks the configuration for a session rollup. When no
// ID is given it falls back to the level default and, if that default is a
// termly configuration, to any active SESSION configuration for the level.
func (s *ResultService) resolveSessionConfig(ctx context.Context, configurationID string) (*models.ScoringConfiguration, error) {
	if configurationID != "" {
		return s.configs.FindByID(ctx, configurationID)
	}
	config, err := s.configs.FindDefault(ctx, models.LevelSeniorSecondary)
	if err == nil && config.ResultType == models.ResultTypeSession {
		return config, nil
	}
	configs, listErr := s.configs.ListByEducationLevel(ctx, models.LevelSeniorSecondary)
	if listErr != nil {
		return nil, listErr
	}
	for i := range configs {
		if configs[i].ResultType == models.ResultTypeSession {
			return &configs[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNoDefaultConfig, "no SESSION scoring configuration for SENIOR_SECONDARY")
}

func (s *ResultService) loadTermResults(ctx context.Context, req AggregateSessionRequest) ([]models.SubjectResult, error) {
	examSessions, err := s.examSessions.ListByAcademicSession(ctx, req.AcademicSessionID)
	if err != nil {
		return nil, err
	}
	byTerm := make(map[models.Term]models.ExamSession, len(examSessions))
	for _, es := range examSessions {
		byTerm[es.Term] = es
	}
	order := []models.Term{models.TermFirst, models.TermSecond, models.TermThird}
	terms := make([]models.SubjectResult, 0, 3)
	for _, term := range order {
		es, ok := byTerm[term]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrIncompleteTermSet,
				fmt.Sprintf("academic session %s has no %s term exam session", req.AcademicSessionID, term))
		}
		result, err := s.results.FindByScope(ctx, req.StudentID, req.SubjectID, es.ID)
		if err != nil {
			if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
				return nil, appErrors.Clone(appErrors.ErrIncompleteTermSet,
					fmt.Sprintf("no termly result recorded for the %s term", term))
			}
			return nil, err
		}
		terms = append(terms, *result)
	}
	return terms, nil
}

func applyComputed(result *models.SubjectResult, computed models.ComputedResult) {
	total := computed.TotalScore
	percentage := computed.Percentage
	grade := computed.Grade
	isPassed := computed.IsPassed
	result.TotalScore = &total
	result.Percentage = &percentage
	result.Grade = &grade
	result.GradePoint = computed.GradePoint
	result.IsPassed = &isPassed
	result.Position = nil
	result.ClassAverage = nil
	result.ClassHighest = nil
	result.ClassLowest = nil
}
