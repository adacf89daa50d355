// Package scoring holds the pure computation core: configuration
// validation, per-level score computation, grade lookup, class ranking and
// session aggregation. Nothing in this package touches storage; every
// function is a pure function of its arguments, so recomputation is always
// safe to run redundantly.
package scoring

import (
	"math"

	"github.com/edupoint/scoring-api/internal/models"
)

// round2 rounds to two decimals, ties to even.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// ComputeResult turns raw component scores into the derived result tuple
// for one student/subject/exam session. The configuration is expected to
// have passed validation; raw scores are validated here against the
// configured maxima. Identical inputs always yield identical output.
func ComputeResult(cfg models.ScoringConfiguration, raw models.RawScores, system models.GradingSystem) (models.ComputedResult, error) {
	strategy, err := StrategyFor(cfg.EducationLevel, cfg.ResultType)
	if err != nil {
		return models.ComputedResult{}, err
	}

	obtained, obtainable, err := strategy.Compute(cfg, raw)
	if err != nil {
		return models.ComputedResult{}, err
	}

	percentage := round2(obtained / obtainable * 100)
	gradeRange, err := LookupGrade(system, percentage)
	if err != nil {
		return models.ComputedResult{}, err
	}

	return models.ComputedResult{
		TotalScore: obtained,
		Percentage: percentage,
		Grade:      gradeRange.Grade,
		Remark:     gradeRange.Remark,
		GradePoint: gradeRange.GradePoint,
		IsPassed:   gradeRange.IsPassing,
	}, nil
}
