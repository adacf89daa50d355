package scoring

import (
	"fmt"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

// AggregateSession rolls three termly results into one Senior Secondary
// session result. All three must belong to the same student/subject and
// have reached an immutable status; otherwise the aggregation fails with
// ErrIncompleteTermSet rather than producing a result from partial data.
// Term totals are taken as-is from the termly computation, never re-derived
// from CA/exam sub-parts.
func AggregateSession(term1, term2, term3 models.SubjectResult, cfg models.ScoringConfiguration, system models.GradingSystem) (models.SessionResult, error) {
	if cfg.EducationLevel != models.LevelSeniorSecondary || cfg.ResultType != models.ResultTypeSession {
		return models.SessionResult{}, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("configuration %s is %s/%s, expected SENIOR_SECONDARY/SESSION", cfg.ID, cfg.EducationLevel, cfg.ResultType))
	}

	terms := []models.SubjectResult{term1, term2, term3}
	for i, term := range terms {
		if term.StudentID != term1.StudentID || term.SubjectID != term1.SubjectID {
			return models.SessionResult{}, appErrors.Clone(appErrors.ErrValidation,
				"termly results belong to different students or subjects")
		}
		if !term.Status.Immutable() {
			return models.SessionResult{}, appErrors.Clone(appErrors.ErrIncompleteTermSet,
				fmt.Sprintf("term %d result is %s; all three terms must be approved or published", i+1, term.Status))
		}
		if term.TotalScore == nil {
			return models.SessionResult{}, appErrors.Clone(appErrors.ErrIncompleteTermSet,
				fmt.Sprintf("term %d result has no computed total", i+1))
		}
	}

	maxima := []*float64{cfg.FirstTermMax, cfg.SecondTermMax, cfg.ThirdTermMax}
	names := []string{"first_term", "second_term", "third_term"}
	obtainable := 0.0
	obtained := 0.0
	for i, term := range terms {
		max, err := requireConfigValue(names[i]+"_max", maxima[i])
		if err != nil {
			return models.SessionResult{}, err
		}
		if *term.TotalScore > max {
			return models.SessionResult{}, appErrors.Clone(appErrors.ErrScoreExceedsMaximum,
				fmt.Sprintf("%s total %g exceeds maximum %g", names[i], *term.TotalScore, max))
		}
		obtainable += max
		obtained += *term.TotalScore
	}

	average := round2(obtained / 3)
	gradeRange, err := LookupGrade(system, average)
	if err != nil {
		return models.SessionResult{}, err
	}

	return models.SessionResult{
		StudentID:       term1.StudentID,
		SubjectID:       term1.SubjectID,
		ClassID:         term1.ClassID,
		ConfigurationID: cfg.ID,
		Term1Total:      *term1.TotalScore,
		Term2Total:      *term2.TotalScore,
		Term3Total:      *term3.TotalScore,
		AverageForYear:  average,
		Obtainable:      obtainable,
		Obtained:        obtained,
		OverallGrade:    gradeRange.Grade,
		GradePoint:      gradeRange.GradePoint,
		IsPassed:        gradeRange.IsPassing,
	}, nil
}
