package scoring

import (
	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

// seniorTermlyStrategy scores Senior Secondary termly results: three tests
// form the continuous assessment, the exam supplies the rest.
type seniorTermlyStrategy struct{}

var seniorTermlyFields = map[string]bool{
	"first_test_max":      true,
	"second_test_max":     true,
	"third_test_max":      true,
	"exam_max":            true,
	"total_max":           true,
	"ca_weight_percent":   true,
	"exam_weight_percent": true,
}

func (seniorTermlyStrategy) ValidateConfig(cfg models.ScoringConfiguration) []Violation {
	components := []configField{
		{"first_test_max", cfg.FirstTestMax},
		{"second_test_max", cfg.SecondTestMax},
		{"third_test_max", cfg.ThirdTestMax},
		{"exam_max", cfg.ExamMax},
	}
	var violations []Violation
	violations = append(violations, checkApplicability(cfg, seniorTermlyFields)...)
	violations = append(violations, checkPositiveMaxima(components)...)
	violations = append(violations, checkComponentSum(cfg, components)...)
	violations = append(violations, checkWeights(cfg)...)
	return violations
}

func (seniorTermlyStrategy) Compute(cfg models.ScoringConfiguration, raw models.RawScores) (float64, float64, error) {
	firstMax, err := requireConfigValue("first_test_max", cfg.FirstTestMax)
	if err != nil {
		return 0, 0, err
	}
	secondMax, err := requireConfigValue("second_test_max", cfg.SecondTestMax)
	if err != nil {
		return 0, 0, err
	}
	thirdMax, err := requireConfigValue("third_test_max", cfg.ThirdTestMax)
	if err != nil {
		return 0, 0, err
	}
	examMax, err := requireConfigValue("exam_max", cfg.ExamMax)
	if err != nil {
		return 0, 0, err
	}
	totalMax, err := requireConfigValue("total_max", cfg.TotalMax)
	if err != nil {
		return 0, 0, err
	}

	total, err := sumScores([]scoreField{
		{"first_test", raw.FirstTest, firstMax},
		{"second_test", raw.SecondTest, secondMax},
		{"third_test", raw.ThirdTest, thirdMax},
		{"exam", raw.Exam, examMax},
	})
	if err != nil {
		return 0, 0, err
	}
	return total, totalMax, nil
}

// seniorSessionStrategy covers Senior Secondary SESSION configurations.
// Each of its three maxima bounds a whole term's cumulative total; session
// totals are never recomputed from test/exam sub-parts here, they are
// aggregated from termly results (see AggregateSession).
type seniorSessionStrategy struct{}

var seniorSessionFields = map[string]bool{
	"first_term_max":  true,
	"second_term_max": true,
	"third_term_max":  true,
}

func (seniorSessionStrategy) ValidateConfig(cfg models.ScoringConfiguration) []Violation {
	components := []configField{
		{"first_term_max", cfg.FirstTermMax},
		{"second_term_max", cfg.SecondTermMax},
		{"third_term_max", cfg.ThirdTermMax},
	}
	var violations []Violation
	violations = append(violations, checkApplicability(cfg, seniorSessionFields)...)
	violations = append(violations, checkPositiveMaxima(components)...)
	for _, field := range components {
		if field.value == nil {
			violations = append(violations, Violation{
				Rule:    RuleComponentsSumToTotal,
				Field:   field.name,
				Message: field.name + " is required",
			})
		}
	}
	return violations
}

func (seniorSessionStrategy) Compute(models.ScoringConfiguration, models.RawScores) (float64, float64, error) {
	return 0, 0, appErrors.Clone(appErrors.ErrValidation, "session results are aggregated from termly totals, not computed from raw scores")
}
