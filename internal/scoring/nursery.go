package scoring

import "github.com/edupoint/scoring-api/internal/models"

// nurseryStrategy scores Nursery results: a single mark out of the
// configured total, no sub-components and no CA/exam split.
type nurseryStrategy struct{}

var nurseryFields = map[string]bool{
	"total_max": true,
}

func (nurseryStrategy) ValidateConfig(cfg models.ScoringConfiguration) []Violation {
	var violations []Violation
	violations = append(violations, checkApplicability(cfg, nurseryFields)...)
	violations = append(violations, checkPositiveMaxima([]configField{{"total_max", cfg.TotalMax}})...)
	if cfg.TotalMax == nil {
		violations = append(violations, Violation{
			Rule:    RuleComponentsSumToTotal,
			Field:   "total_max",
			Message: "total_max is required",
		})
	}
	return violations
}

func (nurseryStrategy) Compute(cfg models.ScoringConfiguration, raw models.RawScores) (float64, float64, error) {
	totalMax, err := requireConfigValue("total_max", cfg.TotalMax)
	if err != nil {
		return 0, 0, err
	}
	total, err := sumScores([]scoreField{{"mark_obtained", raw.MarkObtained, totalMax}})
	if err != nil {
		return 0, 0, err
	}
	return total, totalMax, nil
}
