package scoring

import (
	"fmt"

	"github.com/edupoint/scoring-api/internal/models"
)

// Rule names reported in configuration violations.
const (
	RuleWeightsSumTo100       = "WeightsSumTo100"
	RuleComponentsSumToTotal  = "ComponentsSumToTotal"
	RuleSingleDefaultPerLevel = "SingleDefaultPerLevel"
	RuleFieldApplicability    = "FieldApplicability"
)

// Violation is a single broken rule. Validation always reports every
// violation found, never just the first.
type Violation struct {
	Rule    string `json:"rule"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating a configuration against its
// rules and its active siblings.
type ValidationResult struct {
	OK         bool        `json:"ok"`
	Violations []Violation `json:"violations,omitempty"`
}

// ValidateConfiguration checks a scoring configuration's internal arithmetic,
// its field applicability, and its uniqueness-as-default against the sibling
// configurations currently active for the same education level. It is a pure
// function; persistence is gated on the result.
func ValidateConfiguration(cfg models.ScoringConfiguration, siblings []models.ScoringConfiguration) ValidationResult {
	var violations []Violation

	strategy, err := StrategyFor(cfg.EducationLevel, cfg.ResultType)
	if err != nil {
		violations = append(violations, Violation{
			Rule:    RuleFieldApplicability,
			Message: fmt.Sprintf("unsupported education level / result type combination %s/%s", cfg.EducationLevel, cfg.ResultType),
		})
		return ValidationResult{OK: false, Violations: violations}
	}

	violations = append(violations, strategy.ValidateConfig(cfg)...)

	if v := checkSingleDefault(cfg, siblings); v != nil {
		violations = append(violations, *v)
	}

	return ValidationResult{OK: len(violations) == 0, Violations: violations}
}

// checkSingleDefault enforces at most one active default per education
// level. The previous default is never demoted implicitly; the caller must
// unset it first.
func checkSingleDefault(cfg models.ScoringConfiguration, siblings []models.ScoringConfiguration) *Violation {
	if !cfg.IsDefault {
		return nil
	}
	for _, sibling := range siblings {
		if sibling.ID == cfg.ID {
			continue
		}
		if sibling.Active && sibling.IsDefault && sibling.EducationLevel == cfg.EducationLevel {
			return &Violation{
				Rule:    RuleSingleDefaultPerLevel,
				Field:   "is_default",
				Message: fmt.Sprintf("configuration %s is already the default for %s; unset it first", sibling.ID, cfg.EducationLevel),
			}
		}
	}
	return nil
}

// checkWeights verifies the exact CA/exam weight split for termly
// configurations. Equality is exact, not approximate.
func checkWeights(cfg models.ScoringConfiguration) []Violation {
	var violations []Violation
	if cfg.CAWeightPercent == nil || cfg.ExamWeightPercent == nil {
		violations = append(violations, Violation{
			Rule:    RuleWeightsSumTo100,
			Field:   "ca_weight_percent",
			Message: "ca and exam weight percentages are required for termly configurations",
		})
		return violations
	}
	if *cfg.CAWeightPercent+*cfg.ExamWeightPercent != 100 {
		violations = append(violations, Violation{
			Rule:  RuleWeightsSumTo100,
			Field: "ca_weight_percent",
			Message: fmt.Sprintf("ca weight %g + exam weight %g must equal 100",
				*cfg.CAWeightPercent, *cfg.ExamWeightPercent),
		})
	}
	return violations
}

// checkComponentSum verifies that the named component maxima plus the exam
// maximum equal the configured total.
func checkComponentSum(cfg models.ScoringConfiguration, components []configField) []Violation {
	var violations []Violation
	sum := 0.0
	complete := true
	for _, field := range components {
		if field.value == nil {
			violations = append(violations, Violation{
				Rule:    RuleComponentsSumToTotal,
				Field:   field.name,
				Message: fmt.Sprintf("%s is required", field.name),
			})
			complete = false
			continue
		}
		sum += *field.value
	}
	if cfg.TotalMax == nil {
		violations = append(violations, Violation{
			Rule:    RuleComponentsSumToTotal,
			Field:   "total_max",
			Message: "total_max is required",
		})
		complete = false
	}
	if complete && sum != *cfg.TotalMax {
		violations = append(violations, Violation{
			Rule:    RuleComponentsSumToTotal,
			Field:   "total_max",
			Message: fmt.Sprintf("component maxima sum to %g but total_max is %g", sum, *cfg.TotalMax),
		})
	}
	return violations
}

// configField pairs a component column with its value for generic checks.
type configField struct {
	name  string
	value *float64
}

// allConfigFields lists every level-dependent column of a configuration.
func allConfigFields(cfg *models.ScoringConfiguration) []configField {
	return []configField{
		{"first_test_max", cfg.FirstTestMax},
		{"second_test_max", cfg.SecondTestMax},
		{"third_test_max", cfg.ThirdTestMax},
		{"first_term_max", cfg.FirstTermMax},
		{"second_term_max", cfg.SecondTermMax},
		{"third_term_max", cfg.ThirdTermMax},
		{"continuous_assessment_max", cfg.ContinuousAssessmentMax},
		{"take_home_test_max", cfg.TakeHomeTestMax},
		{"appearance_max", cfg.AppearanceMax},
		{"practical_max", cfg.PracticalMax},
		{"project_max", cfg.ProjectMax},
		{"note_copying_max", cfg.NoteCopyingMax},
		{"exam_max", cfg.ExamMax},
		{"total_max", cfg.TotalMax},
		{"ca_weight_percent", cfg.CAWeightPercent},
		{"exam_weight_percent", cfg.ExamWeightPercent},
	}
}

// checkApplicability rejects any column set outside the allowed subset for
// the configuration's level and result type. Stale values carried over from
// a prior level selection are a validation error, never silently stored.
func checkApplicability(cfg models.ScoringConfiguration, allowed map[string]bool) []Violation {
	var violations []Violation
	for _, field := range allConfigFields(&cfg) {
		if field.value != nil && !allowed[field.name] {
			violations = append(violations, Violation{
				Rule:    RuleFieldApplicability,
				Field:   field.name,
				Message: fmt.Sprintf("%s does not apply to %s/%s configurations", field.name, cfg.EducationLevel, cfg.ResultType),
			})
		}
	}
	return violations
}

// checkPositiveMaxima rejects zero or negative component maxima.
func checkPositiveMaxima(components []configField) []Violation {
	var violations []Violation
	for _, field := range components {
		if field.value != nil && *field.value <= 0 {
			violations = append(violations, Violation{
				Rule:    RuleComponentsSumToTotal,
				Field:   field.name,
				Message: fmt.Sprintf("%s must be greater than zero", field.name),
			})
		}
	}
	return violations
}
