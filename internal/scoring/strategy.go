package scoring

import (
	"fmt"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

// Strategy encapsulates the scoring rules for one (education level, result
// type) pair. Each implementation validates configuration arithmetic and
// field applicability for its variant and computes totals from raw scores.
// Selecting the strategy once by education level replaces per-level
// conditionals scattered across callers.
type Strategy interface {
	// ValidateConfig reports arithmetic and applicability violations.
	ValidateConfig(cfg models.ScoringConfiguration) []Violation
	// Compute validates the raw component scores against the configured
	// maxima and returns the total obtained and total obtainable. Scores
	// above their maximum or missing entirely are typed errors, never
	// clamped or zero-filled.
	Compute(cfg models.ScoringConfiguration, raw models.RawScores) (obtained, obtainable float64, err error)
}

// StrategyFor selects the strategy for an education level and result type.
// SESSION results exist for Senior Secondary only.
func StrategyFor(level models.EducationLevel, resultType models.ResultType) (Strategy, error) {
	if !resultType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown result type %q", resultType))
	}
	switch level {
	case models.LevelSeniorSecondary:
		if resultType == models.ResultTypeSession {
			return seniorSessionStrategy{}, nil
		}
		return seniorTermlyStrategy{}, nil
	case models.LevelPrimary, models.LevelJuniorSecondary:
		if resultType == models.ResultTypeSession {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("session results are not defined for %s", level))
		}
		return basicTermlyStrategy{level: level}, nil
	case models.LevelNursery:
		if resultType == models.ResultTypeSession {
			return nil, appErrors.Clone(appErrors.ErrValidation, "session results are not defined for NURSERY")
		}
		return nurseryStrategy{}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown education level %q", level))
	}
}

// scoreField pairs a raw score with its configured maximum for validation.
type scoreField struct {
	name  string
	value *float64
	max   float64
}

// sumScores validates each component against its maximum and accumulates
// the total. A missing component or one above its maximum fails the whole
// computation.
func sumScores(fields []scoreField) (float64, error) {
	total := 0.0
	for _, field := range fields {
		if field.value == nil {
			return 0, appErrors.Clone(appErrors.ErrMissingComponentScore, fmt.Sprintf("%s score is required", field.name))
		}
		v := *field.value
		if v < 0 {
			return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s score must not be negative", field.name))
		}
		if v > field.max {
			return 0, appErrors.Clone(appErrors.ErrScoreExceedsMaximum, fmt.Sprintf("%s score %g exceeds maximum %g", field.name, v, field.max))
		}
		total += v
	}
	return total, nil
}

// requireConfigValue extracts a required maximum from a configuration that
// has already passed validation; a nil value here means the caller skipped
// the validator.
func requireConfigValue(name string, value *float64) (float64, error) {
	if value == nil {
		return 0, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("configuration is missing %s; validate before computing", name))
	}
	return *value, nil
}
