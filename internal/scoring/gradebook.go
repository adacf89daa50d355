package scoring

import (
	"fmt"
	"sort"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

// Grade range rule names reported when a grading system is rejected.
const (
	RuleGradeRangeBounds   = "GradeRangeBounds"
	RuleGradeRangesOverlap = "GradeRangesOverlap"
	RuleGradeRangesCover   = "GradeRangesCover"
)

// LookupGrade returns the grade range whose interval contains the value.
// A value falling into a boundary gap is a configuration-data error and is
// reported as such; the lookup never falls back to a default grade.
func LookupGrade(system models.GradingSystem, value float64) (*models.GradeRange, error) {
	for i := range system.Ranges {
		r := &system.Ranges[i]
		if value >= r.MinScore && value <= r.MaxScore {
			return r, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNoMatchingGradeRange,
		fmt.Sprintf("no grade range in %s matches value %g", system.Name, value))
}

// ValidateGradingSystem checks that ranges are non-overlapping and jointly
// cover [MinScore, MaxScore]. Adjacent ranges may leave the usual integer
// boundary gap ([0,39] then [40,100]); anything wider is rejected.
func ValidateGradingSystem(system models.GradingSystem) []Violation {
	var violations []Violation

	if system.MaxScore <= system.MinScore {
		violations = append(violations, Violation{
			Rule:    RuleGradeRangeBounds,
			Field:   "max_score",
			Message: fmt.Sprintf("max_score %g must be greater than min_score %g", system.MaxScore, system.MinScore),
		})
	}
	if system.PassMark < system.MinScore || system.PassMark > system.MaxScore {
		violations = append(violations, Violation{
			Rule:    RuleGradeRangeBounds,
			Field:   "pass_mark",
			Message: fmt.Sprintf("pass_mark %g must lie within [%g, %g]", system.PassMark, system.MinScore, system.MaxScore),
		})
	}
	if len(system.Ranges) == 0 {
		violations = append(violations, Violation{
			Rule:    RuleGradeRangesCover,
			Field:   "ranges",
			Message: "at least one grade range is required",
		})
		return violations
	}

	ranges := make([]models.GradeRange, len(system.Ranges))
	copy(ranges, system.Ranges)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].MinScore < ranges[j].MinScore })

	for _, r := range ranges {
		if r.MaxScore < r.MinScore {
			violations = append(violations, Violation{
				Rule:    RuleGradeRangeBounds,
				Field:   r.Grade,
				Message: fmt.Sprintf("range %s has max %g below min %g", r.Grade, r.MaxScore, r.MinScore),
			})
		}
	}

	if ranges[0].MinScore != system.MinScore {
		violations = append(violations, Violation{
			Rule:    RuleGradeRangesCover,
			Field:   ranges[0].Grade,
			Message: fmt.Sprintf("lowest range starts at %g, expected %g", ranges[0].MinScore, system.MinScore),
		})
	}
	if last := ranges[len(ranges)-1]; last.MaxScore != system.MaxScore {
		violations = append(violations, Violation{
			Rule:    RuleGradeRangesCover,
			Field:   last.Grade,
			Message: fmt.Sprintf("highest range ends at %g, expected %g", last.MaxScore, system.MaxScore),
		})
	}

	for i := 1; i < len(ranges); i++ {
		prev, next := ranges[i-1], ranges[i]
		if next.MinScore <= prev.MaxScore {
			violations = append(violations, Violation{
				Rule:    RuleGradeRangesOverlap,
				Field:   next.Grade,
				Message: fmt.Sprintf("range %s [%g, %g] overlaps %s [%g, %g]", next.Grade, next.MinScore, next.MaxScore, prev.Grade, prev.MinScore, prev.MaxScore),
			})
			continue
		}
		if next.MinScore-prev.MaxScore > 1 {
			violations = append(violations, Violation{
				Rule:    RuleGradeRangesCover,
				Field:   next.Grade,
				Message: fmt.Sprintf("gap between %s (ends %g) and %s (starts %g)", prev.Grade, prev.MaxScore, next.Grade, next.MinScore),
			})
		}
	}

	return violations
}
