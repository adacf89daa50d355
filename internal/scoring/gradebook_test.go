package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/scoring-api/internal/models"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

func TestLookupGrade(t *testing.T) {
	system := standardGradingSystem()

	r, err := LookupGrade(system, 84)
	require.NoError(t, err)
	assert.Equal(t, "A", r.Grade)

	r, err = LookupGrade(system, 40)
	require.NoError(t, err)
	assert.Equal(t, "D", r.Grade)

	r, err = LookupGrade(system, 0)
	require.NoError(t, err)
	assert.Equal(t, "F", r.Grade)
}

func TestLookupGradeBoundaryGap(t *testing.T) {
	system := models.GradingSystem{
		Name: "Two Band", MinScore: 0, MaxScore: 100, PassMark: 40,
		Ranges: []models.GradeRange{
			{Grade: "F", MinScore: 0, MaxScore: 39},
			{Grade: "P", MinScore: 40, MaxScore: 100},
		},
	}

	_, err := LookupGrade(system, 39.5)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoMatchingGradeRange.Code, appErrors.FromError(err).Code)
}

func TestValidateGradingSystemValid(t *testing.T) {
	assert.Empty(t, ValidateGradingSystem(standardGradingSystem()))
}

func TestValidateGradingSystemOverlap(t *testing.T) {
	system := standardGradingSystem()
	system.Ranges[1].MaxScore = 75 // B now overlaps A

	violations := ValidateGradingSystem(system)
	require.NotEmpty(t, violations)
	assert.True(t, hasViolation(violations, RuleGradeRangesOverlap))
}

func TestValidateGradingSystemGap(t *testing.T) {
	system := models.GradingSystem{
		Name: "Gappy", MinScore: 0, MaxScore: 100, PassMark: 40,
		Ranges: []models.GradeRange{
			{Grade: "F", MinScore: 0, MaxScore: 30},
			{Grade: "P", MinScore: 40, MaxScore: 100},
		},
	}

	violations := ValidateGradingSystem(system)
	require.NotEmpty(t, violations)
	assert.True(t, hasViolation(violations, RuleGradeRangesCover))
}

func TestValidateGradingSystemIncompleteCoverage(t *testing.T) {
	system := models.GradingSystem{
		Name: "Short", MinScore: 0, MaxScore: 100, PassMark: 40,
		Ranges: []models.GradeRange{
			{Grade: "F", MinScore: 0, MaxScore: 39},
			{Grade: "P", MinScore: 40, MaxScore: 90},
		},
	}

	violations := ValidateGradingSystem(system)
	assert.True(t, hasViolation(violations, RuleGradeRangesCover))
}

func TestValidateGradingSystemNoRanges(t *testing.T) {
	system := models.GradingSystem{Name: "Empty", MinScore: 0, MaxScore: 100, PassMark: 40}
	assert.NotEmpty(t, ValidateGradingSystem(system))
}

func TestValidateGradingSystemPassMarkOutOfBounds(t *testing.T) {
	system := standardGradingSystem()
	system.PassMark = 120

	violations := ValidateGradingSystem(system)
	assert.True(t, hasViolation(violations, RuleGradeRangeBounds))
}
