package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/scoring-api/internal/models"
)

func hasViolation(violations []Violation, rule string) bool {
	for _, v := range violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

func TestValidateConfigurationValidSeniorTermly(t *testing.T) {
	result := ValidateConfiguration(seniorTermlyConfig(), nil)
	assert.True(t, result.OK)
	assert.Empty(t, result.Violations)
}

func TestValidateConfigurationWeightsMustSumTo100(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.CAWeightPercent = fptr(40)
	cfg.ExamWeightPercent = fptr(70)

	result := ValidateConfiguration(cfg, nil)
	require.False(t, result.OK)
	assert.True(t, hasViolation(result.Violations, RuleWeightsSumTo100))
}

func TestValidateConfigurationComponentsMustSumToTotal(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.ExamMax = fptr(60) // 10+10+10+60 = 90 != 100

	result := ValidateConfiguration(cfg, nil)
	require.False(t, result.OK)
	assert.True(t, hasViolation(result.Violations, RuleComponentsSumToTotal))
}

func TestValidateConfigurationReportsAllViolations(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.ExamMax = fptr(60)
	cfg.CAWeightPercent = fptr(40)
	cfg.PracticalMax = fptr(5) // primary-only field on a senior config

	result := ValidateConfiguration(cfg, nil)
	require.False(t, result.OK)
	assert.True(t, hasViolation(result.Violations, RuleComponentsSumToTotal))
	assert.True(t, hasViolation(result.Violations, RuleWeightsSumTo100))
	assert.True(t, hasViolation(result.Violations, RuleFieldApplicability))
	assert.GreaterOrEqual(t, len(result.Violations), 3)
}

func TestValidateConfigurationSingleDefaultPerLevel(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.IsDefault = true

	existing := seniorTermlyConfig()
	existing.ID = "cfg-existing"
	existing.IsDefault = true

	result := ValidateConfiguration(cfg, []models.ScoringConfiguration{existing})
	require.False(t, result.OK)
	assert.True(t, hasViolation(result.Violations, RuleSingleDefaultPerLevel))
}

func TestValidateConfigurationDefaultExcludesSelfOnUpdate(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.IsDefault = true

	// The record being updated appears among its own siblings.
	result := ValidateConfiguration(cfg, []models.ScoringConfiguration{cfg})
	assert.True(t, result.OK)
}

func TestValidateConfigurationInactiveDefaultIgnored(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.IsDefault = true

	retired := seniorTermlyConfig()
	retired.ID = "cfg-retired"
	retired.IsDefault = true
	retired.Active = false

	result := ValidateConfiguration(cfg, []models.ScoringConfiguration{retired})
	assert.True(t, result.OK)
}

func TestValidateConfigurationStaleFieldsRejected(t *testing.T) {
	cfg := primaryTermlyConfig()
	// Stale senior test maxima left over from a prior level selection.
	cfg.FirstTestMax = fptr(10)
	cfg.SecondTestMax = fptr(10)

	result := ValidateConfiguration(cfg, nil)
	require.False(t, result.OK)
	count := 0
	for _, v := range result.Violations {
		if v.Rule == RuleFieldApplicability {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestValidateConfigurationNurseryRejectsWeights(t *testing.T) {
	cfg := models.ScoringConfiguration{
		EducationLevel:  models.LevelNursery,
		ResultType:      models.ResultTypeTermly,
		TotalMax:        fptr(50),
		CAWeightPercent: fptr(40),
	}

	result := ValidateConfiguration(cfg, nil)
	require.False(t, result.OK)
	assert.True(t, hasViolation(result.Violations, RuleFieldApplicability))
}

func TestValidateConfigurationSessionVariant(t *testing.T) {
	cfg := models.ScoringConfiguration{
		EducationLevel: models.LevelSeniorSecondary,
		ResultType:     models.ResultTypeSession,
		Active:         true,
		FirstTermMax:   fptr(100),
		SecondTermMax:  fptr(100),
		ThirdTermMax:   fptr(100),
	}
	assert.True(t, ValidateConfiguration(cfg, nil).OK)

	cfg.ExamMax = fptr(70)
	result := ValidateConfiguration(cfg, nil)
	require.False(t, result.OK)
	assert.True(t, hasViolation(result.Violations, RuleFieldApplicability))
}

func TestValidateConfigurationSessionOnlyForSenior(t *testing.T) {
	cfg := models.ScoringConfiguration{
		EducationLevel: models.LevelPrimary,
		ResultType:     models.ResultTypeSession,
	}

	result := ValidateConfiguration(cfg, nil)
	assert.False(t, result.OK)
}

func TestValidateConfigurationZeroMaximumRejected(t *testing.T) {
	cfg := seniorTermlyConfig()
	cfg.FirstTestMax = fptr(0)

	result := ValidateConfiguration(cfg, nil)
	assert.False(t, result.OK)
}
