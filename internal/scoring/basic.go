package scoring

import "github.com/edupoint/scoring-api/internal/models"

// basicTermlyStrategy scores Primary and Junior Secondary termly results:
// six continuous assessment components plus the exam.
type basicTermlyStrategy struct {
	level models.EducationLevel
}

var basicTermlyFields = map[string]bool{
	"continuous_assessment_max": true,
	"take_home_test_max":        true,
	"appearance_max":            true,
	"practical_max":             true,
	"project_max":               true,
	"note_copying_max":          true,
	"exam_max":                  true,
	"total_max":                 true,
	"ca_weight_percent":         true,
	"exam_weight_percent":       true,
}

func (s basicTermlyStrategy) ValidateConfig(cfg models.ScoringConfiguration) []Violation {
	components := []configField{
		{"continuous_assessment_max", cfg.ContinuousAssessmentMax},
		{"take_home_test_max", cfg.TakeHomeTestMax},
		{"appearance_max", cfg.AppearanceMax},
		{"practical_max", cfg.PracticalMax},
		{"project_max", cfg.ProjectMax},
		{"note_copying_max", cfg.NoteCopyingMax},
		{"exam_max", cfg.ExamMax},
	}
	var violations []Violation
	violations = append(violations, checkApplicability(cfg, basicTermlyFields)...)
	violations = append(violations, checkPositiveMaxima(components)...)
	violations = append(violations, checkComponentSum(cfg, components)...)
	violations = append(violations, checkWeights(cfg)...)
	return violations
}

func (s basicTermlyStrategy) Compute(cfg models.ScoringConfiguration, raw models.RawScores) (float64, float64, error) {
	caMax, err := requireConfigValue("continuous_assessment_max", cfg.ContinuousAssessmentMax)
	if err != nil {
		return 0, 0, err
	}
	takeHomeMax, err := requireConfigValue("take_home_test_max", cfg.TakeHomeTestMax)
	if err != nil {
		return 0, 0, err
	}
	appearanceMax, err := requireConfigValue("appearance_max", cfg.AppearanceMax)
	if err != nil {
		return 0, 0, err
	}
	practicalMax, err := requireConfigValue("practical_max", cfg.PracticalMax)
	if err != nil {
		return 0, 0, err
	}
	projectMax, err := requireConfigValue("project_max", cfg.ProjectMax)
	if err != nil {
		return 0, 0, err
	}
	noteCopyingMax, err := requireConfigValue("note_copying_max", cfg.NoteCopyingMax)
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
		{"continuous_assessment", raw.ContinuousAssessment, caMax},
		{"take_home_test", raw.TakeHomeTest, takeHomeMax},
		{"appearance", raw.Appearance, appearanceMax},
		{"practical", raw.Practical, practicalMax},
		{"project", raw.Project, projectMax},
		{"note_copying", raw.NoteCopying, noteCopyingMax},
		{"exam", raw.Exam, examMax},
	})
	if err != nil {
		return 0, 0, err
	}
	return total, totalMax, nil
}
