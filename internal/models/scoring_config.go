package models

import "time"

// EducationLevel identifies the scoring shape a class falls under.
type EducationLevel string

const (
	LevelNursery         EducationLevel = "NURSERY"
	LevelPrimary         EducationLevel = "PRIMARY"
	LevelJuniorSecondary EducationLevel = "JUNIOR_SECONDARY"
	LevelSeniorSecondary EducationLevel = "SENIOR_SECONDARY"
)

// Valid reports whether the level is one of the four known levels.
func (l EducationLevel) Valid() bool {
	switch l {
	case LevelNursery, LevelPrimary, LevelJuniorSecondary, LevelSeniorSecondary:
		return true
	}
	return false
}

// ResultType distinguishes termly results from annual session rollups.
type ResultType string

const (
	ResultTypeTermly  ResultType = "TERMLY"
	ResultTypeSession ResultType = "SESSION"
)

// Valid reports whether the result type is known.
func (t ResultType) Valid() bool {
	return t == ResultTypeTermly || t == ResultTypeSession
}

// ScoringConfiguration declares the component maxima and weight split used
// to combine raw scores into a final score for one (education level, result
// type) pair. Component columns are nullable because each level only uses
// its own subset; the scoring package rejects values set outside that
// subset rather than storing stale fields from a prior level selection.
type ScoringConfiguration struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	EducationLevel  EducationLevel `db:"education_level" json:"education_level"`
	ResultType      ResultType     `db:"result_type" json:"result_type"`
	GradingSystemID string         `db:"grading_system_id" json:"grading_system_id"`
	Active          bool           `db:"active" json:"active"`
	IsDefault       bool           `db:"is_default" json:"is_default"`

	// Senior Secondary TERMLY test maxima.
	FirstTestMax  *float64 `db:"first_test_max" json:"first_test_max,omitempty"`
	SecondTestMax *float64 `db:"second_test_max" json:"second_test_max,omitempty"`
	ThirdTestMax  *float64 `db:"third_test_max" json:"third_test_max,omitempty"`

	// Senior Secondary SESSION whole-term cumulative maxima.
	FirstTermMax  *float64 `db:"first_term_max" json:"first_term_max,omitempty"`
	SecondTermMax *float64 `db:"second_term_max" json:"second_term_max,omitempty"`
	ThirdTermMax  *float64 `db:"third_term_max" json:"third_term_max,omitempty"`

	// Primary / Junior Secondary continuous assessment maxima.
	ContinuousAssessmentMax *float64 `db:"continuous_assessment_max" json:"continuous_assessment_max,omitempty"`
	TakeHomeTestMax         *float64 `db:"take_home_test_max" json:"take_home_test_max,omitempty"`
	AppearanceMax           *float64 `db:"appearance_max" json:"appearance_max,omitempty"`
	PracticalMax            *float64 `db:"practical_max" json:"practical_max,omitempty"`
	ProjectMax              *float64 `db:"project_max" json:"project_max,omitempty"`
	NoteCopyingMax          *float64 `db:"note_copying_max" json:"note_copying_max,omitempty"`

	ExamMax           *float64 `db:"exam_max" json:"exam_max,omitempty"`
	TotalMax          *float64 `db:"total_max" json:"total_max,omitempty"`
	CAWeightPercent   *float64 `db:"ca_weight_percent" json:"ca_weight_percent,omitempty"`
	ExamWeightPercent *float64 `db:"exam_weight_percent" json:"exam_weight_percent,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScoringConfigFilter scopes configuration listings.
type ScoringConfigFilter struct {
	EducationLevel EducationLevel
	ResultType     ResultType
	Active         *bool
}
