package models

import "time"

// ResultStatus tracks a result through its approval workflow. Transitions
// are forward-only; an APPROVED result is never deleted.
type ResultStatus string

const (
	StatusDraft     ResultStatus = "DRAFT"
	StatusSubmitted ResultStatus = "SUBMITTED"
	StatusApproved  ResultStatus = "APPROVED"
	StatusPublished ResultStatus = "PUBLISHED"
)

// Valid reports whether the status is known.
func (s ResultStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusPublished:
		return true
	}
	return false
}

// Immutable reports whether derived fields may no longer change.
func (s ResultStatus) Immutable() bool {
	return s == StatusApproved || s == StatusPublished
}

// RawScores carries the component scores entered for one student/subject in
// one exam session. Only the fields applicable to the configuration's
// education level may be set; the rest stay nil.
type RawScores struct {
	FirstTest  *float64 `db:"first_test" json:"first_test,omitempty"`
	SecondTest *float64 `db:"second_test" json:"second_test,omitempty"`
	ThirdTest  *float64 `db:"third_test" json:"third_test,omitempty"`

	ContinuousAssessment *float64 `db:"continuous_assessment" json:"continuous_assessment,omitempty"`
	TakeHomeTest         *float64 `db:"take_home_test" json:"take_home_test,omitempty"`
	Appearance           *float64 `db:"appearance" json:"appearance,omitempty"`
	Practical            *float64 `db:"practical" json:"practical,omitempty"`
	Project              *float64 `db:"project" json:"project,omitempty"`
	NoteCopying          *float64 `db:"note_copying" json:"note_copying,omitempty"`

	Exam *float64 `db:"exam" json:"exam,omitempty"`

	// Nursery single mark.
	MarkObtained *float64 `db:"mark_obtained" json:"mark_obtained,omitempty"`
}

// ComputedResult is the derived tuple produced by the computation engine.
// It is always written whole, never merged field by field.
type ComputedResult struct {
	TotalScore float64  `json:"total_score"`
	Percentage float64  `json:"percentage"`
	Grade      string   `json:"grade"`
	Remark     string   `json:"remark,omitempty"`
	GradePoint *float64 `json:"grade_point,omitempty"`
	IsPassed   bool     `json:"is_passed"`
}

// SubjectResult is a termly result for one student/subject/exam session.
// Derived columns stay null until computed; ranking columns stay null until
// the class has been ranked.
type SubjectResult struct {
	ID              string `db:"id" json:"id"`
	StudentID       string `db:"student_id" json:"student_id"`
	SubjectID       string `db:"subject_id" json:"subject_id"`
	ClassID         string `db:"class_id" json:"class_id"`
	ExamSessionID   string `db:"exam_session_id" json:"exam_session_id"`
	ConfigurationID string `db:"configuration_id" json:"configuration_id"`

	RawScores

	TotalScore *float64 `db:"total_score" json:"total_score,omitempty"`
	Percentage *float64 `db:"percentage" json:"percentage,omitempty"`
	Grade      *string  `db:"grade" json:"grade,omitempty"`
	GradePoint *float64 `db:"grade_point" json:"grade_point,omitempty"`
	IsPassed   *bool    `db:"is_passed" json:"is_passed,omitempty"`

	Position     *int     `db:"position" json:"position,omitempty"`
	ClassAverage *float64 `db:"class_average" json:"class_average,omitempty"`
	ClassHighest *float64 `db:"class_highest" json:"class_highest,omitempty"`
	ClassLowest  *float64 `db:"class_lowest" json:"class_lowest,omitempty"`

	Status    ResultStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// SessionResult is the Senior Secondary annual rollup of three termly
// results for one student/subject/academic session.
type SessionResult struct {
	ID                string `db:"id" json:"id"`
	StudentID         string `db:"student_id" json:"student_id"`
	SubjectID         string `db:"subject_id" json:"subject_id"`
	ClassID           string `db:"class_id" json:"class_id"`
	AcademicSessionID string `db:"academic_session_id" json:"academic_session_id"`
	ConfigurationID   string `db:"configuration_id" json:"configuration_id"`

	Term1Total     float64  `db:"term1_total" json:"term1_total"`
	Term2Total     float64  `db:"term2_total" json:"term2_total"`
	Term3Total     float64  `db:"term3_total" json:"term3_total"`
	AverageForYear float64  `db:"average_for_year" json:"average_for_year"`
	Obtainable     float64  `db:"obtainable" json:"obtainable"`
	Obtained       float64  `db:"obtained" json:"obtained"`
	OverallGrade   string   `db:"overall_grade" json:"overall_grade"`
	GradePoint     *float64 `db:"grade_point" json:"grade_point,omitempty"`
	IsPassed       bool     `db:"is_passed" json:"is_passed"`

	ClassPosition *int     `db:"class_position" json:"class_position,omitempty"`
	ClassAverage  *float64 `db:"class_average" json:"class_average,omitempty"`
	ClassHighest  *float64 `db:"class_highest" json:"class_highest,omitempty"`
	ClassLowest   *float64 `db:"class_lowest" json:"class_lowest,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
