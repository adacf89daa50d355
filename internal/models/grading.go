package models

import "time"

// GradingSystemType describes how a grading system expresses its outcomes.
type GradingSystemType string

const (
	GradingTypePercentage GradingSystemType = "PERCENTAGE"
	GradingTypePoints     GradingSystemType = "POINTS"
	GradingTypeLetter     GradingSystemType = "LETTER"
	GradingTypePassFail   GradingSystemType = "PASS_FAIL"
)

// GradingSystem maps score intervals to letter grades. Its ranges are
// ordered, non-overlapping and jointly cover [MinScore, MaxScore].
type GradingSystem struct {
	ID        string            `db:"id" json:"id"`
	Name      string            `db:"name" json:"name"`
	Type      GradingSystemType `db:"type" json:"type"`
	MinScore  float64           `db:"min_score" json:"min_score"`
	MaxScore  float64           `db:"max_score" json:"max_score"`
	PassMark  float64           `db:"pass_mark" json:"pass_mark"`
	Active    bool              `db:"active" json:"active"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt time.Time         `db:"updated_at" json:"updated_at"`
	Ranges    []GradeRange      `json:"ranges,omitempty"`
}

// GradeRange is one score interval within a grading system.
type GradeRange struct {
	ID              string   `db:"id" json:"id"`
	GradingSystemID string   `db:"grading_system_id" json:"grading_system_id"`
	Grade           string   `db:"grade" json:"grade"`
	Remark          string   `db:"remark" json:"remark"`
	MinScore        float64  `db:"min_score" json:"min_score"`
	MaxScore        float64  `db:"max_score" json:"max_score"`
	GradePoint      *float64 `db:"grade_point" json:"grade_point,omitempty"`
	IsPassing       bool     `db:"is_passing" json:"is_passing"`
}

// GradingSystemFilter scopes grading system listings.
type GradingSystemFilter struct {
	Active *bool
}
