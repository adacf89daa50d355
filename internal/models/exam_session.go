package models

import "time"

// Term enumerates the three terms of an academic session.
type Term string

const (
	TermFirst  Term = "FIRST"
	TermSecond Term = "SECOND"
	TermThird  Term = "THIRD"
)

// ExamSession is the scheduling context a result is recorded against.
// It is owned by the exam scheduling module and read-only here.
type ExamSession struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	ExamType          string    `db:"exam_type" json:"exam_type"`
	Term              Term      `db:"term" json:"term"`
	AcademicSessionID string    `db:"academic_session_id" json:"academic_session_id"`
	StartDate         time.Time `db:"start_date" json:"start_date"`
	EndDate           time.Time `db:"end_date" json:"end_date"`
	IsPublished       bool      `db:"is_published" json:"is_published"`
	IsActive          bool      `db:"is_active" json:"is_active"`
}
