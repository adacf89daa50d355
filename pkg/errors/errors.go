package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// Scoring data errors. Each fails the single computation that raised
	// it; substituting a default value would corrupt a grade of record, so
	// callers surface these verbatim.
	ErrScoreExceedsMaximum   = New("SCORE_EXCEEDS_MAXIMUM", http.StatusUnprocessableEntity, "score exceeds configured maximum")
	ErrMissingComponentScore = New("MISSING_COMPONENT_SCORE", http.StatusUnprocessableEntity, "required component score missing")
	ErrNoMatchingGradeRange  = New("NO_MATCHING_GRADE_RANGE", http.StatusUnprocessableEntity, "no grade range matches the computed value")
	ErrIncompleteTermSet     = New("INCOMPLETE_TERM_SET", http.StatusPreconditionFailed, "session aggregation requires three approved termly results")
	ErrNoDefaultConfig       = New("NO_DEFAULT_CONFIGURATION", http.StatusNotFound, "no default scoring configuration for education level")
	ErrDefaultExists         = New("DEFAULT_CONFIG_EXISTS", http.StatusConflict, "an active default configuration already exists for this education level")
	ErrResultImmutable       = New("RESULT_IMMUTABLE", http.StatusConflict, "result is approved and can no longer be modified")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
