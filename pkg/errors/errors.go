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
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// Planner and audit errors. Malformed schedule and weekday errors indicate bad
// catalog data rather than user error; the remaining ones map to actionable
// user feedback.
var (
	ErrMalformedSchedule         = New("MALFORMED_SCHEDULE", http.StatusUnprocessableEntity, "malformed meeting time in catalog data")
	ErrUnknownWeekday            = New("UNKNOWN_WEEKDAY", http.StatusUnprocessableEntity, "unknown weekday token in catalog data")
	ErrNoEligibleSections        = New("NO_ELIGIBLE_SECTIONS", http.StatusUnprocessableEntity, "a selected course has no eligible sections")
	ErrGenerationBudgetExceeded  = New("GENERATION_BUDGET_EXCEEDED", http.StatusUnprocessableEntity, "schedule generation budget exceeded; narrow your course selection or loosen constraints")
	ErrInvalidScheduleFormat     = New("INVALID_SCHEDULE_FORMAT", http.StatusBadRequest, "invalid schedule export format")
	ErrUnresolvedCourseReference = New("UNRESOLVED_COURSE_REFERENCE", http.StatusUnprocessableEntity, "exported schedule references a course or section missing from the catalog")
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

// HasCode reports whether err carries the given error code.
func HasCode(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
