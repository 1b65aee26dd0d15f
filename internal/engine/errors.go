package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error detected while simulating a run.
//
// The update rules themselves never fail; runtime errors come from the
// surrounding loop: bad arguments and recorder failures.
type RuntimeError struct {
	Code    RuntimeErrorCode
	Message string

	// RunToken identifies the affected run, if one was assigned.
	RunToken string

	// Day is the day being recorded when the error occurred.
	Day int64

	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidDays indicates a negative day count.
	ErrCodeInvalidDays RuntimeErrorCode = "INVALID_DAYS"

	// ErrCodeRecordFailed indicates the recorder rejected a run or snapshot.
	ErrCodeRecordFailed RuntimeErrorCode = "RECORD_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.RunToken != "" {
		msg = fmt.Sprintf("%s (run=%s, day=%d)", msg, e.RunToken, e.Day)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsRecordError reports whether err is a recorder failure.
// Uses errors.As to handle wrapped errors.
func IsRecordError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeRecordFailed
	}
	return false
}

// NewInvalidDaysError creates a RuntimeError for a negative day count.
func NewInvalidDaysError(days int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidDays,
		Message: fmt.Sprintf("days must be non-negative, got %d", days),
	}
}

// NewRecordError creates a RuntimeError wrapping a recorder failure.
func NewRecordError(runToken string, day int64, err error) *RuntimeError {
	return &RuntimeError{
		Code:     ErrCodeRecordFailed,
		Message:  "failed to record run state",
		RunToken: runToken,
		Day:      day,
		Err:      err,
	}
}
