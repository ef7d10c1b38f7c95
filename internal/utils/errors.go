package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service and repository layers.
var (
	ErrNotFound           = errors.New("not_found")
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrRateLimitExceeded  = errors.New("rate_limit_exceeded")
	ErrInvalidOwner       = errors.New("invalid_owner")
	ErrCSVParse           = errors.New("csv_parse_error")
	ErrTooManyRows        = errors.New("too_many_rows")
)

// AppError carries everything a controller needs to answer a failed service call.
// Details is optional and ends up in the response body untouched.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
