package models

import (
	"fmt"
	"net/http"
)

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeFetchFailed  = "FETCH_FAILED"
	ErrCodeFetchTimeout = "FETCH_TIMEOUT"
	ErrCodeExtraction   = "EXTRACTION_FAILED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "INVALID_STATE"
	ErrCodeInvalidToken = "INVALID_TOKEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// User-facing messages with fixed wording.
const (
	MsgURLRequired      = "URL is required"
	MsgInvalidURL       = "URL must be an absolute http or https URL"
	MsgManualEntry      = "Could not extract recipe data from this URL. Please try manual entry."
	MsgFetchFailedPlain = "Failed to scrape recipe"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is the terminal error type surfaced to callers. Status is the HTTP
// status the API answers with.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error // wrapped original error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *Error) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// NewError creates a new Error.
func NewError(code, message string, status int, err error) *Error {
	return &Error{Code: code, Message: message, Status: status, Err: err}
}

// NewValidationError reports missing or malformed caller input.
func NewValidationError(message string) *Error {
	return NewError(ErrCodeInvalidInput, message, http.StatusBadRequest, nil)
}

// NewFetchError reports a failed download. upstreamStatus is the remote
// site's status code, or 0 when the site never answered.
func NewFetchError(upstreamStatus int, message string, err error) *Error {
	status := upstreamStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = MsgFetchFailedPlain
	}
	return NewError(ErrCodeFetchFailed, message, status, err)
}

// NewFetchTimeoutError reports a fetch that hit its deadline.
func NewFetchTimeoutError(message string, err error) *Error {
	return NewError(ErrCodeFetchTimeout, message, http.StatusInternalServerError, err)
}

// NewExtractionError reports that no usable recipe could be assembled.
func NewExtractionError() *Error {
	return NewError(ErrCodeExtraction, MsgManualEntry, http.StatusUnprocessableEntity, nil)
}

// ParseError marks malformed structured data. It is recovered locally by
// falling back to markup heuristics and never reaches API callers.
type ParseError struct {
	Source string // e.g. "json-ld"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports an unknown resource.
func NewNotFoundError(message string) *Error {
	return NewError(ErrCodeNotFound, message, http.StatusNotFound, nil)
}

// NewConflictError reports an operation the resource's current state forbids.
func NewConflictError(message string) *Error {
	return NewError(ErrCodeConflict, message, http.StatusConflict, nil)
}

// NewInvalidTokenError reports an approval token that is no longer pending
// or has expired.
func NewInvalidTokenError() *Error {
	return NewError(ErrCodeInvalidToken, MsgInvalidToken, http.StatusGone, nil)
}
