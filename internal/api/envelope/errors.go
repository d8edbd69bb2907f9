package api

import "net/http"

// FieldError names one offending field in a validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error represents an API error response.
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Status  int          `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// Standard errors
var (
	ErrProjectNotFound = &Error{
		Code:    ErrCodeNotFound,
		Message: "project not found",
		Status:  http.StatusNotFound,
	}

	// ErrDatabase deliberately carries no detail; the underlying error
	// goes to the server log only.
	ErrDatabase = &Error{
		Code:    ErrCodeInternalError,
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}

	// ErrInvalidBody rejects payloads that do not decode as JSON.
	// Undecodable input is a validation failure, same as a payload that
	// decodes but carries bad values.
	ErrInvalidBody = &Error{
		Code:    ErrCodeValidationFailed,
		Message: "invalid request body",
		Status:  http.StatusUnprocessableEntity,
	}
)

// NewBadRequest creates a bad request error with a custom message.
func NewBadRequest(message string) *Error {
	return &Error{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error with a custom message.
func NewNotFound(message string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a 422 error enumerating the offending
// fields.
func NewValidationError(fields []FieldError) *Error {
	msg := "validation failed"
	if len(fields) == 1 {
		msg = "validation failed: " + fields[0].Field + " " + fields[0].Reason
	}
	return &Error{
		Code:    ErrCodeValidationFailed,
		Message: msg,
		Fields:  fields,
		Status:  http.StatusUnprocessableEntity,
	}
}
