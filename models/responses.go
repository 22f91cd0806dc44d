package models

import "time"

// Error codes carried in the error_code field of [APIResponse].
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeValidationError     = "VALIDATION_ERROR"
	ErrCodeIntegrityError      = "INTEGRITY_ERROR"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// APIResponse is the uniform envelope wrapping every payload the API
// returns, success or error.
//
// Success responses fill Success/Data/Message/Timestamp. Error responses
// additionally carry ErrorCode and, when useful, Details and field-level
// Errors. Data stays present (null) on errors so clients can decode both
// variants with one shape.
type APIResponse struct {
	Success   bool              `json:"success"`
	Data      any               `json:"data"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	ErrorCode string            `json:"error_code,omitempty"`
	Details   map[string]any    `json:"details,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one field-level violation in the errors list of an
// error envelope.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// SuccessResponse builds a success envelope around data.
func SuccessResponse(data any, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// ErrorResponse builds an error envelope with a stable error code.
func ErrorResponse(message, errorCode string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
		ErrorCode: errorCode,
	}
}

// ValidationErrorResponse builds a 422-style envelope listing every
// violated rule, not just the first.
func ValidationErrorResponse(message string, errs []ValidationError) APIResponse {
	response := ErrorResponse(message, ErrCodeValidationError)
	response.Errors = errs
	return response
}
