package members

import "net/http"

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "MEMBER_NOT_FOUND"
	CodeLoginRequired = "LOGIN_REQUIRED"
	CodeIdemReused    = "IDEMPOTENCY_KEY_REUSED"
)

func validationError(message, field, reason string) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: message,
		Details: map[string]any{field: reason},
	}
}

func notFoundError() *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: "member not found"}
}
