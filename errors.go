package webinsight

import (
	"errors"
	"fmt"
)

// Application error codes. These map errors to user-facing conditions
// without leaking implementation details across package boundaries.
const (
	EINVALID      = "invalid"       // validation failed
	ENOTFOUND     = "not_found"     // entity does not exist
	ETIMEOUT      = "timeout"       // operation exceeded its deadline
	EUNAVAILABLE  = "unavailable"   // external collaborator failed
	ERATELIMIT    = "rate_limit"    // request rejected by a rate limiter
	EUNAUTHORIZED = "unauthorized"  // missing or invalid credentials
	EINTERNAL     = "internal"      // internal error
)

// Error represents an application-specific error. Errors carry a machine
// readable code and a human readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human readable description safe to show to an end user.
	Message string
}

// Error implements the error interface. Not meant for end users; use
// ErrorMessage for user-facing output.
func (e *Error) Error() string {
	return fmt.Sprintf("webinsight error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
