package leadscout

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and mappable to the caller's transport
// (HTTP status, CLI exit code). Codes classify errors for control flow:
// EUNAVAILABLE is the only retryable class.
const (
	EINVALID      = "invalid"      // malformed input, template, or response
	EUNAUTHORIZED = "unauthorized" // access token mismatch
	ENOTFOUND     = "not_found"    // named resource does not exist
	EUNAVAILABLE  = "unavailable"  // external service temporarily unavailable
	EINTERNAL     = "internal"     // unexpected internal error
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the machine-readable code and a
// human-readable message.
type Error struct {
	// Code is a machine-readable error code.
	Code string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("leadscout error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL. Returns an empty string for nil errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Otherwise returns a generic message. Returns an empty string for nil errors.
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
