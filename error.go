package sitecrawl

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be a coarse classification so callers can react to a
// category of failure without inspecting message strings.
const (
	EINVALID     = "invalid"     // malformed input (bad URL, bad record)
	ENOTFOUND    = "not_found"   // resource does not exist
	ETHROTTLED   = "throttled"   // server asked us to back off (HTTP 429)
	EUNAVAILABLE = "unavailable" // upstream failure (non-2xx status, network)
	EINTERNAL    = "internal"    // anything we did not expect
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitecrawl error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode unwraps err and returns its code, or EINTERNAL for errors that
// are not application errors. Returns the empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message, or a generic message for
// errors that are not application errors. Returns the empty string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
