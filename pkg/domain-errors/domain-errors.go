// Package domainerrors classifies failures by what went wrong for the caller,
// leaving the HTTP status choice to the transport layer.
package domainerrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_failed"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal_error"
)

// Error is a failure with a stable Code. Message is what clients see.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code, so errors.Is(err, &Error{Code: c})
// works as a code check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NotFound builds a not-found error with a formatted message.
func NotFound(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(msg string) error {
	return &Error{Code: CodeBadRequest, Message: msg}
}

// Internal wraps an infrastructure failure and exposes its text as the
// message. Store errors reach clients verbatim.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: CodeInternal, Message: err.Error(), Err: err}
}

// Wrap attaches msg to err. A domain code already present in err's chain is
// kept; otherwise code applies.
func Wrap(err error, code Code, msg string) error {
	if inner := CodeOf(err); inner != "" {
		code = inner
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
