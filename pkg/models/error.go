package models

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	MalformedSize     ErrorCode = "MalformedSize"
	MalformedDuration ErrorCode = "MalformedDuration"
	MalformedRow      ErrorCode = "MalformedRow"
	SourceUnavailable ErrorCode = "SourceUnavailable"
	MissingField      ErrorCode = "MissingRequiredField"
	UnknownFormat     ErrorCode = "UnknownFormat"
	NotFound          ErrorCode = "NotFound"
	OutputWriteFailed ErrorCode = "OutputWriteFailed"
	InternalError     ErrorCode = "InternalError"
)

// BaseError is the error type raised at component boundaries. It
// carries a stable code so callers can distinguish row-level problems
// (collected and reported as warnings) from invocation-level ones, and
// an optional hint advising the user how to fix the input.
type BaseError struct {
	message string
	hint    string
	code    ErrorCode
	cause   error
}

// NewBaseError is a constructor function that creates a new BaseError
// with only the message field set.
func NewBaseError(format string, a ...any) *BaseError {
	return &BaseError{
		message: fmt.Sprintf(format, a...),
		code:    InternalError,
	}
}

// WithHint is a method that sets the hint field of BaseError and
// returns the BaseError itself for chaining.
func (e *BaseError) WithHint(hint string) *BaseError {
	e.hint = hint
	return e
}

// WithCode is a method that sets the code field of BaseError and
// returns the BaseError itself for chaining.
func (e *BaseError) WithCode(code ErrorCode) *BaseError {
	e.code = code
	return e
}

// WithCause is a method that sets the wrapped cause of BaseError and
// returns the BaseError itself for chaining.
func (e *BaseError) WithCause(cause error) *BaseError {
	e.cause = cause
	return e
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *BaseError) Unwrap() error {
	return e.cause
}

// Hint is a method that returns the hint field of BaseError.
func (e *BaseError) Hint() string {
	return e.hint
}

// Code returns a unique code to identify the error.
func (e *BaseError) Code() ErrorCode {
	return e.code
}

// HasCode reports whether err or anything it wraps is a BaseError with
// the given code.
func HasCode(err error, code ErrorCode) bool {
	var baseError *BaseError
	if errors.As(err, &baseError) {
		return baseError.Code() == code
	}
	return false
}
