package protocol

import (
	"errors"
	"fmt"
)

// Call error codes.
const (
	CodeInvalidRequest   = -32600
	CodeUnknownTool      = -32601
	CodeInvalidArguments = -32602
	CodeInternalError    = -32603
)

// Policy error codes.
const (
	CodeForbidden   = -32002
	CodeRateLimited = -32003
)

// Error is a tool invocation failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("toolschema: %s (code: %d)", e.Message, e.Code)
}

// Is implements errors.Is comparison by error code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithData returns a copy of the error with additional data attached.
func (e *Error) WithData(data any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Data:    data,
	}
}

// IsCode reports whether err wraps a *Error with the given code.
func IsCode(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// Sentinels for errors.Is.
var (
	ErrInvalidRequest   = &Error{Code: CodeInvalidRequest}
	ErrUnknownTool      = &Error{Code: CodeUnknownTool}
	ErrInvalidArguments = &Error{Code: CodeInvalidArguments}
	ErrInternal         = &Error{Code: CodeInternalError}
	ErrForbidden        = &Error{Code: CodeForbidden}
	ErrRateLimited      = &Error{Code: CodeRateLimited}
)

// NewInvalidRequest creates an invalid request error (-32600).
func NewInvalidRequest(msg string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: msg}
}

// NewUnknownTool creates an unknown tool error (-32601).
func NewUnknownTool(name string) *Error {
	return &Error{Code: CodeUnknownTool, Message: fmt.Sprintf("unknown tool: %s", name)}
}

// NewInvalidArguments creates an invalid arguments error (-32602).
func NewInvalidArguments(msg string) *Error {
	return &Error{Code: CodeInvalidArguments, Message: msg}
}

// NewInternalError creates an internal error (-32603).
func NewInternalError(msg string) *Error {
	return &Error{Code: CodeInternalError, Message: msg}
}

// NewForbidden creates a forbidden error (-32002).
func NewForbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NewRateLimited creates a rate limited error (-32003).
func NewRateLimited(msg string) *Error {
	return &Error{Code: CodeRateLimited, Message: msg}
}
