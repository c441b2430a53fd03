package schema

import "fmt"

// ErrorCode classifies a schema compilation failure.
type ErrorCode string

// Compilation error codes.
const (
	CodeMissingDescription     ErrorCode = "missing_description"
	CodeUnsupportedUnion       ErrorCode = "unsupported_union"
	CodeUntypedSequence        ErrorCode = "untyped_sequence"
	CodeUnsupportedType        ErrorCode = "unsupported_type"
	CodeConflictingRequirement ErrorCode = "conflicting_requirement"
	CodeDuplicateParameter     ErrorCode = "duplicate_parameter"
	CodeMissingName            ErrorCode = "missing_name"
)

// Sentinels for errors.Is.
var (
	ErrMissingDescription     = &Error{Code: CodeMissingDescription}
	ErrUnsupportedUnion       = &Error{Code: CodeUnsupportedUnion}
	ErrUntypedSequence        = &Error{Code: CodeUntypedSequence}
	ErrUnsupportedType        = &Error{Code: CodeUnsupportedType}
	ErrConflictingRequirement = &Error{Code: CodeConflictingRequirement}
	ErrDuplicateParameter     = &Error{Code: CodeDuplicateParameter}
	ErrMissingName            = &Error{Code: CodeMissingName}
)

// Error is a schema compilation failure. Compilation errors are programming
// errors in a tool definition and are never retryable.
type Error struct {
	Code    ErrorCode
	Path    string // parameter or field path, e.g. "data.rates"
	Type    string // identity of the offending type, if any
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Type != "" {
		msg = fmt.Sprintf("%s (got %s)", msg, e.Type)
	}
	if e.Path == "" {
		return "schema: " + msg
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, msg)
}

// Is implements errors.Is comparison by error code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code ErrorCode, path string, t *Type, msg string) *Error {
	e := &Error{Code: code, Path: path, Message: msg}
	if t != nil {
		e.Type = t.String()
	}
	return e
}

// NewError creates a compilation error for the given path.
func NewError(code ErrorCode, path, msg string) *Error {
	return &Error{Code: code, Path: path, Message: msg}
}
