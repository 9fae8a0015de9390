package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable class of a failed store operation.
//
// It is surfaced to GraphQL clients as `extensions.code`, so the values are
// part of the public API.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindConstraintViolation Kind = "CONSTRAINT_VIOLATION"
	KindConnectionFailure   Kind = "CONNECTION_FAILURE"
	KindInvalidArgument     Kind = "INVALID_ARGUMENT"
	KindInternal            Kind = "INTERNAL"
)

// Error is a typed operation failure returned by the repository and
// service layers.
//
// Fields:
//   - Kind: coarse class used by clients to branch (see the Kind constants).
//   - Code: finer machine code, e.g. "CATEGORY_ALREADY_EXISTS". Optional.
//   - Message: human-readable message, safe to show to clients.
//   - Field: the argument or column the error relates to. Optional.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Field   string

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the driver error for errors.Is / errors.As and for logging.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Kind. A target without a Kind matches
// every *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// Extensions is read by the GraphQL executor and rendered under
// `errors[].extensions`.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code": string(e.Kind),
	}
	if e.Code != "" {
		ext["detail_code"] = e.Code
	}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

// HTTPStatus maps the kind onto the closest HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConstraintViolation, KindInvalidArgument:
		return http.StatusBadRequest
	case KindConnectionFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithCause returns a copy of e that wraps err.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.cause = err
	return &cp
}

// KindOf reports the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// NotFound reports that no row of the named entity matched.
func NotFound(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    MakeUpperCaseWithUnderscores(entity) + "_NOT_FOUND",
		Message: fmt.Sprintf("%s not found", entity),
	}
}

// ConstraintViolation reports a rejected write.
func ConstraintViolation(code, message, field string) *Error {
	return &Error{
		Kind:    KindConstraintViolation,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// ConnectionFailure reports that the store could not be reached.
func ConnectionFailure(cause error) *Error {
	return &Error{
		Kind:    KindConnectionFailure,
		Message: "The data store is unavailable",
		cause:   cause,
	}
}

// InvalidArgument reports a caller-supplied value that cannot be used.
func InvalidArgument(field, message string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: message,
		Field:   field,
	}
}

// Internal hides cause behind a generic message.
func Internal(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "An error occurred while processing your request",
		cause:   cause,
	}
}
