// Package apperr defines the error taxonomy shared by every use case and the
// HTTP layer. Each error carries a Kind that maps to exactly one HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindBadInput           Kind = "bad_input"
	KindInvalidState       Kind = "invalid_state"
	KindGuardrailViolation Kind = "guardrail_violation"
	KindInternal           Kind = "internal"
)

var statusByKind = map[Kind]int{
	KindUnauthenticated:    http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindBadInput:           http.StatusBadRequest,
	KindInvalidState:       http.StatusBadRequest,
	KindGuardrailViolation: http.StatusUnprocessableEntity,
	KindInternal:           http.StatusInternalServerError,
}

// Error is a classified failure. Message is safe to show to API callers;
// Err holds the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, err error) *Error { return &Error{Kind: kind, Message: msg, Err: err} }

func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return New(KindForbidden, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func BadInput(msg string) *Error        { return New(KindBadInput, msg) }
func InvalidState(msg string) *Error    { return New(KindInvalidState, msg) }
func Guardrail(msg string) *Error       { return New(KindGuardrailViolation, msg) }

// Internal hides err behind a generic message.
func Internal(err error) *Error { return Wrap(KindInternal, "internal error", err) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// StatusOf maps any error to an HTTP status; unclassified errors are 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status()
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text an API caller may see. Unclassified and
// internal errors never leak their cause.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Message
	}
	return "internal error"
}
