// Package apperr defines the error taxonomy shared by repositories, services
// and handlers. Persistence errors are translated once, at the repository
// boundary, into a stable kind; handlers map kinds to HTTP statuses without
// ever inspecting message text.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	InvalidInput Kind = iota
	Unauthenticated
	Forbidden
	NotFound
	AlreadyExists
	PersistenceFailure
	Internal
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a plain tagged error.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap tags an underlying error while keeping it reachable via errors.Is/As.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind carried by err, or Internal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// FromDB translates a gorm error into a tagged error. notFoundMsg and dupMsg
// name the resource for the two client-facing cases; anything else is a
// persistence failure carrying the cause.
func FromDB(err error, notFoundMsg, dupMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(NotFound, notFoundMsg, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(AlreadyExists, dupMsg, err)
	default:
		return Wrap(PersistenceFailure, "persistence failure", err)
	}
}

// HTTPStatus maps an error to the response status. Untagged errors are
// treated as server faults.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Raw driver errors never
// reach the client; untagged errors collapse to a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Unknown error"
}
