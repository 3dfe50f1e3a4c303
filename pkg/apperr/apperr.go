package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Authentication Kind = iota + 1 // no or invalid caller identity
	Authorization                  // wrong role or not a participant
	NotFound
	Validation
	InvalidState // illegal transition, e.g. warn before review
	Storage      // unexpected persistence failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or Storage for anything
// that is not an *Error (unclassified failures stay internal).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Storage
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	case InvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
