// Package apperr classifies service failures so handlers can map them to
// HTTP statuses without inspecting message text.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Infrastructure Kind = iota
	NotFound
	Conflict
	Validation
	DomainRule
	NoCriteria
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// StatusCode maps an error to the HTTP status the API responds with.
// Unclassified errors are treated as internal.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case NotFound:
		return http.StatusNotFound
	case Conflict, DomainRule:
		return http.StatusConflict
	case Validation, NoCriteria:
		return http.StatusBadRequest
	case Infrastructure:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
