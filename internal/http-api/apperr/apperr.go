// Package apperr defines the tagged error type shared by the service and
// handler layers. Every domain failure carries a Kind so the HTTP layer can
// pick a status code without string-matching error text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindNotFound           Kind = "NotFoundError"
	KindInsufficientCopies Kind = "InsufficientCopiesError"
	KindStore              Kind = "StoreError"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func InsufficientCopies(msg string) *Error {
	return &Error{Kind: KindInsufficientCopies, Msg: msg}
}

func Store(msg string, err error) *Error {
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, unwrapping as needed.
// Unknown errors are treated as store-level failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// HTTPStatus maps an error kind to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInsufficientCopies:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
