// Package apperror defines the client-facing error kinds of the catalog service.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvariant
	KindNotFound
	KindAuthorization
	KindAuthentication
)

// Error is a failure whose Message is safe to show to API clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind to the response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvariant:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error     { return &Error{Kind: KindValidation, Message: msg} }
func Invariant(msg string) *Error      { return &Error{Kind: KindInvariant, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Kind: KindNotFound, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Kind: KindAuthorization, Message: msg} }
func Authentication(msg string) *Error { return &Error{Kind: KindAuthentication, Message: msg} }

// Wrap attaches the underlying cause, which is never exposed to clients.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func kindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

func IsValidation(err error) bool     { return kindOf(err) == KindValidation }
func IsInvariant(err error) bool      { return kindOf(err) == KindInvariant }
func IsNotFound(err error) bool       { return kindOf(err) == KindNotFound }
func IsAuthorization(err error) bool  { return kindOf(err) == KindAuthorization }
func IsAuthentication(err error) bool { return kindOf(err) == KindAuthentication }
