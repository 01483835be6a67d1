package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a service error for the transport layer.
type ErrorKind int

const (
	KindInvalid ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnavailable
)

// AppError is a service-level failure that is safe to show to the caller.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

// Is matches another AppError of the same kind and code, so a copy made by
// WithMessage still satisfies errors.Is against its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind && t.Code == e.Code
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: message}
}

func NewAppError(kind ErrorKind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// HTTPStatus maps err to a response status; errors that are not AppErrors are 500s.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
