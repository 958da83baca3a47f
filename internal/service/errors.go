package service

import (
	"errors"
	"fmt"

	"github.com/Baaaki/resume-backend/internal/models"
)

// Error kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownIdentity    = errors.New("unknown identity")
)

// Error is a business error with a client-safe message.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func duplicate(format string, args ...any) error {
	return newError(ErrDuplicate, format, args...)
}

func invalid(fields models.FieldErrors) error {
	return &Error{Kind: ErrValidation, Message: "Invalid input parameters", Fields: fields}
}

func invalidf(field, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: ErrValidation, Message: msg, Fields: map[string]string{field: msg}}
}

func conflict(entity string, id uint) error {
	return newError(ErrConflict, "%s with id %d was modified by another request, reload and retry", entity, id)
}
