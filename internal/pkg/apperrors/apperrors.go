package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error so handlers can map it to an HTTP
// status without inspecting message text.
type Kind int

const (
	Internal Kind = iota
	NotFound
	InvalidArgument
	Forbidden
	Unauthenticated
	Conflict
)

// Error is a kinded application error with a stable, user-visible message.
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

// New builds an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a kinded error. The cause is never
// surfaced to callers, only the message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Internal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the user-visible message for err. Untyped errors collapse
// to a generic message so internal failure text never leaks.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case NotFound:
		return fiber.StatusNotFound
	case InvalidArgument:
		return fiber.StatusBadRequest
	case Forbidden:
		return fiber.StatusForbidden
	case Unauthenticated:
		return fiber.StatusUnauthorized
	case Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
