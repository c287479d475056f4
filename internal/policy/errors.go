package policy

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies every failure the API can surface. The set is closed:
// handlers map kinds to HTTP statuses in exactly one place.
type Kind int

const (
	KindUnauthenticated Kind = iota // no or invalid credential
	KindForbidden                   // valid identity, insufficient role/relationship
	KindNotFound                    // referenced entity absent
	KindConflict                    // uniqueness/duplicate violation
	KindInvalidState                // missing precondition or inconsistent filter
	KindValidation                  // malformed input
)

// Error carries a kind plus a message naming the specific entity involved.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }
func InvalidState(msg string) *Error    { return &Error{Kind: KindInvalidState, Message: msg} }
func Validation(msg string) *Error      { return &Error{Kind: KindValidation, Message: msg} }

// KindOf reports the kind of a policy error, and whether err is one.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// Status maps an error to its externally-visible HTTP status. Anything that
// is not a policy error is an internal failure.
func Status(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch kind {
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindInvalidState:
		return fiber.StatusBadRequest
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
