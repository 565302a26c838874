package service

import (
	"errors"
	"fmt"
)

// Error kinds. The HTTP layer maps each to a status code; everything else
// is a 500.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not_found")
	ErrValidation      = errors.New("validation_failed")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage_failed")
)

// Error pairs a kind with a message that is safe to show the caller. The
// wrapped cause, if any, is for logs only.
type Error struct {
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Fail returns an error of the given kind carrying detail.
func Fail(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap is Fail with an underlying cause.
func Wrap(kind error, detail string, err error) error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Detail returns the caller-facing message of err, or "" if it has none.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
