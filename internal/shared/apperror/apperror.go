package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"bookstore-catalog/internal/infrastructure/store"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidIdentifier
	KindNotFound
	KindConflict
	KindValidation
)

const (
	CodeInvalidID  = "INVALID_ID"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"

	MsgInternal = "Internal server error"
)

// AppError carries a Kind and the public code/message for the caller. Err is
// the cause; it is never written to the response.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to its status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidIdentifier, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func InvalidID() *AppError {
	return &AppError{Kind: KindInvalidIdentifier, Code: CodeInvalidID, Message: "Invalid identifier format", Err: store.ErrInvalidID}
}

// NotFound wraps a domain sentinel such as ErrBookNotFound.
func NotFound(sentinel error) *AppError {
	return &AppError{Kind: KindNotFound, Code: CodeNotFound, Message: capitalize(sentinel.Error()), Err: sentinel}
}

// Conflict wraps a domain sentinel such as ErrDuplicateAuthorName.
func Conflict(sentinel error) *AppError {
	return &AppError{Kind: KindConflict, Code: CodeConflict, Message: capitalize(sentinel.Error()), Err: sentinel}
}

func Validation(err error) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeValidation, Message: err.Error(), Err: err}
}

func Unexpected(err error) *AppError {
	return &AppError{Kind: KindUnexpected, Code: CodeInternal, Message: MsgInternal, Err: err}
}

// From returns err as an AppError, wrapping anything unclassified as Unexpected.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}

// FromStore translates store errors. notFound is the domain sentinel used when
// the record is absent.
func FromStore(err error, notFound error) *AppError {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return InvalidID()
	case errors.Is(err, store.ErrNotFound):
		return NotFound(notFound)
	default:
		return From(err)
	}
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
