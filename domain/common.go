package domain

import (
	"errors"
)

const (
	RoleUser = "user"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	DateFormat = "2006-01-02"
)

// Error kinds. Every error returned by a service wraps exactly one of these,
// presenters translate the kind into an HTTP status.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedValidation     = "request validation failed"
	MessageInternalError        = "internal server error"

	ErrParseUUID         = NewError(ErrValidation, "failed to parse UUID")
	ErrUserNotAllowed    = NewError(ErrForbidden, "user not allowed")
	ErrTokenNotFound     = NewError(ErrUnauthenticated, "failed to token not found")
	ErrTokenInvalid      = NewError(ErrUnauthenticated, "token is invalid")
	ErrTokenExpired      = NewError(ErrUnauthenticated, "token is expired")
	ErrStorageNotEnabled = NewError(ErrValidation, "image storage is not configured")
	ErrInvalidImage      = NewFieldError(ErrValidation, "image", "image must be a jpg, jpeg, png or webp file")
)

type (
	// Error is a domain error carrying its kind and, for validation
	// failures, the request field it refers to.
	Error struct {
		kind    error
		Field   string
		Message string
	}

	PaginationRequest struct {
		Page  int `query:"page"`
		Limit int `query:"limit"`
	}
)

func NewError(kind error, message string) *Error {
	return &Error{kind: kind, Message: message}
}

func NewFieldError(kind error, field, message string) *Error {
	return &Error{kind: kind, Field: field, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Offset returns the row offset; zero values mean "everything".
func (p PaginationRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
