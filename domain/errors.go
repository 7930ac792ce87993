package domain

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failure for the API boundary.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindInternal
)

// StatusCode returns the HTTP status the kind is reported with.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Category is the value of the "error" field in error bodies.
func (k ErrorKind) Category() string {
	return CategoryForStatus(k.StatusCode())
}

// CategoryForStatus maps an HTTP status to the error category string.
func CategoryForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Validation Error"
	case http.StatusUnauthorized:
		return "Authentication Error"
	case http.StatusForbidden:
		return "Authorization Error"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		if status < http.StatusInternalServerError {
			return http.StatusText(status)
		}
		return "Internal Server Error"
	}
}

// AppError is a failure that carries its taxonomy kind and a client-safe message.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewAuthenticationError(message string) error {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func NewAuthorizationError(message string) error {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInternalError wraps err; only message ever reaches the client.
func NewInternalError(message string, err error) error {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError if one is in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
