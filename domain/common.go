package domain

import (
	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedBodyRequest    = "Invalid request body"
	MessageFailedProcessRequest = "An unexpected error occurred"
	MessageRouteNotFound        = "The requested resource was not found"
	MessageTooManyRequests      = "Too many requests, please slow down"

	MessageTokenRequired    = "Access token is required"
	MessageTokenExpired     = "Token expired. Please log in again."
	MessageTokenInvalid     = "Invalid token"
	MessageNotAuthenticated = "User not authenticated"
	MessageUserNotAllowed   = "You do not have permission to perform this action"

	ErrTokenNotFound    = NewAuthenticationError(MessageTokenRequired)
	ErrTokenExpired     = NewAuthenticationError(MessageTokenExpired)
	ErrTokenInvalid     = NewAuthenticationError(MessageTokenInvalid)
	ErrNotAuthenticated = NewAuthenticationError(MessageNotAuthenticated)
	ErrUserNotAllowed   = NewAuthorizationError(MessageUserNotAllowed)
)

// Identity is the decoded content of a verified token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// ParseID parses a path id, reporting a malformed one as a validation failure.
func ParseID(id string, invalid error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, invalid
	}
	return parsed, nil
}
