package domain

import (
	"errors"
	"time"
)

var (
	MessageFailedRegister   = "An error occurred during registration"
	MessageFailedLogin      = "An error occurred during login"
	MessageFailedGetUser    = "An error occurred while fetching user data"
	MessageRegisterRequired = "Name, email, and password are required"
	MessageLoginRequired    = "Email and password are required"
	MessageInvalidEmail     = "Please provide a valid email address"
	MessagePasswordTooShort = "Password must be at least 8 characters long"
	MessagePasswordTooLong  = "Password must be at most 72 bytes long"

	ErrEmailTaken         = NewConflictError("An account with this email already exists")
	ErrInvalidCredentials = NewAuthenticationError("Invalid email or password")
	ErrUserNotFound       = NewNotFoundError("User not found")
	ErrInvalidUserID      = NewValidationError("Invalid user ID format")

	ErrMailNotConfigured = errors.New("mailer not configured")
)

const (
	MinPasswordLength = 8
	// bcrypt rejects longer inputs
	MaxPasswordBytes = 72
)

type (
	SignupRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt,omitempty"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	MeResponse struct {
		User UserResponse `json:"user"`
	}
)
