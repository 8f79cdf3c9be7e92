package auth

import (
	"errors"
)

var (
	// ErrInvalidInput is wrapped by every client-correctable validation error.
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	ErrUserExists     = errors.New("user already exists")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrBadCode        = errors.New("incorrect verification code")
	ErrSessionClosed  = errors.New("session already finished")
	ErrStorageFailure = errors.New("storage failure")

	ErrWorkerClosed = errors.New("auth worker closed")
)

// UserMessage renders err for display. Infrastructure faults get a generic
// text; internal error details never reach the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredentials):
		return "Email and password are required"
	case errors.Is(err, ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, ErrWeakPassword):
		return "Password must be at least 8 characters and contain a capital letter, a lowercase letter, a number and a symbol (@#$%^&+=!)"
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, ErrUserExists):
		return "User already exists - Please log in"
	case errors.Is(err, ErrBadCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrBadCode):
		return "Incorrect verification code"
	case errors.Is(err, ErrSessionClosed):
		return "Verification already attempted - Please log in again"
	default:
		return "Something went wrong - Please try again"
	}
}
