package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "All fields are required", UserMessage(fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingFields)))
	assert.Equal(t, "Invalid email format", UserMessage(fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidEmail)))
	assert.Equal(t, "Passwords do not match", UserMessage(ErrPasswordMismatch))
	assert.Equal(t, "User already exists - Please log in", UserMessage(ErrUserExists))
	assert.Equal(t, "Invalid email or password", UserMessage(ErrBadCredentials))
	assert.Equal(t, "Incorrect verification code", UserMessage(fmt.Errorf("%w: code expired", ErrBadCode)))

	internal := fmt.Errorf("%w: %v", ErrStorageFailure, errors.New("SQLITE_BUSY"))
	assert.Equal(t, "Something went wrong - Please try again", UserMessage(internal))
}
