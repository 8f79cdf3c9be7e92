package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// RegistrationRequest carries the registration form.
type RegistrationRequest struct {
	Email           string `validate:"required,account_email"`
	Password        string `validate:"required,strong_password"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Phone           string `validate:"required"`
}

// LoginRequest carries the login form. Only presence is checked.
type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

const passwordSymbols = "@#$%^&+=!"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	return v
}

// isStrongPassword requires at least 8 characters with an upper case letter,
// a lower case letter, a digit and one of passwordSymbols, and no whitespace.
func isStrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// validateRegistration reports the first failing rule in priority order:
// missing fields, email format, password policy, confirmation.
func validateRegistration(req RegistrationRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingFields)
		}
		failed[fe.Field()] = true
	}
	switch {
	case failed["Email"]:
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidEmail)
	case failed["Password"]:
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrWeakPassword)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrPasswordMismatch)
	}
}

func validateLogin(req LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrInvalidInput, ErrMissingFields, ErrMissingCredentials)
	}
	return nil
}
