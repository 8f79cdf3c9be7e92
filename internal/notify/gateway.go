// Package notify delivers short text messages to a phone number.
package notify

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

var (
	ErrNoDestination = errors.New("empty destination")
	ErrNotConfigured = errors.New("gateway not configured")
)

// Gateway sends body to destination. A nil error means the message was
// handed off, not that it was received.
type Gateway interface {
	Send(ctx context.Context, destination, body string) error
}

// TrySend sends through gw and reports whether the hand-off succeeded.
// Failures are logged, never returned. The body is not logged since it may
// carry a verification code.
func TrySend(ctx context.Context, gw Gateway, log logging.Logger, destination, body string) bool {
	if gw == nil {
		log.Warn(ctx, "no notification gateway, message dropped")
		return false
	}
	if err := gw.Send(ctx, destination, body); err != nil {
		log.Warn(ctx, "notification not sent", "error", err)
		return false
	}
	return true
}

// MaskPhone hides all but the last four digits of phone, for logging.
func MaskPhone(phone string) string {
	digits := onlyDigits(phone)
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
