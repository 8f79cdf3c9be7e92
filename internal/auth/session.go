package auth

import (
	"crypto/subtle"
	"fmt"
	"sync"
	"time"
)

// State is a step of a single login attempt.
type State int

const (
	StateIdle State = iota
	StateCredentialsSubmitted
	StateAwaitingCode
	StateAuthenticated
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCredentialsSubmitted:
		return "credentials_submitted"
	case StateAwaitingCode:
		return "awaiting_code"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is one login attempt. It holds the pending verification code, if
// any, in memory only.
type Session struct {
	mu        sync.Mutex
	id        string
	email     string
	state     State
	code      string
	issuedAt  time.Time
	ttl       time.Duration
	now       func() time.Time
	delivered bool
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Email is the authenticated account, or "" before authentication.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return ""
	}
	return s.email
}

// CodeDelivered reports whether the verification code was handed to the
// gateway. Always false for sessions that needed no code.
func (s *Session) CodeDelivered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered
}

// Verify checks the entered code. Only one attempt is allowed; later calls
// return ErrSessionClosed.
func (s *Session) Verify(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingCode {
		return ErrSessionClosed
	}
	expected := s.code
	s.code = ""

	if s.ttl > 0 && s.now().Sub(s.issuedAt) > s.ttl {
		s.state = StateRejected
		return fmt.Errorf("%w: code expired", ErrBadCode)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(expected)) != 1 {
		s.state = StateRejected
		return ErrBadCode
	}
	s.state = StateAuthenticated
	return nil
}
