// Package auth drives registration and login, including the optional SMS
// one-time-code challenge.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/stockkeeper/internal/credentials"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/notify"
	"github.com/dmitrijs2005/stockkeeper/internal/otp"
)

// CredentialStore is the part of credentials.Store the controller needs.
type CredentialStore interface {
	CreateAccount(ctx context.Context, email, password, phone string) error
	VerifyCredentials(ctx context.Context, email, password string) (bool, error)
	GetPhoneNumber(ctx context.Context, email string) (string, error)
	IsTwoFactorEnabled(ctx context.Context, email string) bool
}

type Controller struct {
	store        CredentialStore
	codes        otp.Generator
	gateway      notify.Gateway
	log          logging.Logger
	worker       *Worker
	challengeTTL time.Duration
	now          func() time.Time
}

type Option func(*Controller)

// WithChallengeTTL bounds how long a verification code stays valid.
// Zero disables the bound.
func WithChallengeTTL(d time.Duration) Option {
	return func(c *Controller) { c.challengeTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(store CredentialStore, codes otp.Generator, gw notify.Gateway, log logging.Logger, opts ...Option) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	c := &Controller{
		store:   store,
		codes:   codes,
		gateway: gw,
		log:     log.With("component", "auth"),
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.worker = NewWorker(c.log)
	return c
}

// Close stops the background worker after pending attempts finish.
func (c *Controller) Close() {
	c.worker.Close()
}

// Register validates req and creates the account. Success does not log the
// user in.
func (c *Controller) Register(ctx context.Context, req RegistrationRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validateRegistration(req); err != nil {
		return err
	}

	err := c.store.CreateAccount(ctx, req.Email, req.Password, req.Phone)
	switch {
	case err == nil:
		c.log.Info(ctx, "registered")
		return nil
	case errors.Is(err, credentials.ErrAlreadyExists):
		return ErrUserExists
	default:
		c.log.Error(ctx, "registration failed", "error", err)
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
}

// Login checks credentials. When smsEnabled is set and the account has
// two-factor enabled, the returned session awaits a code that was sent to
// the account's phone; otherwise it is already authenticated.
func (c *Controller) Login(ctx context.Context, req LoginRequest, smsEnabled bool) (*Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateLogin(req); err != nil {
		return nil, err
	}

	s := &Session{
		id:    uuid.NewString(),
		email: req.Email,
		state: StateCredentialsSubmitted,
		ttl:   c.challengeTTL,
		now:   c.now,
	}
	log := c.log.With("session_id", s.id)

	ok, err := c.store.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		s.state = StateRejected
		log.Error(ctx, "credential check failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if !ok {
		s.state = StateRejected
		log.Info(ctx, "login rejected")
		return nil, ErrBadCredentials
	}

	if !smsEnabled || !c.store.IsTwoFactorEnabled(ctx, req.Email) {
		s.state = StateAuthenticated
		log.Info(ctx, "login succeeded")
		return s, nil
	}

	code, err := c.codes.Generate()
	if err != nil {
		s.state = StateRejected
		log.Error(ctx, "code generation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.code = code
	s.issuedAt = c.now()
	s.state = StateAwaitingCode

	phone, err := c.store.GetPhoneNumber(ctx, req.Email)
	if err != nil {
		log.Warn(ctx, "no phone number for verification code", "error", err)
	} else {
		s.delivered = notify.TrySend(ctx, c.gateway, log, phone, "Your verification code is: "+code)
	}
	log.Info(ctx, "verification code issued", "delivered", s.delivered)
	return s, nil
}

// Result is the outcome of an asynchronous attempt. Session is nil for
// registrations and for failed logins.
type Result struct {
	Session *Session
	Err     error
}

// RegisterAsync runs Register on the controller's worker. The returned
// channel receives exactly one Result.
func (c *Controller) RegisterAsync(ctx context.Context, req RegistrationRequest) <-chan Result {
	return c.submit(ctx, func(ctx context.Context) Result {
		return Result{Err: c.Register(ctx, req)}
	})
}

// LoginAsync runs Login on the controller's worker.
func (c *Controller) LoginAsync(ctx context.Context, req LoginRequest, smsEnabled bool) <-chan Result {
	return c.submit(ctx, func(ctx context.Context) Result {
		s, err := c.Login(ctx, req, smsEnabled)
		return Result{Session: s, Err: err}
	})
}

// submit queues fn. Submitted work is not cancelled with ctx: it runs to
// completion and the result sits in the buffered channel if nobody reads it.
func (c *Controller) submit(ctx context.Context, fn func(context.Context) Result) <-chan Result {
	out := make(chan Result, 1)
	detached := context.WithoutCancel(ctx)
	err := c.worker.Submit(func() {
		res := Result{Err: ErrStorageFailure}
		defer func() { out <- res }()
		res = fn(detached)
	})
	if err != nil {
		out <- Result{Err: err}
	}
	return out
}
