// Package settings exposes the installation's alert and login preferences
// and enforces the rules that tie them together.
package settings

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/alerts"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/session"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

var (
	ErrSMSDisabled       = errors.New("sms notifications are disabled")
	ErrNegativeThreshold = fmt.Errorf("%w: threshold cannot be negative", common.ErrorValidation)
	ErrNoSession         = errors.New("no active session")
)

const sessionSecretSize = 32

// TwoFactorStore is the per-account two-factor flag.
type TwoFactorStore interface {
	SetTwoFactorEnabled(ctx context.Context, email string, enabled bool) error
	IsTwoFactorEnabled(ctx context.Context, email string) bool
}

type Service struct {
	db          *sql.DB
	repomanager storage.RepositoryManager
	accounts    TwoFactorStore
	secret      []byte
	sessionTTL  time.Duration
	log         logging.Logger
}

// NewService builds the service. An empty secret makes the service sign
// sessions with a random key kept in the settings table.
func NewService(db *sql.DB, m storage.RepositoryManager, accounts TwoFactorStore, secret []byte, sessionTTL time.Duration, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{
		db:          db,
		repomanager: m,
		accounts:    accounts,
		secret:      secret,
		sessionTTL:  sessionTTL,
		log:         log.With("component", "settings"),
	}
}

// Policy reads the alert configuration. Unset values take their defaults:
// SMS off, notify-at-zero off, threshold common.DefaultMinimumInventory.
func (s *Service) Policy(ctx context.Context) (alerts.Policy, error) {
	all, err := s.repomanager.Settings(s.db).List(ctx)
	if err != nil {
		return alerts.Policy{}, err
	}
	return alerts.Policy{
		SMSEnabled:       s.parseBool(ctx, common.KeySMSEnabled, all[common.KeySMSEnabled]),
		NotifyAtZero:     s.parseBool(ctx, common.KeyNotifyAtZero, all[common.KeyNotifyAtZero]),
		MinimumThreshold: s.parseInt(ctx, common.KeyMinimumInventory, all[common.KeyMinimumInventory], common.DefaultMinimumInventory),
	}, nil
}

func (s *Service) SMSEnabled(ctx context.Context) (bool, error) {
	v, err := s.repomanager.Settings(s.db).Get(ctx, common.KeySMSEnabled)
	if err != nil {
		return false, err
	}
	return s.parseBool(ctx, common.KeySMSEnabled, v), nil
}

// SetSMSEnabled toggles SMS. Turning it off also turns off two-factor login
// for owner, when owner is known.
func (s *Service) SetSMSEnabled(ctx context.Context, owner string, enabled bool) error {
	if err := s.setBool(ctx, common.KeySMSEnabled, enabled); err != nil {
		return err
	}
	if !enabled && owner != "" {
		if err := s.accounts.SetTwoFactorEnabled(ctx, owner, false); err != nil {
			return err
		}
	}
	return nil
}

// SetTwoFactor enables or disables two-factor login for owner. Enabling
// requires SMS.
func (s *Service) SetTwoFactor(ctx context.Context, owner string, enabled bool) error {
	if enabled {
		on, err := s.SMSEnabled(ctx)
		if err != nil {
			return err
		}
		if !on {
			return ErrSMSDisabled
		}
	}
	return s.accounts.SetTwoFactorEnabled(ctx, owner, enabled)
}

func (s *Service) TwoFactorEnabled(ctx context.Context, owner string) bool {
	return s.accounts.IsTwoFactorEnabled(ctx, owner)
}

// SetNotifyAtZero toggles out-of-stock alerts. Enabling requires SMS.
func (s *Service) SetNotifyAtZero(ctx context.Context, enabled bool) error {
	if enabled {
		on, err := s.SMSEnabled(ctx)
		if err != nil {
			return err
		}
		if !on {
			return ErrSMSDisabled
		}
	}
	return s.setBool(ctx, common.KeyNotifyAtZero, enabled)
}

func (s *Service) SetMinimumThreshold(ctx context.Context, n int) error {
	if n < 0 {
		return ErrNegativeThreshold
	}
	return s.repomanager.Settings(s.db).Set(ctx, common.KeyMinimumInventory, []byte(strconv.Itoa(n)))
}

// SaveSession remembers email as the logged-in account.
func (s *Service) SaveSession(ctx context.Context, email string) error {
	key, err := s.signingKey(ctx)
	if err != nil {
		return err
	}
	token, err := session.GenerateToken(email, key, s.sessionTTL)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	return s.repomanager.Settings(s.db).Set(ctx, common.KeySessionToken, []byte(token))
}

// CurrentSession returns the remembered account. An expired or tampered
// marker is removed and reported as ErrNoSession.
func (s *Service) CurrentSession(ctx context.Context) (string, error) {
	raw, err := s.repomanager.Settings(s.db).Get(ctx, common.KeySessionToken)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", ErrNoSession
	}
	key, err := s.signingKey(ctx)
	if err != nil {
		return "", err
	}
	email, err := session.EmailFromToken(string(raw), key)
	if err != nil {
		s.log.Info(ctx, "discarding stored session", "reason", err)
		if cerr := s.ClearSession(ctx); cerr != nil {
			return "", cerr
		}
		return "", ErrNoSession
	}
	return email, nil
}

// signingKey returns the configured secret or, when none is configured, the
// installation's own random key, generating and storing it on first use.
func (s *Service) signingKey(ctx context.Context) ([]byte, error) {
	if len(s.secret) > 0 {
		return s.secret, nil
	}
	repo := s.repomanager.Settings(s.db)
	key, err := repo.Get(ctx, common.KeySessionSecret)
	if err != nil {
		return nil, err
	}
	if len(key) > 0 {
		return key, nil
	}

	key = make([]byte, sessionSecretSize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	if err := repo.Set(ctx, common.KeySessionSecret, key); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "generated session secret")
	return key, nil
}

func (s *Service) ClearSession(ctx context.Context) error {
	return s.repomanager.Settings(s.db).Delete(ctx, common.KeySessionToken)
}

func (s *Service) setBool(ctx context.Context, key string, v bool) error {
	return s.repomanager.Settings(s.db).Set(ctx, key, []byte(strconv.FormatBool(v)))
}

func (s *Service) parseBool(ctx context.Context, key string, raw []byte) bool {
	if raw == nil {
		return false
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		s.log.Warn(ctx, "malformed setting, using default", "key", key)
		return false
	}
	return v
}

func (s *Service) parseInt(ctx context.Context, key string, raw []byte, def int) int {
	if raw == nil {
		return def
	}
	v, err := strconv.Atoi(string(raw))
	if err != nil || v < 0 {
		s.log.Warn(ctx, "malformed setting, using default", "key", key)
		return def
	}
	return v
}
