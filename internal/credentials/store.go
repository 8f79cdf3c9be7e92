// Package credentials keeps user accounts: email identity, password digest,
// phone number and the per-account two-factor flag.
package credentials

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/cryptox"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

var (
	ErrAlreadyExists  = errors.New("account already exists")
	ErrHashingFailure = errors.New("password hashing failed")
)

type Store struct {
	db          *sql.DB
	repomanager storage.RepositoryManager
	hasher      cryptox.Hasher
	log         logging.Logger
}

func NewStore(db *sql.DB, m storage.RepositoryManager, h cryptox.Hasher, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{db: db, repomanager: m, hasher: h, log: log.With("component", "credentials")}
}

// CreateAccount stores a new account with two-factor disabled.
//
// The existence check and the insert are separate statements. Two concurrent
// calls for the same email are settled by the primary key, and the loser also
// gets ErrAlreadyExists.
func (s *Store) CreateAccount(ctx context.Context, email, password, phone string) error {
	repo := s.repomanager.Users(s.db)

	exists, err := repo.Exists(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if exists {
		return ErrAlreadyExists
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}

	err = repo.Create(ctx, &models.User{Email: email, PasswordHash: digest, Phone: phone})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	s.log.Info(ctx, "account created")
	return nil
}

// VerifyCredentials reports whether password matches the stored digest.
// An unknown email is a plain false.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load account: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(user.PasswordHash)) == 1, nil
}

func (s *Store) GetPhoneNumber(ctx context.Context, email string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("failed to load account: %w", err)
	}
	return user.Phone, nil
}

// SetTwoFactorEnabled is idempotent; a missing account is not an error.
func (s *Store) SetTwoFactorEnabled(ctx context.Context, email string, enabled bool) error {
	updated, err := s.repomanager.Users(s.db).SetTwoFactorEnabled(ctx, email, enabled)
	if err != nil {
		return fmt.Errorf("failed to update two-factor flag: %w", err)
	}
	if !updated {
		s.log.Debug(ctx, "two-factor flag not updated, no such account")
	}
	return nil
}

// IsTwoFactorEnabled returns false when the account cannot be read.
func (s *Store) IsTwoFactorEnabled(ctx context.Context, email string) bool {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "failed to read two-factor flag", "error", err)
		}
		return false
	}
	return user.TwoFactorEnabled
}

func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	ok, err := s.repomanager.Users(s.db).Exists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check account: %w", err)
	}
	return ok, nil
}
