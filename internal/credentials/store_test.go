package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/cryptox"
	"github.com/dmitrijs2005/stockkeeper/internal/dbx"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/users"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

func newStore(t *testing.T, h cryptox.Hasher) (*Store, *sql.DB) {
	t.Helper()
	m := storage.NewSQLiteRepositoryManager(logging.Nop())
	db, err := storage.Open(context.Background(), ":memory:", m)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, m, h, logging.Nop()), db
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("no entropy") }

func TestCreateAccount_StoresDigestNotPlaintext(t *testing.T) {
	s, db := newStore(t, cryptox.SHA256Hasher{})
	ctx := context.Background()

	require.NoError(t, s.CreateAccount(ctx, "a@b.co", "Abcdef1!", "5551234"))

	var stored string
	var twoFA bool
	require.NoError(t, db.QueryRow(`SELECT password_hash, two_fa_enabled FROM users WHERE email = ?`, "a@b.co").Scan(&stored, &twoFA))
	want, _ := cryptox.SHA256Hasher{}.Hash("Abcdef1!")
	assert.Equal(t, want, stored)
	assert.NotEqual(t, "Abcdef1!", stored)
	assert.False(t, twoFA)
}

func TestCreateAccount_Duplicate(t *testing.T) {
	s, _ := newStore(t, cryptox.SHA256Hasher{})
	ctx := context.Background()

	require.NoError(t, s.CreateAccount(ctx, "a@b.co", "Abcdef1!", "5551234"))
	err := s.CreateAccount(ctx, "a@b.co", "Other1!x", "5550000")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	ok, err := s.VerifyCredentials(ctx, "a@b.co", "Abcdef1!")
	require.NoError(t, err)
	assert.True(t, ok, "original record must be unchanged")
}

func TestCreateAccount_HashingFailureWritesNothing(t *testing.T) {
	s, _ := newStore(t, failingHasher{})
	ctx := context.Background()

	err := s.CreateAccount(ctx, "a@b.co", "Abcdef1!", "5551234")
	assert.ErrorIs(t, err, ErrHashingFailure)

	ok, err := s.Exists(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCredentials(t *testing.T) {
	s, _ := newStore(t, cryptox.SHA256Hasher{})
	ctx := context.Background()
	require.NoError(t, s.CreateAccount(ctx, "a@b.co", "Abcdef1!", "5551234"))

	ok, err := s.VerifyCredentials(ctx, "a@b.co", "Abcdef1!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyCredentials(ctx, "a@b.co", "abcdef1!")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.VerifyCredentials(ctx, "nobody@b.co", "Abcdef1!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPhoneAndTwoFactor(t *testing.T) {
	s, _ := newStore(t, cryptox.SHA256Hasher{})
	ctx := context.Background()
	require.NoError(t, s.CreateAccount(ctx, "a@b.co", "Abcdef1!", "5551234"))

	phone, err := s.GetPhoneNumber(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "5551234", phone)

	_, err = s.GetPhoneNumber(ctx, "nobody@b.co")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.False(t, s.IsTwoFactorEnabled(ctx, "a@b.co"))
	require.NoError(t, s.SetTwoFactorEnabled(ctx, "a@b.co", true))
	require.NoError(t, s.SetTwoFactorEnabled(ctx, "a@b.co", true))
	assert.True(t, s.IsTwoFactorEnabled(ctx, "a@b.co"))

	require.NoError(t, s.SetTwoFactorEnabled(ctx, "nobody@b.co", true))
	assert.False(t, s.IsTwoFactorEnabled(ctx, "nobody@b.co"))
}

// raceManager makes Exists report false so the insert hits the primary key,
// the same outcome as two registrations racing past the existence check.
type raceManager struct {
	storage.RepositoryManager
}

func (m raceManager) Users(db dbx.DBTX) users.Repository {
	return blindUsers{Repository: m.RepositoryManager.Users(db)}
}

type blindUsers struct{ users.Repository }

func (blindUsers) Exists(context.Context, string) (bool, error) { return false, nil }

func TestCreateAccount_PrimaryKeyBackstop(t *testing.T) {
	m := storage.NewSQLiteRepositoryManager(logging.Nop())
	db, err := storage.Open(context.Background(), ":memory:", m)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	require.NoError(t, m.Users(db).Create(ctx, &models.User{Email: "a@b.co", PasswordHash: "h"}))

	s := NewStore(db, raceManager{m}, cryptox.SHA256Hasher{}, nil)
	err = s.CreateAccount(ctx, "a@b.co", "Abcdef1!", "5551234")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
