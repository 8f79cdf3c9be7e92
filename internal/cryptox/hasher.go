// Package cryptox turns passwords into the digests kept by the credential
// store. Plaintext is never returned or stored.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrEmptyPepper   = errors.New("argon2id hasher requires a pepper")
	ErrUnknownHasher = errors.New("unknown hasher")
)

// Hasher maps a plaintext password to a deterministic lowercase hex digest.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// SHA256Hasher hashes with unsalted SHA-256.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Argon2Hasher derives a 32-byte argon2id key using an installation-wide
// pepper as the salt.
type Argon2Hasher struct {
	Pepper []byte
}

func (h Argon2Hasher) Hash(plaintext string) (string, error) {
	if len(h.Pepper) == 0 {
		return "", ErrEmptyPepper
	}
	key := argon2.IDKey([]byte(plaintext), h.Pepper, 1, 64*1024, 4, 32)
	return hex.EncodeToString(key), nil
}

// NewHasher picks an implementation by its configuration name.
func NewHasher(name, pepper string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "argon2id", "argon2":
		if pepper == "" {
			return nil, ErrEmptyPepper
		}
		return Argon2Hasher{Pepper: []byte(pepper)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}
