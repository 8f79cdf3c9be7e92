// Package models defines the records persisted in the local store.
package models

// User is one credential record. Email is the identity key and never changes
// after creation; PasswordHash is a digest, never the plaintext.
type User struct {
	Email            string
	PasswordHash     string
	Phone            string
	TwoFactorEnabled bool
}
