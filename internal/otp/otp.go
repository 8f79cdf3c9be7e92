// Package otp produces the one-time codes sent for two-factor login.
package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

// Generator yields one-time verification codes.
type Generator interface {
	Generate() (string, error)
}

// RandomGenerator draws six-digit codes uniformly from [100000, 999999].
type RandomGenerator struct {
	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{Rand: rand.Reader}
}

func (g *RandomGenerator) Generate() (string, error) {
	r := g.Rand
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", codeMin+n.Int64()), nil
}

// Fixed always returns the same code.
type Fixed string

func (f Fixed) Generate() (string, error) { return string(f), nil }
