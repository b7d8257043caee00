package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid passphrase")

// PassphraseAuthenticator checks a shared passphrase against a bcrypt hash.
// An empty hash accepts any passphrase, which turns login into plain device
// pairing.
type PassphraseAuthenticator struct {
	hash []byte
}

// NewPassphraseAuthenticator validates the hash format up front.
func NewPassphraseAuthenticator(hash string) (*PassphraseAuthenticator, error) {
	if hash == "" {
		return &PassphraseAuthenticator{}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid passphrase hash: %w", err)
	}
	return &PassphraseAuthenticator{hash: []byte(hash)}, nil
}

// Open reports whether every passphrase is accepted.
func (a *PassphraseAuthenticator) Open() bool {
	return len(a.hash) == 0
}

// Authenticate compares the passphrase with the configured hash.
func (a *PassphraseAuthenticator) Authenticate(_ context.Context, passphrase string) error {
	if a.Open() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(passphrase)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassphrase returns a bcrypt hash suitable for the auth_passphrase_hash setting.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hash), nil
}
