package utils

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

const MinPasswordLength = 6

var ErrEmptyHash = errors.New("password hash is empty")

// PasswordHasher hashes and verifies argon2 encoded passwords.
type PasswordHasher struct {
	cfg argon2.Config
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cfg: argon2.DefaultConfig()}
}

// NewLightPasswordHasher uses a small memory and time cost; meant for tests and seeds.
func NewLightPasswordHasher() *PasswordHasher {
	cfg := argon2.DefaultConfig()
	cfg.MemoryCost = 1024
	cfg.TimeCost = 1
	return &PasswordHasher{cfg: cfg}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	encoded, err := h.cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *PasswordHasher) Verify(encodedHash, password string) (bool, error) {
	if encodedHash == "" {
		return false, ErrEmptyHash
	}
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
