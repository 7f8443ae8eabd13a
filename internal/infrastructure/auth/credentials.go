package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/pizzastock/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for any username/password mismatch so the
// response does not reveal which part was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

// CredentialVerifier checks login attempts against the provisioned account
type CredentialVerifier struct {
	username     string
	passwordHash []byte
}

// NewCredentialVerifier creates a verifier from configuration
func NewCredentialVerifier(cfg config.AuthConfig) *CredentialVerifier {
	return &CredentialVerifier{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
	}
}

// Verify checks the username and password
func (v *CredentialVerifier) Verify(username, password string) error {
	if v.username == "" || len(v.passwordHash) == 0 {
		return ErrBadCredentials
	}
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))
	if !usernameMatch || passwordErr != nil {
		return ErrBadCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash for provisioning credentials
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
