package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// Authenticator verifies admin credentials. The store has a single admin
// account; the credential source is injected so deployments choose their own.
type Authenticator interface {
	Authenticate(username, password string) error
}

// ConfigAuthenticator checks against a username and bcrypt hash from config.
type ConfigAuthenticator struct {
	username     string
	passwordHash string
}

func NewConfigAuthenticator(username, passwordHash string) *ConfigAuthenticator {
	return &ConfigAuthenticator{username: username, passwordHash: passwordHash}
}

func (a *ConfigAuthenticator) Authenticate(username, password string) error {
	if username != a.username {
		// compare anyway; both failure paths must cost the same
		bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password))
		return apperr.UnauthorizedErr("Invalid username or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return apperr.UnauthorizedErr("Invalid username or password.")
	}
	return nil
}
