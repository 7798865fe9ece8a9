package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

func TestConfigAuthenticator(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewConfigAuthenticator("admin", string(hash))

	assert.NoError(t, a.Authenticate("admin", "s3cret"))

	err = a.Authenticate("admin", "wrong")
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))

	err = a.Authenticate("nobody", "s3cret")
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))
}
