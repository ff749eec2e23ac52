package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", "tourism-backend", time.Hour)
	require.NoError(t, err)

	token, err := m.GenerateToken("user-1", "asha@example.com", "Asha Kumari", []string{"admin"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "Asha Kumari", claims.Name)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, "tourism-backend", claims.Issuer)
}

func TestManager_EmptySecretRejected(t *testing.T) {
	_, err := NewManager("", "tourism-backend", time.Hour)
	assert.Error(t, err)
}

func TestManager_ExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret", "tourism-backend", -time.Minute)
	require.NoError(t, err)

	token, err := m.GenerateToken("user-1", "", "", nil)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_WrongSecret(t *testing.T) {
	issuer, err := NewManager("secret-a", "tourism-backend", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("secret-b", "tourism-backend", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateToken("user-1", "", "", nil)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_GarbageToken(t *testing.T) {
	m, err := NewManager("test-secret", "tourism-backend", time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
