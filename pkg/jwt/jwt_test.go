package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", "shorturl-analytics", 1)

	token, err := m.GenerateToken(42, "alice", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenManager_RejectsForeignToken(t *testing.T) {
	token, err := NewManager("other", "shorturl-analytics", 1).GenerateToken(1, "bob", "user")
	require.NoError(t, err)

	_, err = NewManager("secret", "shorturl-analytics", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewManager("secret", "shorturl-analytics", 1).ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
