package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndVerifyAccess(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := m.MintAccess("user-1", "ana@example.com")
	require.NoError(t, err)

	claims, err := m.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestAccessSecretCannotVerifyRefresh(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	refresh, err := m.MintRefresh("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.MintAccess("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = m.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := m.MintAccess("user-1", "")
	require.NoError(t, err)

	_, err = m.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	_, err := m.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
