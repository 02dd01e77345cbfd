package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := newTestTokens()

	pair, err := m.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	id, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenManager_TypesAreNotInterchangeable(t *testing.T) {
	m := newTestTokens()
	pair, err := m.Issue(1)
	require.NoError(t, err)

	_, err = m.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	pair, err := newTestTokens().Issue(1)
	require.NoError(t, err)

	other := NewTokenManager("another-secret", time.Hour, time.Hour)
	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m := newTestTokens()
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	pair, err := m.Issue(7)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	// refresh token is still valid for a week
	id, err := m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := newTestTokens()
	for _, tok := range []string{"", "not.a.token", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"} {
		_, err := m.ParseAccess(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}
