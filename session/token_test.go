package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("secret")
	require.NoError(t, err)

	raw, err := tokens.Issue("abc")
	require.NoError(t, err)

	id, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestTokens_RejectsForeignSecret(t *testing.T) {
	ours, err := NewTokens("ours")
	require.NoError(t, err)
	theirs, err := NewTokens("theirs")
	require.NoError(t, err)

	raw, err := theirs.Issue("abc")
	require.NoError(t, err)

	_, err = ours.Parse(raw)
	assert.Error(t, err)
}

func TestTokens_RandomSecretPerInstance(t *testing.T) {
	a, err := NewTokens("")
	require.NoError(t, err)
	b, err := NewTokens("")
	require.NoError(t, err)
	assert.Len(t, a.Key(), 32)
	assert.NotEqual(t, a.Key(), b.Key())

	raw, err := a.Issue("abc")
	require.NoError(t, err)
	_, err = b.Parse(raw)
	assert.Error(t, err, "a restart invalidates old cookies")
}

func TestTokens_IssueRequiresID(t *testing.T) {
	tokens, err := NewTokens("secret")
	require.NoError(t, err)
	_, err = tokens.Issue("")
	assert.Error(t, err)
}

func TestTokens_RejectsTokenWithoutSessionID(t *testing.T) {
	tokens, err := NewTokens("secret")
	require.NoError(t, err)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString(tokens.Key())
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.Error(t, err)
}

func TestSessionID_InvalidToken(t *testing.T) {
	_, ok := SessionID(nil)
	assert.False(t, ok)

	_, ok = SessionID(&jwt.Token{Claims: jwt.MapClaims{ClaimSessionID: "abc"}, Valid: false})
	assert.False(t, ok)
}
