package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret-one", "auction-backend", time.Hour)

	token, exp, err := tm.Generate("user-1", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "seller", claims.Role)
}

func TestParse_Rejects(t *testing.T) {
	tm := NewTokenManager("secret-one", "auction-backend", time.Hour)
	token, _, err := tm.Generate("user-1", "buyer")
	require.NoError(t, err)

	otherSecret := NewTokenManager("secret-two", "auction-backend", time.Hour)
	_, err = otherSecret.Parse(token)
	require.Error(t, err)

	otherIssuer := NewTokenManager("secret-one", "someone-else", time.Hour)
	_, err = otherIssuer.Parse(token)
	require.Error(t, err)

	expired := NewTokenManager("secret-one", "auction-backend", -time.Minute)
	stale, _, err := expired.Generate("user-1", "buyer")
	require.NoError(t, err)
	_, err = tm.Parse(stale)
	require.Error(t, err)

	_, err = tm.Parse("not-a-token")
	require.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, VerifyPassword("s3cret", hash))
	require.Error(t, VerifyPassword("wrong", hash))
}
