package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_AccessClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, exp, err := Sign(42, "user@example.com", "admin", secret, 15*time.Minute, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Empty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestSign_RefreshCarriesJTI(t *testing.T) {
	t.Parallel()

	secret := []byte("test-refresh-secret")
	token, _, err := Sign(7, "user@example.com", "user", secret, 7*24*time.Hour, true)
	require.NoError(t, err)

	claims, err := ClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := Sign(1, "a@b.c", "user", []byte("secret-one"), time.Minute, false)
	require.NoError(t, err)

	claims, err := ClaimsFromToken(token, []byte("secret-two"))
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, _, err := Sign(1, "a@b.c", "user", secret, -time.Minute, false)
	require.NoError(t, err)

	claims, err := ClaimsFromToken(token, secret)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestClaimsFromToken_Garbage(t *testing.T) {
	t.Parallel()

	claims, err := ClaimsFromToken("not-a-jwt", []byte("secret"))
	require.Error(t, err)
	assert.Nil(t, claims)
}
