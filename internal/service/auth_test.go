package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/tokens"
)

func TestAuthService_Register_FirstUserBecomesAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	ctx := context.Background()

	first, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	second, err := svc.Register(ctx, "Bob", "bob@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "user", second.Role)

	third, err := svc.Register(ctx, "Carol", "carol@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "user", third.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestAuthService_Login_WrongCredentialsIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice@example.com", "wrong-password")
	require.Error(t, wrongPassword)
	assert.ErrorIs(t, wrongPassword, ErrValidation)

	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret123")
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, unknownEmail, ErrValidation)

	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "admin", user.Role)
}

func TestAuthService_IssueSession_ReplacesPreviousRefreshToken(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	first, err := svc.IssueSession(ctx, user)
	require.NoError(t, err)
	second, err := svc.IssueSession(ctx, user)
	require.NoError(t, err)

	var stored []models.RefreshToken
	require.NoError(t, r.DB.Where("user_id = ?", user.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, second.RefreshToken, stored[0].Token)
	assert.NotEqual(t, first.RefreshToken, stored[0].Token)
}

func TestAuthService_Refresh_MintsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	sess, err := svc.IssueSession(ctx, user)
	require.NoError(t, err)

	access, _, err := svc.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)

	claims, err := tokens.ClaimsFromToken(access, svc.JWTSecret)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, user.Role, claims.Role)
}

func TestAuthService_Refresh_RevokedTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	sess, err := svc.IssueSession(ctx, user)
	require.NoError(t, err)

	// Logout deletes the row; the token still verifies cryptographically.
	require.NoError(t, svc.Logout(ctx, sess.RefreshToken))

	_, _, err = svc.Refresh(ctx, sess.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_Refresh_GarbageTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))

	_, _, err := svc.Refresh(context.Background(), "not-a-valid-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_Logout_EmptyTokenNoError(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newTestRepo(t))
	require.NoError(t, svc.Logout(context.Background(), ""))
}
