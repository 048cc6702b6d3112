package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotchkov/storefront/internal/models"
)

func TestRegister_FirstUserAdminAndCookiesSet(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])

	access := cookieByName(t, rec, "accessToken")
	refresh := cookieByName(t, rec, "refreshToken")
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.NotEmpty(t, access.Value)
	assert.NotEmpty(t, refresh.Value)
}

func TestRegister_RequestedRoleIgnored(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret123","role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "user", user["role"])
}

func TestRegister_ValidationRejectsBeforeMutation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","password":"secret123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var users int64
	require.NoError(t, ts.Repo.DB.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/auth/register",
		`{"name":"Other","email":"alice@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestRefresh_RotatesAccessCookie(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, _ := ts.register(t, "Alice", "alice@example.com")
	refresh := cookieByName(t, rec, "refreshToken")

	refreshRec := ts.do(t, http.MethodPost, "/auth/refresh", "", refresh)
	require.Equal(t, http.StatusOK, refreshRec.Code, refreshRec.Body.String())
	access := cookieByName(t, refreshRec, "accessToken")
	assert.NotEmpty(t, access.Value)
}

func TestRefresh_MissingCookie(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/auth/refresh", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_RevokedTokenRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, _ := ts.register(t, "Alice", "alice@example.com")
	refresh := cookieByName(t, rec, "refreshToken")

	logoutRec := ts.do(t, http.MethodPost, "/auth/logout", "", refresh)
	require.Equal(t, http.StatusOK, logoutRec.Code)

	refreshRec := ts.do(t, http.MethodPost, "/auth/refresh", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, refreshRec.Code)
}

func TestLogout_ClearsCookiesAndDeletesToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, _ := ts.register(t, "Alice", "alice@example.com")
	refresh := cookieByName(t, rec, "refreshToken")

	logoutRec := ts.do(t, http.MethodPost, "/auth/logout", "", refresh)
	require.Equal(t, http.StatusOK, logoutRec.Code)

	for _, name := range []string{"accessToken", "refreshToken"} {
		c := cookieByName(t, logoutRec, name)
		assert.Empty(t, c.Value)
	}

	var count int64
	require.NoError(t, ts.Repo.DB.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.Zero(t, count)
}
