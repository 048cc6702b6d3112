package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/db"
	"github.com/mkotchkov/storefront/internal/repo"
	"github.com/mkotchkov/storefront/internal/service"
)

type testServer struct {
	E    *echo.Echo
	Repo *repo.GormRepo
	Auth *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}

	e := echo.New()
	Register(e, &Deps{
		Auth:     &AuthHTTP{Svc: authSvc},
		Products: &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		Cart: &CartHTTP{
			Cart:     &service.CartService{Repo: r},
			Checkout: &service.CheckoutService{Repo: r},
		},
		AuthMW: &AuthMiddleware{Repo: r, JWTSecret: authSvc.JWTSecret},
	})

	return &testServer{E: e, Repo: r, Auth: authSvc}
}

func (ts *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.E.ServeHTTP(rec, req)
	return rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (ts *testServer) register(t *testing.T, name, email string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/auth/register",
		`{"name":"`+name+`","email":"`+email+`","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return rec, cookieByName(t, rec, "accessToken")
}
