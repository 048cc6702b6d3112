package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/repo"
	"github.com/mkotchkov/storefront/internal/tokens"
)

const userContextKey = "user"

type AuthMiddleware struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// RequireAuth authenticates the access-token cookie and resolves the user
// from the store, so a deleted user holding a stale token is rejected.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie("accessToken")
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		claims, err := tokens.ClaimsFromToken(cookie.Value, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
		}

		user, err := m.Repo.GetUserByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth; a missing identity is treated as
// forbidden rather than a panic.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok || user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok && user != nil
}
