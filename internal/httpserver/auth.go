package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotchkov/storefront/internal/events"
	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/service"
	"github.com/mkotchkov/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc        *service.AuthService
	Producer   *events.Producer
	Production bool
}

func (h *AuthHTTP) setSessionCookies(c echo.Context, sess *service.Session) {
	c.SetCookie(CreateCookie("accessToken", sess.AccessToken, "/", sess.AccessExp, h.Production))
	c.SetCookie(CreateCookie("refreshToken", sess.RefreshToken, "/", sess.RefreshExp, h.Production))
}

func (h *AuthHTTP) publishUserEvent(c echo.Context, eventType string, user *models.User) {
	ctx := c.Request().Context()
	event := map[string]any{
		"type":    eventType,
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func userResponse(user *models.User) transport.UserResponse {
	return transport.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	sess, err := h.Svc.IssueSession(ctx, user)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return httpError(err)
	}
	h.setSessionCookies(c, sess)

	h.publishUserEvent(c, "user_registered", user)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Registered",
		"user":    userResponse(user),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	sess, err := h.Svc.IssueSession(ctx, user)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return httpError(err)
	}
	h.setSessionCookies(c, sess)

	h.publishUserEvent(c, "user_logged_in", user)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged in",
		"user":    userResponse(user),
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie("refreshToken")
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "No refresh token")
	}

	accessToken, accessExp, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(CreateCookie("accessToken", accessToken, "/", accessExp, h.Production))
	return c.JSON(http.StatusOK, echo.Map{"message": "Access token refreshed"})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	if cookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_error", "error", err)
			c.SetCookie(DeleteCookie("accessToken", "/"))
			c.SetCookie(DeleteCookie("refreshToken", "/"))
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
	}

	c.SetCookie(DeleteCookie("accessToken", "/"))
	c.SetCookie(DeleteCookie("refreshToken", "/"))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}
