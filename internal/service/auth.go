package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkotchkov/storefront/internal/hash"
	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/repo"
	"github.com/mkotchkov/storefront/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Session is a signed access/refresh token pair ready to be set as cookies.
type Session struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.RegisterUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_failed", "status", 400, "reason", "email taken", "email", email)
			return nil, fmt.Errorf("%w: Email already registered", ErrConflict)
		}
		l.Error("register_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("register_successful", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.AuthenticateUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
			return nil, fmt.Errorf("%w: Invalid credentials", ErrValidation)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return user, nil
}

// IssueSession signs a token pair for the user and persists the refresh half,
// replacing whatever refresh token the user held before.
func (s *AuthService) IssueSession(ctx context.Context, user *models.User) (*Session, error) {
	accessToken, accessExp, err := tokens.Sign(user.ID, user.Email, user.Role, s.JWTSecret, s.AccessTTL, false)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := tokens.Sign(user.ID, user.Email, user.Role, s.RefreshSecret, s.RefreshTTL, true)
	if err != nil {
		return nil, err
	}

	claims, err := tokens.ClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.StoreRefreshToken(ctx, user.ID, refreshToken, claims.ID, refreshExp); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh mints a new access token for a persisted, cryptographically valid
// refresh token. A token missing from the store is rejected even when its
// signature still verifies.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	exists, err := s.Repo.RefreshTokenExists(ctx, refreshToken)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return "", time.Time{}, err
	}
	if !exists {
		l.Warn("refresh_failed", "status", 401, "reason", "token not in store")
		return "", time.Time{}, fmt.Errorf("%w: Invalid refresh token", ErrUnauthenticated)
	}

	claims, err := tokens.ClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "invalid token", "error", err)
		return "", time.Time{}, fmt.Errorf("%w: Invalid token", ErrUnauthenticated)
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: Invalid token", ErrUnauthenticated)
	}

	accessToken, accessExp, err := tokens.Sign(userID, claims.Email, claims.Role, s.JWTSecret, s.AccessTTL, false)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return "", time.Time{}, err
	}

	l.Info("refresh_successful", "user_id", userID)
	return accessToken, accessExp, nil
}

// Logout revokes the given refresh token by deleting its row.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.DeleteRefreshToken(ctx, refreshToken)
}
