package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/db"
	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	return repo.New(gdb)
}

func newTestAuthService(r *repo.GormRepo) *AuthService {
	return &AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func mustCreateProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock int) *models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}
