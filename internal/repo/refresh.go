package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/models"
)

// StoreRefreshToken persists a freshly issued refresh token, replacing any
// previous tokens for the same user so that at most one stays live.
func (r *GormRepo) StoreRefreshToken(ctx context.Context, userID uint, token, jti string, expiresAt time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			UserID:    userID,
			Token:     token,
			JTI:       jti,
			ExpiresAt: expiresAt.Unix(),
		}).Error
	})
}

func (r *GormRepo) RefreshTokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}
