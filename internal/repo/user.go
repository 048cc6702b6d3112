package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/hash"
	"github.com/mkotchkov/storefront/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegisterUser creates the user inside a transaction. The very first user in
// the store becomes an admin; everyone after that is a regular user no matter
// what role the request asked for.
func (r *GormRepo) RegisterUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrEmailTaken
		}

		var total int64
		if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			user.Role = "admin"
		} else {
			user.Role = "user"
		}

		return tx.Create(user).Error
	})
}

// AuthenticateUser resolves credentials to a user. Unknown email and wrong
// password are indistinguishable to the caller.
func (r *GormRepo) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
