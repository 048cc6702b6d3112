package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkotchkov/storefront/internal/models"
)

// CartLine is a cart item joined with its product's current state.
type CartLine struct {
	CartItemID uint    `json:"cart_item_id"`
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"-"`
	Quantity   int     `json:"quantity"`
}

// EnsureCart returns the user's cart, creating it on first access. The
// unique index on user_id plus ON CONFLICT DO NOTHING keeps concurrent
// first-time callers from creating duplicates.
func (r *GormRepo) EnsureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error; err != nil {
		return nil, err
	}
	if cart.ID == 0 {
		if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return nil, err
		}
	}
	return &cart, nil
}

// AddCartItem accumulates quantity on an existing line or inserts a new one.
func (r *GormRepo) AddCartItem(ctx context.Context, cartID, productID uint, quantity int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}).Error
	})
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, cartID, itemID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CartLines(ctx context.Context, cartID uint) ([]CartLine, error) {
	return cartLines(r.DB.WithContext(ctx), cartID)
}

func cartLines(tx *gorm.DB, cartID uint) ([]CartLine, error) {
	var lines []CartLine
	err := tx.Table("cart_items").
		Select("cart_items.id AS cart_item_id, products.id AS product_id, products.name, products.price, products.stock, cart_items.quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
