package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/util"
)

var ErrEmptyCart = errors.New("cart is empty")

// ErrOutOfStock is wrapped with the offending product's name.
var ErrOutOfStock = errors.New("not enough stock")

// CreateOrderFromCart converts a cart into an order in a single transaction:
// validate stock, create the order and its items at frozen prices, decrement
// stock with a guarded update, clear the cart items. Any failure rolls the
// whole thing back, including a decrement losing the race to a concurrent
// checkout after the validation read.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, userID, cartID uint) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := cartLines(tx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, ln := range lines {
			if ln.Stock < ln.Quantity {
				return fmt.Errorf("%w for product %s", ErrOutOfStock, ln.Name)
			}
			total += util.Round2(ln.Price * float64(ln.Quantity))
		}

		order = models.Order{UserID: userID, Total: util.Round2(total)}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, ln := range lines {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: ln.ProductID,
				Quantity:  ln.Quantity,
				Price:     ln.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", ln.ProductID, ln.Quantity).
				Update("stock", gorm.Expr("stock - ?", ln.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product %s", ErrOutOfStock, ln.Name)
			}
		}

		return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
