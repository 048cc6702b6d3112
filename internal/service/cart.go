package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/repo"
	"github.com/mkotchkov/storefront/internal/transport"
	"github.com/mkotchkov/storefront/internal/util"
)

type CartService struct {
	Repo *repo.GormRepo
}

// AddItem checks the product's current stock before inserting; the check is
// advisory only and is repeated under the checkout transaction.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	l := logging.FromContext(ctx).With("svc", "cart.add_item")

	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: Product not found", ErrNotFound)
		}
		return err
	}
	if product.Stock < quantity {
		l.Warn("add_item_rejected", "reason", "not enough stock", "product_id", productID)
		return fmt.Errorf("%w: Not enough stock", ErrConflict)
	}

	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.AddCartItem(ctx, cart.ID, productID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID uint) error {
	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Repo.RemoveCartItem(ctx, cart.ID, cartItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: Cart item not found", ErrNotFound)
		}
		return err
	}
	return nil
}

// View returns the cart joined with current product data. Line totals are
// rounded to two decimals independently and the total is their sum.
func (s *CartService) View(ctx context.Context, userID uint) (*transport.CartView, error) {
	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.Repo.CartLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	view := transport.CartView{Items: make([]transport.CartLineView, 0, len(lines))}
	for _, ln := range lines {
		lineTotal := util.Round2(ln.Price * float64(ln.Quantity))
		view.Items = append(view.Items, transport.CartLineView{
			CartItemID: ln.CartItemID,
			ProductID:  ln.ProductID,
			Name:       ln.Name,
			Price:      ln.Price,
			Quantity:   ln.Quantity,
			LineTotal:  lineTotal,
		})
		view.Total += lineTotal
	}
	view.Total = util.Round2(view.Total)

	return &view, nil
}
