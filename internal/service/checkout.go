package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/repo"
)

type CheckoutService struct {
	Repo *repo.GormRepo
}

// Checkout converts the user's cart into an order. All-or-nothing: the
// underlying transaction either commits the order, the stock decrements and
// the cart wipe together, or leaves everything untouched.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.CreateOrderFromCart(ctx, userID, cart.ID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyCart):
			l.Warn("checkout_rejected", "reason", "empty cart")
			return nil, fmt.Errorf("%w: Cart is empty", ErrValidation)
		case errors.Is(err, repo.ErrOutOfStock):
			l.Warn("checkout_rejected", "reason", err.Error())
			return nil, fmt.Errorf("%w: %s", ErrConflict, err.Error())
		default:
			l.Error("checkout_failed", "error", err)
			return nil, err
		}
	}

	l.Info("checkout_successful", "order_id", order.ID, "total", order.Total)
	return order, nil
}
