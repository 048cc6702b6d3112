package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkotchkov/storefront/internal/events"
	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/service"
	"github.com/mkotchkov/storefront/internal/transport"
)

type CartHTTP struct {
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Producer *events.Producer
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.Cart.AddItem(ctx, user.ID, req.ProductID, req.Quantity); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Added to cart"})
}

func (h *CartHTTP) ViewCart(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	view, err := h.Cart.View(ctx, user.ID)
	if err != nil {
		logging.FromContext(ctx).Error("view cart failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_remove")

	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req transport.RemoveFromCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.Cart.RemoveItem(ctx, user.ID, req.CartItemID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed"})
}

func (h *CartHTTP) CheckoutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_checkout")

	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	order, err := h.Checkout.Checkout(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	event := map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  user.ID,
		"total":    order.Total,
	}
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return c.JSON(http.StatusOK, transport.CheckoutResponse{
		Message: "Checkout successful",
		OrderID: order.ID,
		Total:   order.Total,
	})
}
