package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkotchkov/storefront/internal/events"
	"github.com/mkotchkov/storefront/internal/logging"
	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/search"
	"github.com/mkotchkov/storefront/internal/service"
	"github.com/mkotchkov/storefront/internal/transport"
	"github.com/mkotchkov/storefront/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Search   *search.Client
	Producer *events.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list products failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       util.Round2(*req.Price),
		Stock:       *req.Stock,
	}
	if err := h.Svc.CreateProduct(ctx, &product); err != nil {
		l.Error("create_product_error", "error", err)
		return httpError(err)
	}

	if err := h.Search.IndexProduct(ctx, &product); err != nil {
		l.Error("search index error", "product_id", product.ID, "error", err)
	}

	event := map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	}
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(product.ID), event); err != nil {
		l.Error("kafka publish error", "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product created",
		"id":      product.ID,
	})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `"q" is required`)
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Search.Search(c.Request().Context(), q, from, limit)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
