package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkotchkov/storefront/internal/models"
	"github.com/mkotchkov/storefront/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: Product not found", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if product.Stock < 1 {
		return fmt.Errorf("%w: stock must be >= 1", ErrValidation)
	}
	return s.Repo.CreateProduct(ctx, product)
}
