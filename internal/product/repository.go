package product

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/product/dto"
)

type Repository interface {
	// Create persists the product and its size variants in one transaction.
	Create(ctx context.Context, product *model.Product) error

	// FindByID loads the product with its sizes, or nil.
	FindByID(ctx context.Context, id string) (*model.Product, error)

	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// Update rewrites the product row and replaces its size variants.
	Update(ctx context.Context, product *model.Product) error

	Delete(ctx context.Context, id string) error

	CategoryExists(ctx context.Context, id string) (bool, error)
}
