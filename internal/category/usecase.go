package category

import (
	"context"

	"github.com/avadra/storefront-service/internal/category/dto"
	"github.com/avadra/storefront-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)

	// ListCategories returns active root categories, each populated with its
	// direct children.
	ListCategories(ctx context.Context) ([]model.Category, error)

	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)

	// DeleteCategory cascades: children's products, then children, then the
	// target's own products, then the target itself.
	DeleteCategory(ctx context.Context, id string) error
}
