package category

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Category, error)
	FindChildren(ctx context.Context, parentID string) ([]model.Category, error)

	// FindByNameInScope matches the name case-insensitively within one parent
	// scope (nil parentID = root scope).
	FindByNameInScope(ctx context.Context, name string, parentID *string) (*model.Category, error)

	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, category *model.Category) error

	// DeleteCascade removes the category, its children, and every product
	// referencing any of them, in a single transaction.
	DeleteCascade(ctx context.Context, category *model.Category) error
}
