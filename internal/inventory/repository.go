package inventory

import (
	"context"

	"github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/internal/model"
)

type Repository interface {
	FindProduct(ctx context.Context, id string) (*model.Product, error)
	FindSize(ctx context.Context, productID, size string) (*model.SizeVariant, error)

	// DebitSize decrements atomically, only while quantity >= qty, and logs
	// the movement in the same transaction. Returns false when the condition
	// no longer held.
	DebitSize(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) (bool, error)

	// CreditSize increments, creating the size row if it is missing, and logs
	// the movement in the same transaction. Returns the new quantity.
	CreditSize(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) (int, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
