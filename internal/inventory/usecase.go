package inventory

import (
	"context"

	"github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/internal/model"
)

// Availability is the outcome of a stock check for one product/size pair.
type Availability int

const (
	Available Availability = iota
	Insufficient
	ProductNotFound
	SizeNotFound
)

// Ledger is the sole authority for size-variant quantities. Debit is an
// atomic conditional decrement; the check phase alone never reserves stock.
type Ledger interface {
	CheckAvailability(ctx context.Context, productID, size string, qty int) (Availability, *model.Product, error)
	Debit(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) error
	Credit(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) error
	Adjust(ctx context.Context, input *dto.AdjustStockInput) (*model.SizeVariant, error)
	Movements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
