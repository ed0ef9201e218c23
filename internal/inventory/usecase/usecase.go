package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/inventory"
	"github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/pkg/cache"
	"github.com/avadra/storefront-service/pkg/logger"
)

// ErrRaceLost reports that a conditional debit found less stock than the
// preceding check did. Callers may re-validate and retry.
var ErrRaceLost = apperr.New(apperr.KindRaceLost, "stock level changed, please retry")

type stockLedger struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewStockLedger(repo inventory.Repository, cache *cache.RedisClient, log logger.ZapLogger) inventory.Ledger {
	return &stockLedger{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *stockLedger) CheckAvailability(ctx context.Context, productID, size string, qty int) (inventory.Availability, *model.Product, error) {
	product, err := uc.repo.FindProduct(ctx, productID)
	if err != nil {
		return 0, nil, apperr.Wrap(apperr.KindInternal, "stock check failed", err)
	}
	if product == nil {
		return inventory.ProductNotFound, nil, nil
	}

	variant, err := uc.repo.FindSize(ctx, productID, size)
	if err != nil {
		return 0, nil, apperr.Wrap(apperr.KindInternal, "stock check failed", err)
	}
	if variant == nil {
		return inventory.SizeNotFound, product, nil
	}
	if variant.Quantity < qty {
		return inventory.Insufficient, product, nil
	}
	return inventory.Available, product, nil
}

func (uc *stockLedger) Debit(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) error {
	if qty <= 0 {
		return apperr.New(apperr.KindValidation, "quantity must be positive")
	}

	ok, err := uc.repo.DebitSize(ctx, productID, size, qty, ref)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "stock debit failed", err)
	}
	if !ok {
		// The conditional update matched nothing: a concurrent debit won.
		return ErrRaceLost
	}
	return nil
}

func (uc *stockLedger) Credit(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) error {
	if qty <= 0 {
		return apperr.New(apperr.KindValidation, "quantity must be positive")
	}

	if _, err := uc.repo.CreditSize(ctx, productID, size, qty, ref); err != nil {
		return apperr.Wrap(apperr.KindInternal, "stock credit failed", err)
	}
	return nil
}

// Adjust is the admin-facing manual stock change. It takes a short Redis
// lock per product/size so two admins editing the same counter serialize.
func (uc *stockLedger) Adjust(ctx context.Context, input *dto.AdjustStockInput) (*model.SizeVariant, error) {
	if input.QuantityChange == 0 {
		return nil, apperr.New(apperr.KindValidation, "quantity change must be non-zero")
	}

	lockKey := fmt.Sprintf("lock:stock:%s:%s", input.ProductID, input.Size)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, apperr.New(apperr.KindRaceLost, "stock is busy, please try again")
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	av, _, err := uc.CheckAvailability(ctx, input.ProductID, input.Size, 0)
	if err != nil {
		return nil, err
	}
	if av == inventory.ProductNotFound {
		return nil, apperr.New(apperr.KindNotFound, "Product not found")
	}

	ref := dto.MovementRef{Type: "manual", ID: input.UserID, Notes: input.Reason}

	if input.QuantityChange < 0 {
		ok, err := uc.repo.DebitSize(ctx, input.ProductID, input.Size, -input.QuantityChange, ref)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "stock adjust failed", err)
		}
		if !ok {
			return nil, apperr.New(apperr.KindValidation, "insufficient stock for adjustment")
		}
	} else {
		if _, err := uc.repo.CreditSize(ctx, input.ProductID, input.Size, input.QuantityChange, ref); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "stock adjust failed", err)
		}
	}

	variant, err := uc.repo.FindSize(ctx, input.ProductID, input.Size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "stock adjust failed", err)
	}
	return variant, nil
}

func (uc *stockLedger) Movements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	items, count, err := uc.repo.ListMovements(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list stock movements", err)
	}
	return items, count, nil
}
