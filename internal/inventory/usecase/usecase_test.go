package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/inventory"
	"github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/pkg/logger"
)

type fakeRepo struct {
	products  map[string]*model.Product
	stock     map[string]int // productID|size
	movements []model.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[string]*model.Product{},
		stock:    map[string]int{},
	}
}

func (f *fakeRepo) addProduct(id, name, size string, qty int) {
	f.products[id] = &model.Product{BaseModel: model.BaseModel{ID: id}, Name: name}
	f.stock[id+"|"+size] = qty
}

func (f *fakeRepo) FindProduct(ctx context.Context, id string) (*model.Product, error) {
	return f.products[id], nil
}

func (f *fakeRepo) FindSize(ctx context.Context, productID, size string) (*model.SizeVariant, error) {
	qty, ok := f.stock[productID+"|"+size]
	if !ok {
		return nil, nil
	}
	return &model.SizeVariant{ProductID: productID, Size: size, Quantity: qty}, nil
}

func (f *fakeRepo) DebitSize(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) (bool, error) {
	key := productID + "|" + size
	level, ok := f.stock[key]
	if !ok || level < qty {
		return false, nil
	}
	f.stock[key] = level - qty
	f.record(productID, size, -qty, level, ref)
	return true, nil
}

func (f *fakeRepo) CreditSize(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) (int, error) {
	key := productID + "|" + size
	before := f.stock[key]
	f.stock[key] = before + qty
	f.record(productID, size, qty, before, ref)
	return f.stock[key], nil
}

func (f *fakeRepo) record(productID, size string, change, before int, ref dto.MovementRef) {
	f.movements = append(f.movements, model.StockMovement{
		ProductID:      productID,
		Size:           size,
		QuantityChange: change,
		QuantityBefore: before,
		QuantityAfter:  before + change,
		ReferenceType:  ref.Type,
		ReferenceID:    ref.ID,
	})
}

func (f *fakeRepo) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return f.movements, len(f.movements), nil
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct("p1", "Tee", "M", 3)
	ledger := NewStockLedger(repo, nil, logger.NewNop())

	cases := []struct {
		name      string
		productID string
		size      string
		qty       int
		want      inventory.Availability
	}{
		{"available", "p1", "M", 3, inventory.Available},
		{"exact zero check", "p1", "M", 0, inventory.Available},
		{"insufficient", "p1", "M", 4, inventory.Insufficient},
		{"unknown size", "p1", "XL", 1, inventory.SizeNotFound},
		{"unknown product", "ghost", "M", 1, inventory.ProductNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			av, _, err := ledger.CheckAvailability(context.Background(), tc.productID, tc.size, tc.qty)
			require.NoError(t, err)
			assert.Equal(t, tc.want, av)
		})
	}
}

func TestDebitConditional(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct("p1", "Tee", "M", 2)
	ledger := NewStockLedger(repo, nil, logger.NewNop())
	ref := dto.MovementRef{Type: "order", ID: "o1"}

	require.NoError(t, ledger.Debit(context.Background(), "p1", "M", 2, ref))
	assert.Equal(t, 0, repo.stock["p1|M"])

	err := ledger.Debit(context.Background(), "p1", "M", 1, ref)
	require.Error(t, err)
	assert.Equal(t, apperr.KindRaceLost, apperr.KindOf(err))
	assert.Equal(t, 0, repo.stock["p1|M"], "losing debit leaves the counter alone")
}

func TestDebitRejectsNonPositiveQuantity(t *testing.T) {
	ledger := NewStockLedger(newFakeRepo(), nil, logger.NewNop())

	err := ledger.Debit(context.Background(), "p1", "M", 0, dto.MovementRef{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = ledger.Credit(context.Background(), "p1", "M", -1, dto.MovementRef{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreditRecreatesMissingSize(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct("p1", "Tee", "M", 1)
	ledger := NewStockLedger(repo, nil, logger.NewNop())

	require.NoError(t, ledger.Credit(context.Background(), "p1", "XL", 4, dto.MovementRef{Type: "cancellation", ID: "o1"}))
	assert.Equal(t, 4, repo.stock["p1|XL"])
}

func TestAdjustRejectsZeroChange(t *testing.T) {
	ledger := NewStockLedger(newFakeRepo(), nil, logger.NewNop())

	_, err := ledger.Adjust(context.Background(), &dto.AdjustStockInput{ProductID: "p1", Size: "M"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMovementsAreRecorded(t *testing.T) {
	repo := newFakeRepo()
	repo.addProduct("p1", "Tee", "M", 5)
	ledger := NewStockLedger(repo, nil, logger.NewNop())

	require.NoError(t, ledger.Debit(context.Background(), "p1", "M", 2, dto.MovementRef{Type: "order", ID: "o1"}))
	require.NoError(t, ledger.Credit(context.Background(), "p1", "M", 2, dto.MovementRef{Type: "cancellation", ID: "o1"}))

	movements, count, err := ledger.Movements(context.Background(), &dto.MovementFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, movements, 2)
	assert.Equal(t, -2, movements[0].QuantityChange)
	assert.Equal(t, "order", movements[0].ReferenceType)
	assert.Equal(t, 2, movements[1].QuantityChange)
	assert.Equal(t, 5, movements[1].QuantityAfter)
}
