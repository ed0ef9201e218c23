package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/product/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type fakeRepo struct {
	products   map[string]*model.Product
	categories map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:   map[string]*model.Product{},
		categories: map[string]bool{"cat-1": true},
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	var out []model.Product
	for _, p := range f.products {
		if filters.CategoryID != "" && p.CategoryID != filters.CategoryID {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) CategoryExists(ctx context.Context, id string) (bool, error) {
	return f.categories[id], nil
}

func newTestUseCase() (*fakeRepo, *productUseCase) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, nil, logger.NewNop()).(*productUseCase)
	return repo, uc
}

func validInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Name:       "Tee",
		Price:      499,
		CategoryID: "cat-1",
		Image:      []string{"https://img.example/tee.jpg"},
		Sizes:      []dto.SizeInput{{Size: "m", Quantity: 3}, {Size: " L ", Quantity: 0}},
	}
}

func TestCreateProduct(t *testing.T) {
	repo, uc := newTestUseCase()

	p, err := uc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "tee", p.Slug)
	assert.True(t, p.IsActive)
	require.Len(t, p.Sizes, 2)
	assert.Equal(t, "M", p.Sizes[0].Size, "labels are upper-cased")
	assert.Equal(t, "L", p.Sizes[1].Size)
	assert.Equal(t, 0, p.Sizes[1].Quantity, "zero stock keeps the size listed")

	_, stored := repo.products[p.ID]
	assert.True(t, stored)
}

func TestCreateProductValidation(t *testing.T) {
	_, uc := newTestUseCase()

	cases := []struct {
		name   string
		mutate func(*dto.CreateProductInput)
	}{
		{"missing name", func(in *dto.CreateProductInput) { in.Name = " " }},
		{"missing images", func(in *dto.CreateProductInput) { in.Image = nil }},
		{"negative price", func(in *dto.CreateProductInput) { in.Price = -1 }},
		{"unknown category", func(in *dto.CreateProductInput) { in.CategoryID = "ghost" }},
		{"negative size quantity", func(in *dto.CreateProductInput) {
			in.Sizes = []dto.SizeInput{{Size: "M", Quantity: -2}}
		}},
		{"duplicate size label", func(in *dto.CreateProductInput) {
			in.Sizes = []dto.SizeInput{{Size: "M", Quantity: 1}, {Size: "m", Quantity: 2}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)
			_, err := uc.CreateProduct(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Product not found", apperr.MessageOf(err))
}

func TestUpdateProductReplacesSizes(t *testing.T) {
	repo, uc := newTestUseCase()

	p, err := uc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:         p.ID,
		Name:       "Tee v2",
		Price:      599,
		CategoryID: "cat-1",
		Image:      []string{"https://img.example/tee2.jpg"},
		Sizes:      []dto.SizeInput{{Size: "XL", Quantity: 7}},
		IsActive:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Tee v2", updated.Name)
	require.Len(t, updated.Sizes, 1)
	assert.Equal(t, "XL", updated.Sizes[0].Size)
	assert.Equal(t, 7, updated.Sizes[0].Quantity)
	assert.Len(t, repo.products[p.ID].Sizes, 1)
}

func TestDeleteProduct(t *testing.T) {
	repo, uc := newTestUseCase()

	p, err := uc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	assert.Empty(t, repo.products)

	err = uc.DeleteProduct(context.Background(), p.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListProductsByCategory(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)

	products, count, err := uc.ListProducts(context.Background(), &dto.ProductFilters{CategoryID: "cat-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, products, 1)

	products, count, err = uc.ListProducts(context.Background(), &dto.ProductFilters{CategoryID: "other"})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, products)
}
