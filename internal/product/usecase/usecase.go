package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/product"
	"github.com/avadra/storefront-service/internal/product/dto"
	"github.com/avadra/storefront-service/pkg/cache"
	"github.com/avadra/storefront-service/pkg/logger"
	"github.com/avadra/storefront-service/pkg/search"
)

const productsIndex = "products"

const productsMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"slug": { "type": "keyword" },
			"category": { "type": "keyword" },
			"price": { "type": "double" },
			"createdAt": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

// normalizeSizes trims and upper-cases labels, drops empty entries, and
// rejects negatives and duplicate labels.
func normalizeSizes(inputs []dto.SizeInput) ([]model.SizeVariant, error) {
	sizes := []model.SizeVariant{}
	seen := map[string]bool{}
	for _, s := range inputs {
		label := strings.ToUpper(strings.TrimSpace(s.Size))
		if label == "" {
			continue
		}
		if s.Quantity < 0 {
			return nil, apperr.Newf(apperr.KindValidation, "size %s quantity cannot be negative", label)
		}
		if seen[label] {
			return nil, apperr.Newf(apperr.KindValidation, "duplicate size label %s", label)
		}
		seen[label] = true
		sizes = append(sizes, model.SizeVariant{Size: label, Quantity: s.Quantity})
	}
	return sizes, nil
}

func (uc *productUseCase) validateCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return apperr.New(apperr.KindValidation, "Category is required")
	}
	exists, err := uc.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to check category", err)
	}
	if !exists {
		return apperr.New(apperr.KindValidation, "The selected category does not exist")
	}
	return nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Name) == "" || len(input.Image) == 0 {
		return nil, apperr.New(apperr.KindValidation, "Name, price, category, and images are mandatory")
	}
	if input.Price < 0 {
		return nil, apperr.New(apperr.KindValidation, "Price cannot be negative")
	}
	if err := uc.validateCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	sizes, err := normalizeSizes(input.Sizes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug.Make(input.Name),
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Image:       input.Image,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
		Sizes:       sizes,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create product", err)
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, productsIndex, productsMapping)
	if err := uc.es.Index(ctx, productsIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}
	if p == nil {
		return nil, apperr.New(apperr.KindNotFound, "Product not found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.listCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("search fell back to database", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list products", err)
	}

	if uc.cache != nil && cacheKey != "" {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "description"},
			},
		},
	}
	if filters.PageSize > 0 {
		query["size"] = filters.PageSize
		query["from"] = (filters.Page - 1) * filters.PageSize
	}

	res, err := uc.es.Search(ctx, productsIndex, query)
	if err != nil {
		return nil, 0, err
	}

	products := []model.Product{}
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) listCacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data))
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}
	if p == nil {
		return nil, apperr.New(apperr.KindNotFound, "Product not found")
	}

	if input.Price < 0 {
		return nil, apperr.New(apperr.KindValidation, "Price cannot be negative")
	}
	if input.CategoryID != "" && input.CategoryID != p.CategoryID {
		if err := uc.validateCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = input.CategoryID
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		p.Name = name
		p.Slug = slug.Make(name)
	}
	p.Price = input.Price
	p.Description = input.Description
	if len(input.Image) > 0 {
		p.Image = input.Image
	}
	p.IsFeatured = input.IsFeatured
	p.IsActive = input.IsActive

	if input.Sizes != nil {
		sizes, err := normalizeSizes(input.Sizes)
		if err != nil {
			return nil, err
		}
		p.Sizes = sizes
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update product", err)
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}
	if p == nil {
		return apperr.New(apperr.KindNotFound, "Product not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete product", err)
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productsIndex, id); err != nil {
				uc.logger.Error("failed to remove product from index", zap.String("id", id), zap.Error(err))
			}
		}()
	}

	return nil
}
