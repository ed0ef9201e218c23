package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/category"
	"github.com/avadra/storefront-service/internal/category/dto"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

// resolveParent enforces the 2-level tree: a parent must exist and must
// itself be a root.
func (uc *categoryUseCase) resolveParent(ctx context.Context, parentID string) (*model.Category, error) {
	parent, err := uc.repo.FindByID(ctx, parentID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to resolve parent category", err)
	}
	if parent == nil {
		return nil, apperr.New(apperr.KindNotFound, "Parent category not found")
	}
	if !parent.IsRoot() {
		return nil, apperr.New(apperr.KindConflict, "Only 2-level depth allowed (Main > Sub)")
	}
	return parent, nil
}

func (uc *categoryUseCase) checkDuplicateName(ctx context.Context, name string, parentID *string, excludeID string) error {
	existing, err := uc.repo.FindByNameInScope(ctx, name, parentID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to check category name", err)
	}
	if existing != nil && existing.ID != excludeID {
		return apperr.New(apperr.KindConflict, "This category label already exists at this level")
	}
	return nil
}

// makeSlug derives the unique slug from the name, suffixing a short random
// number on collision the way "Jeans" can exist under both Men and Women.
func (uc *categoryUseCase) makeSlug(ctx context.Context, name, excludeID string) (string, error) {
	base := slug.Make(name)
	exists, err := uc.repo.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to check slug", err)
	}
	if !exists {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, rand.Intn(1000)), nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "Category name required")
	}

	parentID := input.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	if parentID != nil {
		if _, err := uc.resolveParent(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	if err := uc.checkDuplicateName(ctx, name, parentID, ""); err != nil {
		return nil, err
	}

	catSlug, err := uc.makeSlug(ctx, name, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        name,
		Slug:        catSlug,
		ParentID:    parentID,
		Description: input.Description,
		Image:       input.Image,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create category", err)
	}

	uc.logger.Info("category created", zap.String("id", cat.ID), zap.String("slug", cat.Slug))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load category", err)
	}
	if cat == nil {
		return nil, apperr.New(apperr.KindNotFound, "Category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := uc.repo.FindAll(ctx, true)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list categories", err)
	}

	structured := []model.Category{}
	for _, cat := range categories {
		if !cat.IsRoot() {
			continue
		}
		main := cat
		main.SubCategories = []model.Category{}
		for _, sub := range categories {
			if sub.ParentID != nil && *sub.ParentID == main.ID {
				main.SubCategories = append(main.SubCategories, sub)
			}
		}
		structured = append(structured, main)
	}
	return structured, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load category", err)
	}
	if cat == nil {
		return nil, apperr.New(apperr.KindNotFound, "Category not found")
	}

	if input.ParentSet {
		parentID := input.ParentID
		if parentID != nil && *parentID == "" {
			parentID = nil
		}
		if parentID != nil {
			if *parentID == cat.ID {
				return nil, apperr.New(apperr.KindConflict, "A category cannot be its own parent")
			}
			if _, err := uc.resolveParent(ctx, *parentID); err != nil {
				return nil, err
			}
			// A root that still has children cannot become a child itself:
			// its subtree would end up three levels deep.
			children, err := uc.repo.FindChildren(ctx, cat.ID)
			if err != nil {
				return nil, apperr.Wrap(apperr.KindInternal, "failed to check category children", err)
			}
			if len(children) > 0 {
				return nil, apperr.New(apperr.KindConflict, "Only 2-level depth allowed (Main > Sub)")
			}
		}
		cat.ParentID = parentID
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.New(apperr.KindValidation, "Category name required")
		}
		if err := uc.checkDuplicateName(ctx, name, cat.ParentID, cat.ID); err != nil {
			return nil, err
		}
		if name != cat.Name {
			newSlug, err := uc.makeSlug(ctx, name, cat.ID)
			if err != nil {
				return nil, err
			}
			cat.Slug = newSlug
		}
		cat.Name = name
	}
	if input.Description != nil {
		cat.Description = *input.Description
	}
	if input.Image != nil {
		cat.Image = *input.Image
	}
	if input.IsFeatured != nil {
		cat.IsFeatured = *input.IsFeatured
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update category", err)
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to load category", err)
	}
	if cat == nil {
		return apperr.New(apperr.KindNotFound, "Target category not found")
	}

	if err := uc.repo.DeleteCascade(ctx, cat); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete category", err)
	}

	uc.logger.Info("category deleted with cascade",
		zap.String("id", cat.ID),
		zap.Bool("root", cat.IsRoot()),
	)
	return nil
}
