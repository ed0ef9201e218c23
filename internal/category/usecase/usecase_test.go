package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/category/dto"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/pkg/logger"
)

type fakeRepo struct {
	categories map[string]*model.Category
	deleted    []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{categories: map[string]*model.Category{}}
}

func (f *fakeRepo) Create(ctx context.Context, c *model.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) FindChildren(ctx context.Context, parentID string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByNameInScope(ctx context.Context, name string, parentID *string) (*model.Category, error) {
	for _, c := range f.categories {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		if parentID == nil && c.ParentID == nil {
			cp := *c
			return &cp, nil
		}
		if parentID != nil && c.ParentID != nil && *parentID == *c.ParentID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, c := range f.categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Update(ctx context.Context, c *model.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteCascade(ctx context.Context, c *model.Category) error {
	f.deleted = append(f.deleted, c.ID)
	delete(f.categories, c.ID)
	for id, child := range f.categories {
		if child.ParentID != nil && *child.ParentID == c.ID {
			delete(f.categories, id)
		}
	}
	return nil
}

func mustCreate(t *testing.T, uc *categoryUseCase, name string, parentID *string) *model.Category {
	t.Helper()
	c, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return c
}

func newTestUseCase() (*fakeRepo, *categoryUseCase) {
	repo := newFakeRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop()).(*categoryUseCase)
	return repo, uc
}

func TestCreateCategoryRoot(t *testing.T) {
	_, uc := newTestUseCase()

	c := mustCreate(t, uc, "Men", nil)
	assert.Nil(t, c.ParentID)
	assert.Equal(t, "men", c.Slug)
	assert.True(t, c.IsActive)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	_, uc := newTestUseCase()

	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	_, uc := newTestUseCase()

	ghost := "no-such-id"
	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "Jeans", ParentID: &ghost})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Parent category not found", apperr.MessageOf(err))
}

func TestCreateCategoryDepthLimit(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	jeans := mustCreate(t, uc, "Jeans", &men.ID)

	// A child of a child would make three levels.
	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "Slim Fit", ParentID: &jeans.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Only 2-level depth allowed (Main > Sub)", apperr.MessageOf(err))
}

func TestCreateCategoryDuplicateNamePerScope(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	women := mustCreate(t, uc, "Women", nil)
	mustCreate(t, uc, "Jeans", &men.ID)

	// Same label under a different parent is fine.
	c := mustCreate(t, uc, "Jeans", &women.ID)
	assert.NotEqual(t, "jeans", c.Slug, "slug collision is resolved with a suffix")

	// Same label under the same parent is not, regardless of case.
	_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "JEANS", ParentID: &men.ID})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "This category label already exists at this level", apperr.MessageOf(err))

	_, err = uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "men"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)

	_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID:        men.ID,
		ParentID:  &men.ID,
		ParentSet: true,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "A category cannot be its own parent", apperr.MessageOf(err))
}

func TestUpdateCategoryRejectsReparentingRootWithChildren(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	mustCreate(t, uc, "Shirts", &men.ID)
	women := mustCreate(t, uc, "Women", nil)

	// Moving Men under Women would push Shirts to a third level.
	_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID:        men.ID,
		ParentID:  &women.ID,
		ParentSet: true,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Only 2-level depth allowed (Main > Sub)", apperr.MessageOf(err))

	kept, err := uc.GetCategory(context.Background(), men.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.ParentID, "rejected move leaves the root in place")
}

func TestUpdateCategoryReparentChildlessRoot(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	women := mustCreate(t, uc, "Women", nil)

	updated, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID:        women.ID,
		ParentID:  &men.ID,
		ParentSet: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, men.ID, *updated.ParentID)
}

func TestUpdateCategoryPromoteToRoot(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	jeans := mustCreate(t, uc, "Jeans", &men.ID)

	updated, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID:        jeans.ID,
		ParentID:  nil,
		ParentSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func TestUpdateCategoryOmittedParentKeepsValue(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	jeans := mustCreate(t, uc, "Jeans", &men.ID)

	desc := "denim"
	updated, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
		ID:          jeans.ID,
		Description: &desc,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, men.ID, *updated.ParentID)
	assert.Equal(t, "denim", updated.Description)
}

func TestListCategoriesStructure(t *testing.T) {
	_, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	mustCreate(t, uc, "Jeans", &men.ID)
	mustCreate(t, uc, "Shirts", &men.ID)
	mustCreate(t, uc, "Women", nil)

	roots, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 2)

	for _, root := range roots {
		assert.Nil(t, root.ParentID)
		if root.Name == "Men" {
			assert.Len(t, root.SubCategories, 2)
		} else {
			assert.Empty(t, root.SubCategories)
		}
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	repo, uc := newTestUseCase()

	men := mustCreate(t, uc, "Men", nil)
	mustCreate(t, uc, "Jeans", &men.ID)

	require.NoError(t, uc.DeleteCategory(context.Background(), men.ID))
	assert.Empty(t, repo.categories)
	assert.Equal(t, []string{men.ID}, repo.deleted)
}

func TestDeleteCategoryUnknown(t *testing.T) {
	_, uc := newTestUseCase()

	err := uc.DeleteCategory(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Target category not found", apperr.MessageOf(err))
}
