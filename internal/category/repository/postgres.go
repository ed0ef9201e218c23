package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, slug, parent_id, description, image, is_featured, is_active, created_at, updated_at)
        VALUES (:id, :name, :slug, :parent_id, :description, :image, :is_featured, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	query := `SELECT * FROM categories`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	var categories []model.Category
	err := r.DB.SelectContext(ctx, &categories, query)
	return categories, err
}

func (r *PGRepository) FindChildren(ctx context.Context, parentID string) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories WHERE parent_id = $1 ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &categories, query, parentID)
	return categories, err
}

func (r *PGRepository) FindByNameInScope(ctx context.Context, name string, parentID *string) (*model.Category, error) {
	var category model.Category
	var err error
	if parentID == nil {
		query := `SELECT * FROM categories WHERE lower(name) = lower($1) AND parent_id IS NULL LIMIT 1`
		err = r.DB.GetContext(ctx, &category, query, name)
	} else {
		query := `SELECT * FROM categories WHERE lower(name) = lower($1) AND parent_id = $2 LIMIT 1`
		err = r.DB.GetContext(ctx, &category, query, name, *parentID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM categories WHERE slug = $1`
	args := []interface{}{slug}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            slug = :slug,
            parent_id = :parent_id,
            description = :description,
            image = :image,
            is_featured = :is_featured,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

// DeleteCascade runs the four delete phases in order inside one transaction:
// children's products, the children, the target's own products, the target.
// Size rows go with their products via ON DELETE CASCADE.
func (r *PGRepository) DeleteCascade(ctx context.Context, c *model.Category) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if c.IsRoot() {
		if _, err := tx.ExecContext(ctx, `
            DELETE FROM products
            WHERE category_id IN (SELECT id FROM categories WHERE parent_id = $1)
        `, c.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE parent_id = $1`, c.ID); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE category_id = $1`, c.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, c.ID); err != nil {
		return err
	}

	return tx.Commit()
}
