package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (
            id, name, slug, price, category_id, description, image,
            is_featured, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :slug, :price, :category_id, :description, :image,
            :is_featured, :is_active, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	if err := insertSizes(ctx, tx, p.ID, p.Sizes); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSizes(ctx context.Context, tx *sqlx.Tx, productID string, sizes []model.SizeVariant) error {
	for i := range sizes {
		sizes[i].ProductID = productID
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO product_sizes (product_id, size, quantity)
            VALUES (:product_id, :size, :quantity)
        `, sizes[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.loadSizes(ctx, []*model.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) loadSizes(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	byID := make(map[string]*model.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Sizes = []model.SizeVariant{}
	}

	query, args, err := sqlx.In(`SELECT * FROM product_sizes WHERE product_id IN (?) ORDER BY size ASC`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var sizes []model.SizeVariant
	if err := r.DB.SelectContext(ctx, &sizes, query, args...); err != nil {
		return err
	}
	for _, s := range sizes {
		if p, ok := byID[s.ProductID]; ok {
			p.Sizes = append(p.Sizes, s)
		}
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	refs := make([]*model.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := r.loadSizes(ctx, refs); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE products
        SET name = :name,
            slug = :slug,
            price = :price,
            category_id = :category_id,
            description = :description,
            image = :image,
            is_featured = :is_featured,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	if err := insertSizes(ctx, tx, p.ID, p.Sizes); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *PGRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM categories WHERE id = $1`, id); err != nil {
		return false, err
	}
	return count > 0, nil
}
