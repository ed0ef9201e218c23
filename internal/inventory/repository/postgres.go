package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindProduct(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindSize(ctx context.Context, productID, size string) (*model.SizeVariant, error) {
	var variant model.SizeVariant
	query := `SELECT * FROM product_sizes WHERE product_id = $1 AND size = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &variant, query, productID, size)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

func (r *PGRepository) DebitSize(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// The WHERE clause is the whole point: the decrement happens only while
	// enough stock remains, so concurrent debits can never drive the
	// quantity below zero.
	var after int
	err = tx.GetContext(ctx, &after, `
        UPDATE product_sizes
        SET quantity = quantity - $3
        WHERE product_id = $1 AND size = $2 AND quantity >= $3
        RETURNING quantity
    `, productID, size, qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if err := logMovement(ctx, tx, &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		Size:           size,
		MovementType:   model.MovementDebit,
		QuantityChange: -qty,
		QuantityBefore: after + qty,
		QuantityAfter:  after,
		ReferenceType:  ref.Type,
		ReferenceID:    ref.ID,
		Notes:          ref.Notes,
		CreatedAt:      time.Now(),
	}); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *PGRepository) CreditSize(ctx context.Context, productID, size string, qty int, ref dto.MovementRef) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Upsert so a size removed from the catalog after the order was placed
	// is recreated instead of losing the restock.
	var after int
	err = tx.GetContext(ctx, &after, `
        INSERT INTO product_sizes (product_id, size, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (product_id, size)
        DO UPDATE SET quantity = product_sizes.quantity + EXCLUDED.quantity
        RETURNING quantity
    `, productID, size, qty)
	if err != nil {
		return 0, err
	}

	movementType := model.MovementCredit
	if ref.Type == "manual" {
		movementType = model.MovementAdjust
	}
	if err := logMovement(ctx, tx, &model.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		Size:           size,
		MovementType:   movementType,
		QuantityChange: qty,
		QuantityBefore: after - qty,
		QuantityAfter:  after,
		ReferenceType:  ref.Type,
		ReferenceID:    ref.ID,
		Notes:          ref.Notes,
		CreatedAt:      time.Now(),
	}); err != nil {
		return 0, err
	}

	return after, tx.Commit()
}

func logMovement(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, product_id, size, movement_type,
            quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_at
        )
        VALUES (
            :id, :product_id, :size, :movement_type,
            :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to log stock movement: %w", err)
	}
	return nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.Size != "" {
		conditions = append(conditions, "size = :size")
		args["size"] = f.Size
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
