package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/report/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) OrderTotals(ctx context.Context) ([]dto.StatusTotal, error) {
	var totals []dto.StatusTotal
	query := `
        SELECT status, count(*) AS orders, coalesce(sum(total), 0) AS revenue
        FROM orders
        GROUP BY status
        ORDER BY status
    `
	err := r.DB.SelectContext(ctx, &totals, query)
	return totals, err
}

func (r *PGRepository) DailyRevenue(ctx context.Context) ([]dto.DatedTotal, error) {
	var series []dto.DatedTotal
	query := `
        SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS period,
               count(*) AS orders,
               coalesce(sum(total), 0) AS revenue
        FROM orders
        WHERE status = 'Completed'
          AND created_at >= date_trunc('month', now())
        GROUP BY 1
        ORDER BY 1
    `
	err := r.DB.SelectContext(ctx, &series, query)
	return series, err
}

func (r *PGRepository) MonthlyRevenue(ctx context.Context) ([]dto.DatedTotal, error) {
	var series []dto.DatedTotal
	query := `
        SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS period,
               count(*) AS orders,
               coalesce(sum(total), 0) AS revenue
        FROM orders
        WHERE status = 'Completed'
        GROUP BY 1
        ORDER BY 1
    `
	err := r.DB.SelectContext(ctx, &series, query)
	return series, err
}

func (r *PGRepository) TopProducts(ctx context.Context, limit int) ([]dto.ProductSales, error) {
	var sales []dto.ProductSales
	query := `
        SELECT oi.product_id,
               oi.name,
               sum(oi.quantity) AS units_sold,
               sum(oi.quantity * oi.price) AS revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.status = 'Completed'
        GROUP BY oi.product_id, oi.name
        ORDER BY units_sold DESC
        LIMIT $1
    `
	err := r.DB.SelectContext(ctx, &sales, query, limit)
	return sales, err
}

func (r *PGRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM users`)
	return count, err
}

func (r *PGRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products`)
	return count, err
}
