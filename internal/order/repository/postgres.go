package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO orders (
            id, user_id, user_name, user_email, subtotal, gst, total,
            status, payment_method, created_at, updated_at
        )
        VALUES (
            :id, :user_id, :user_name, :user_email, :subtotal, :gst, :total,
            :status, :payment_method, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, o); err != nil {
		return err
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		o.Items[i].LineNo = i + 1
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO order_items (order_id, line_no, product_id, name, price, quantity, selected_size, image)
            VALUES (:order_id, :line_no, :product_id, :name, :price, :quantity, :selected_size, :image)
        `, o.Items[i])
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT * FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	o.User = model.OrderUserRef{ID: o.UserID}

	if err := r.loadItems(ctx, []*model.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) loadItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*model.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []model.OrderItem{}
	}

	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var items []model.OrderItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return err
	}
	for _, it := range items {
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return nil
}

type orderWithUser struct {
	model.Order
	ResolvedName  string `db:"resolved_name"`
	ResolvedEmail string `db:"resolved_email"`
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	var rows []orderWithUser
	query := `
        SELECT o.*, u.name AS resolved_name, u.email AS resolved_email
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.created_at DESC
    `
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	orders := make([]model.Order, len(rows))
	refs := make([]*model.Order, len(rows))
	for i, row := range rows {
		orders[i] = row.Order
		orders[i].User = model.OrderUserRef{
			ID:    row.UserID,
			Name:  row.ResolvedName,
			Email: row.ResolvedEmail,
		}
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	query := `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, err
	}

	refs := make([]*model.Order, len(orders))
	for i := range orders {
		orders[i].User = model.OrderUserRef{ID: orders[i].UserID}
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	return err
}

func (r *PGRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM orders WHERE status = $1`, status)
	return count, err
}

func (r *PGRepository) FindUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	query := `SELECT * FROM users WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
