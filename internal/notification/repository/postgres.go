package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
        INSERT INTO notifications (id, type, message, reference_id, is_read, created_at)
        VALUES (:id, :type, :message, :reference_id, :is_read, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, n)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	query := `SELECT * FROM notifications ORDER BY created_at DESC`
	err := r.DB.SelectContext(ctx, &notifications, query)
	return notifications, err
}

func (r *PGRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	return err
}

func (r *PGRepository) MarkAllRead(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`)
	return err
}
