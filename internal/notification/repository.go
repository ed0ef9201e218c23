package notification

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindAll(ctx context.Context) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
