package order

import (
	"context"
	"time"

	"github.com/avadra/storefront-service/internal/model"
)

type Repository interface {
	// Create persists the order and its line-item snapshots in one
	// transaction.
	Create(ctx context.Context, o *model.Order) error

	FindByID(ctx context.Context, id string) (*model.Order, error)

	// FindAll returns every order newest-first with the owning user's
	// name/email resolved.
	FindAll(ctx context.Context) ([]model.Order, error)

	FindByUser(ctx context.Context, userID string) ([]model.Order, error)

	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error

	CountByStatus(ctx context.Context, status model.OrderStatus) (int, error)

	FindUser(ctx context.Context, id string) (*model.User, error)
}
