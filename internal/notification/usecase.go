package notification

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
)

type UseCase interface {
	// Record stores a new unread notification. Best effort at call sites;
	// failures are logged, never surfaced to the request that caused them.
	Record(ctx context.Context, kind, message, referenceID string) error

	// List returns every notification newest-first.
	List(ctx context.Context) ([]model.Notification, error)

	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
