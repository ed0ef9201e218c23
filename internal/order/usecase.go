package order

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/order/dto"
)

// UseCase is the order state machine. Creation runs a two-phase
// validate-then-debit pass over all line items; a transition into Cancelled
// credits stock back exactly once.
type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, newStatus model.OrderStatus) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]model.Order, error)
	CountPending(ctx context.Context) (int, error)
}

// EventPublisher emits order lifecycle events for downstream consumers.
// Publishing is best-effort; failures never abort the request.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o *model.Order)
	OrderStatusChanged(ctx context.Context, o *model.Order, previous model.OrderStatus)
}
