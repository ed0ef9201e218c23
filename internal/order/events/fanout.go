package events

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/order"
)

// Fanout delivers each order event to every publisher in turn. Nil entries
// are skipped so optional sinks can be wired unconditionally.
type Fanout []order.EventPublisher

var _ order.EventPublisher = (Fanout)(nil)

func (f Fanout) OrderCreated(ctx context.Context, o *model.Order) {
	for _, p := range f {
		if p != nil {
			p.OrderCreated(ctx, o)
		}
	}
}

func (f Fanout) OrderStatusChanged(ctx context.Context, o *model.Order, previous model.OrderStatus) {
	for _, p := range f {
		if p != nil {
			p.OrderStatusChanged(ctx, o, previous)
		}
	}
}
