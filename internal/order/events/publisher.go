package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/order"
	"github.com/avadra/storefront-service/pkg/broker"
	"github.com/avadra/storefront-service/pkg/logger"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Envelope is the wire shape of every order event.
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type createdPayload struct {
	OrderID string  `json:"order_id"`
	UserID  string  `json:"user_id"`
	Total   float64 `json:"total"`
	Items   int     `json:"items"`
}

type statusChangedPayload struct {
	OrderID        string `json:"order_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

// KafkaPublisher emits order lifecycle events. Publishing is best effort;
// a broker failure is logged and never fails the request that caused it.
type KafkaPublisher struct {
	producer *broker.KafkaProducer
	logger   logger.ZapLogger
}

var _ order.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(producer *broker.KafkaProducer, log logger.ZapLogger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: log}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, o *model.Order) {
	p.publish(ctx, o.ID, EventOrderCreated, createdPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		Total:   o.Total,
		Items:   len(o.Items),
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, o *model.Order, previous model.OrderStatus) {
	p.publish(ctx, o.ID, EventOrderStatusChanged, statusChangedPayload{
		OrderID:        o.ID,
		PreviousStatus: string(previous),
		NewStatus:      string(o.Status),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, key, eventType string, payload interface{}) {
	if p.producer == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event payload", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	env := Envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   raw,
		Timestamp: time.Now(),
	}
	value, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("failed to marshal event envelope", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	if err := p.producer.Publish(ctx, []byte(key), value); err != nil {
		p.logger.Error("failed to publish order event",
			zap.String("event_type", eventType),
			zap.String("order_id", key),
			zap.Error(err),
		)
	}
}
