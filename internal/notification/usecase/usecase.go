package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/notification"
	"github.com/avadra/storefront-service/internal/order"
	"github.com/avadra/storefront-service/pkg/logger"
)

type notificationUseCase struct {
	repo   notification.Repository
	logger logger.ZapLogger
}

func NewNotificationUseCase(repo notification.Repository, log logger.ZapLogger) notification.UseCase {
	return &notificationUseCase{repo: repo, logger: log}
}

func (uc *notificationUseCase) Record(ctx context.Context, kind, message, referenceID string) error {
	n := &model.Notification{
		ID:          uuid.New().String(),
		Type:        kind,
		Message:     message,
		ReferenceID: referenceID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to record notification", err)
	}
	return nil
}

func (uc *notificationUseCase) List(ctx context.Context) ([]model.Notification, error) {
	notifications, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list notifications", err)
	}
	return notifications, nil
}

func (uc *notificationUseCase) MarkRead(ctx context.Context, id string) error {
	if err := uc.repo.MarkRead(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to mark notification read", err)
	}
	return nil
}

func (uc *notificationUseCase) MarkAllRead(ctx context.Context) error {
	if err := uc.repo.MarkAllRead(ctx); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to mark notifications read", err)
	}
	return nil
}

// Recorder adapts the notification store to the order event stream so every
// order placement or status change lands on the admin dashboard.
type Recorder struct {
	uc     notification.UseCase
	logger logger.ZapLogger
}

var _ order.EventPublisher = (*Recorder)(nil)

func NewRecorder(uc notification.UseCase, log logger.ZapLogger) *Recorder {
	return &Recorder{uc: uc, logger: log}
}

func (r *Recorder) OrderCreated(ctx context.Context, o *model.Order) {
	msg := fmt.Sprintf("New order placed by %s", o.UserName)
	if err := r.uc.Record(ctx, model.NotificationOrderPlaced, msg, o.ID); err != nil {
		r.logger.Error("failed to record order notification", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (r *Recorder) OrderStatusChanged(ctx context.Context, o *model.Order, previous model.OrderStatus) {
	if o.Status == previous {
		return
	}
	msg := fmt.Sprintf("Order %s marked %s", o.ID, o.Status)
	if err := r.uc.Record(ctx, model.NotificationOrderStatus, msg, o.ID); err != nil {
		r.logger.Error("failed to record status notification", zap.String("order_id", o.ID), zap.Error(err))
	}
}
