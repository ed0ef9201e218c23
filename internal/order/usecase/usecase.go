package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/inventory"
	invdto "github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/order"
	"github.com/avadra/storefront-service/internal/order/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

// debitAttempts bounds the retry loop around a conditional debit that lost a
// race. Each retry re-validates that single item before trying again.
const debitAttempts = 3

const defaultPaymentMethod = "COD / Stripe"

type orderUseCase struct {
	repo   order.Repository
	ledger inventory.Ledger
	events order.EventPublisher
	logger logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, ledger inventory.Ledger, events order.EventPublisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		ledger: ledger,
		events: events,
		logger: log,
	}
}

type linePlan struct {
	input   dto.OrderItemInput
	product *model.Product
}

// CreateOrder runs the two-phase pass: every line item is validated before
// any is debited, so a failure on item k leaves items 1..k-1 untouched. The
// debit itself is the atomic enforcement point; when one loses a race after
// all retries, the debits already applied are credited back and the request
// is rejected with no order persisted.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.New(apperr.KindValidation, "Cart is empty")
	}

	user, err := uc.repo.FindUser(ctx, input.UserID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to resolve user", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}

	// Phase 1: validate every item. No stock is mutated here.
	plans := make([]linePlan, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperr.New(apperr.KindValidation, "Item quantity must be positive")
		}
		product, err := uc.validateItem(ctx, item)
		if err != nil {
			return nil, err
		}
		plans = append(plans, linePlan{input: item, product: product})
	}

	orderID := uuid.New().String()
	ref := invdto.MovementRef{Type: "order", ID: orderID}

	// Phase 2: debit every item, compensating on failure.
	for i, plan := range plans {
		if err := uc.debitWithRetry(ctx, plan, ref); err != nil {
			uc.compensate(ctx, plans[:i], orderID)
			return nil, err
		}
	}

	now := time.Now()
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	o := &model.Order{
		ID:            orderID,
		UserID:        user.ID,
		User:          model.OrderUserRef{ID: user.ID},
		UserName:      user.Name,
		UserEmail:     user.Email,
		Subtotal:      input.Subtotal,
		GST:           input.GST,
		Total:         input.Total,
		Status:        model.StatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, plan := range plans {
		image := plan.product.FirstImage()
		if image == "" {
			image = plan.input.Image
		}
		o.Items = append(o.Items, model.OrderItem{
			ProductID:    plan.product.ID,
			Name:         plan.product.Name,
			Price:        plan.product.Price,
			Quantity:     plan.input.Quantity,
			SelectedSize: plan.input.SelectedSize,
			Image:        image,
		})
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		uc.compensate(ctx, plans, orderID)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to persist order", err)
	}

	if uc.events != nil {
		uc.events.OrderCreated(ctx, o)
	}

	uc.logger.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.Int("items", len(o.Items)),
	)
	return o, nil
}

func (uc *orderUseCase) validateItem(ctx context.Context, item dto.OrderItemInput) (*model.Product, error) {
	av, product, err := uc.ledger.CheckAvailability(ctx, item.ProductID, item.SelectedSize, item.Quantity)
	if err != nil {
		return nil, err
	}
	switch av {
	case inventory.ProductNotFound:
		return nil, apperr.New(apperr.KindNotFound, "Product not found")
	case inventory.SizeNotFound, inventory.Insufficient:
		return nil, apperr.Newf(apperr.KindInsufficientStock, "%s stock insufficient", product.Name)
	}
	return product, nil
}

func (uc *orderUseCase) debitWithRetry(ctx context.Context, plan linePlan, ref invdto.MovementRef) error {
	for attempt := 1; ; attempt++ {
		err := uc.ledger.Debit(ctx, plan.input.ProductID, plan.input.SelectedSize, plan.input.Quantity, ref)
		if err == nil {
			return nil
		}
		if apperr.KindOf(err) != apperr.KindRaceLost || attempt >= debitAttempts {
			return err
		}

		// Someone else took stock between our check and debit. Re-validate
		// just this item and go again.
		uc.logger.Warn("debit lost race, re-validating item",
			zap.String("product_id", plan.input.ProductID),
			zap.String("size", plan.input.SelectedSize),
			zap.Int("attempt", attempt),
		)
		if _, err := uc.validateItem(ctx, plan.input); err != nil {
			return err
		}
	}
}

// compensate credits back debits applied before a later item failed.
func (uc *orderUseCase) compensate(ctx context.Context, debited []linePlan, orderID string) {
	ref := invdto.MovementRef{Type: "order_rollback", ID: orderID}
	for _, plan := range debited {
		err := uc.ledger.Credit(ctx, plan.input.ProductID, plan.input.SelectedSize, plan.input.Quantity, ref)
		if err != nil {
			uc.logger.Error("failed to roll back debit",
				zap.String("order_id", orderID),
				zap.String("product_id", plan.input.ProductID),
				zap.Error(err),
			)
		}
	}
}

// UpdateStatus applies the requested status. Stock is credited back only on
// a transition into Cancelled from a non-Cancelled state, which is what makes
// re-cancelling idempotent. Every other edge is a plain status write.
func (uc *orderUseCase) UpdateStatus(ctx context.Context, orderID string, newStatus model.OrderStatus) (*model.Order, error) {
	if !newStatus.Valid() {
		return nil, apperr.New(apperr.KindValidation, "Invalid order status")
	}

	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load order", err)
	}
	if o == nil {
		return nil, apperr.New(apperr.KindNotFound, "Order not found")
	}

	previous := o.Status

	if newStatus == model.StatusCancelled && previous != model.StatusCancelled {
		uc.restock(ctx, o)
	} else if previous == model.StatusCancelled && newStatus != model.StatusCancelled {
		// Permitted edge with no ledger effect; worth a trace since it can
		// leave sold quantities restocked.
		uc.logger.Info("order leaving Cancelled without stock effect",
			zap.String("order_id", o.ID),
			zap.String("to", string(newStatus)),
		)
	}

	now := time.Now()
	if err := uc.repo.UpdateStatus(ctx, o.ID, newStatus, now); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update order status", err)
	}
	o.Status = newStatus
	o.UpdatedAt = now

	if uc.events != nil {
		uc.events.OrderStatusChanged(ctx, o, previous)
	}
	return o, nil
}

// restock credits every line item back. A product deleted since the order
// was placed is skipped; a size merely removed from the product is recreated
// by the credit upsert.
func (uc *orderUseCase) restock(ctx context.Context, o *model.Order) {
	ref := invdto.MovementRef{Type: "cancellation", ID: o.ID}
	for _, item := range o.Items {
		av, _, err := uc.ledger.CheckAvailability(ctx, item.ProductID, item.SelectedSize, 0)
		if err != nil {
			uc.logger.Error("restock check failed",
				zap.String("order_id", o.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			continue
		}
		if av == inventory.ProductNotFound {
			continue
		}
		if err := uc.ledger.Credit(ctx, item.ProductID, item.SelectedSize, item.Quantity, ref); err != nil {
			uc.logger.Error("failed to restock item",
				zap.String("order_id", o.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}

func (uc *orderUseCase) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list orders", err)
	}
	return orders, nil
}

func (uc *orderUseCase) ListUserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := uc.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list orders", err)
	}
	return orders, nil
}

func (uc *orderUseCase) CountPending(ctx context.Context) (int, error) {
	count, err := uc.repo.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count pending orders", err)
	}
	return count, nil
}
