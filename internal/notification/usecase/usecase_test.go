package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/order/events"
	"github.com/avadra/storefront-service/pkg/logger"
)

type fakeRepo struct {
	notifications []model.Notification
}

func (f *fakeRepo) Create(ctx context.Context, n *model.Notification) error {
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]model.Notification, error) {
	out := make([]model.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, id string) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) MarkAllRead(ctx context.Context) error {
	for i := range f.notifications {
		f.notifications[i].IsRead = true
	}
	return nil
}

func TestRecordAndList(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewNotificationUseCase(repo, logger.NewNop())

	require.NoError(t, uc.Record(context.Background(), model.NotificationOrderPlaced, "New order placed by Asha", "o1"))

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsRead)
	assert.Equal(t, "o1", list[0].ReferenceID)
	assert.NotEmpty(t, list[0].ID)
}

func TestMarkRead(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewNotificationUseCase(repo, logger.NewNop())

	require.NoError(t, uc.Record(context.Background(), model.NotificationOrderPlaced, "one", "o1"))
	require.NoError(t, uc.Record(context.Background(), model.NotificationOrderStatus, "two", "o2"))

	require.NoError(t, uc.MarkRead(context.Background(), repo.notifications[0].ID))
	assert.True(t, repo.notifications[0].IsRead)
	assert.False(t, repo.notifications[1].IsRead)

	require.NoError(t, uc.MarkAllRead(context.Background()))
	assert.True(t, repo.notifications[1].IsRead)
}

func TestRecorderCapturesOrderEvents(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewNotificationUseCase(repo, logger.NewNop())
	recorder := NewRecorder(uc, logger.NewNop())

	o := &model.Order{ID: "o1", UserName: "Asha", Status: model.StatusPending}
	recorder.OrderCreated(context.Background(), o)

	o.Status = model.StatusCancelled
	recorder.OrderStatusChanged(context.Background(), o, model.StatusPending)

	// A no-op transition produces no entry.
	recorder.OrderStatusChanged(context.Background(), o, model.StatusCancelled)

	require.Len(t, repo.notifications, 2)
	assert.Equal(t, model.NotificationOrderPlaced, repo.notifications[0].Type)
	assert.Contains(t, repo.notifications[0].Message, "Asha")
	assert.Equal(t, model.NotificationOrderStatus, repo.notifications[1].Type)
	assert.Equal(t, "o1", repo.notifications[1].ReferenceID)
}

func TestFanoutDelivery(t *testing.T) {
	repoA := &fakeRepo{}
	repoB := &fakeRepo{}
	recorderA := NewRecorder(NewNotificationUseCase(repoA, logger.NewNop()), logger.NewNop())
	recorderB := NewRecorder(NewNotificationUseCase(repoB, logger.NewNop()), logger.NewNop())

	fan := events.Fanout{recorderA, nil, recorderB}
	fan.OrderCreated(context.Background(), &model.Order{ID: "o1", UserName: "Asha"})

	assert.Len(t, repoA.notifications, 1)
	assert.Len(t, repoB.notifications, 1)
}
