package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	infraevent "github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type outboxFixture struct {
	repo    *infraevent.GormOutboxRepository
	service *OutboxService
}

func newOutboxFixture(t *testing.T) *outboxFixture {
	t.Helper()
	repo := infraevent.NewGormOutboxRepository(testutil.NewSQLiteDB(t))
	return &outboxFixture{repo: repo, service: NewOutboxService(repo, zap.NewNop())}
}

// addEntry stores an OrderPlaced entry, failed until dead when dead is set
func (f *outboxFixture) addEntry(t *testing.T, dead bool) *shared.OutboxEntry {
	t.Helper()
	event := &order.OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(order.EventTypeOrderPlaced, order.AggregateTypeOrder, uuid.New()),
	}
	entry := shared.NewOutboxEntry(event, []byte(`{}`))
	require.NoError(t, f.repo.Save(context.Background(), entry))
	if dead {
		for !entry.IsDead() {
			entry.MarkFailed("notifier down")
		}
		require.NoError(t, f.repo.Update(context.Background(), entry))
	}
	return entry
}

func TestOutboxService_ListDead(t *testing.T) {
	f := newOutboxFixture(t)
	ctx := context.Background()
	for range 3 {
		f.addEntry(t, true)
	}
	f.addEntry(t, false)

	page, err := f.service.ListDead(ctx, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext())
	for _, e := range page.Items {
		assert.Equal(t, string(shared.OutboxStatusDead), e.Status)
		assert.Equal(t, "notifier down", e.LastError)
		assert.Equal(t, order.EventTypeOrderPlaced, e.EventType)
	}

	page, err = f.service.ListDead(ctx, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestOutboxService_GetEntry(t *testing.T) {
	f := newOutboxFixture(t)
	entry := f.addEntry(t, false)

	got, err := f.service.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.EventID, got.EventID)
	assert.Equal(t, string(shared.OutboxStatusPending), got.Status)

	_, err = f.service.GetEntry(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOutboxService_Requeue(t *testing.T) {
	f := newOutboxFixture(t)
	ctx := context.Background()
	dead := f.addEntry(t, true)

	got, err := f.service.Requeue(ctx, dead.ID)
	require.NoError(t, err)
	assert.Equal(t, string(shared.OutboxStatusPending), got.Status)
	assert.Zero(t, got.RetryCount)
	assert.Empty(t, got.LastError)

	stored, err := f.repo.FindByID(ctx, dead.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusPending, stored.Status)

	_, err = f.service.Requeue(ctx, dead.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState, "a requeued entry is no longer dead")
}

func TestOutboxService_RequeueAllDead(t *testing.T) {
	f := newOutboxFixture(t)
	ctx := context.Background()
	for range requeueBatch + 3 {
		f.addEntry(t, true)
	}
	f.addEntry(t, false)

	count, err := f.service.RequeueAllDead(ctx)
	require.NoError(t, err)
	assert.Equal(t, requeueBatch+3, count)

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(requeueBatch+4), stats.Pending)
	assert.Zero(t, stats.Dead)
	assert.Equal(t, stats.Pending, stats.Total)
}

// stuckStore refuses to save one entry
type stuckStore struct {
	*infraevent.GormOutboxRepository
	stuck uuid.UUID
}

func (s stuckStore) Update(ctx context.Context, e *shared.OutboxEntry) error {
	if e.ID == s.stuck {
		return errors.New("connection reset")
	}
	return s.GormOutboxRepository.Update(ctx, e)
}

func TestOutboxService_RequeueAllDead_SkipsFailedSaves(t *testing.T) {
	f := newOutboxFixture(t)
	ctx := context.Background()
	stuck := f.addEntry(t, true)
	f.addEntry(t, true)

	svc := NewOutboxService(stuckStore{GormOutboxRepository: f.repo, stuck: stuck.ID}, zap.NewNop())
	count, err := svc.RequeueAllDead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := f.repo.FindByID(ctx, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusDead, stored.Status)
}

func TestOutboxService_Stats(t *testing.T) {
	f := newOutboxFixture(t)
	f.addEntry(t, true)
	f.addEntry(t, false)
	f.addEntry(t, false)

	stats, err := f.service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &OutboxStatsResponse{Pending: 2, Dead: 1, Total: 3}, stats)
}
