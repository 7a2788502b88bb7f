package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type relayFixture struct {
	repo      *GormOutboxRepository
	bus       *InMemoryEventBus
	handler   *testHandler
	processor *OutboxProcessor
}

func newRelayFixture(t *testing.T, config RelayConfig) *relayFixture {
	t.Helper()
	logger := zap.NewNop()
	serializer := NewEventSerializer()
	serializer.Register("TestEvent", &testEvent{})

	repo := NewGormOutboxRepository(setupOutboxDB(t))
	bus := NewInMemoryEventBus(logger)
	handler := newTestHandler("TestEvent")
	bus.Subscribe(handler)

	return &relayFixture{
		repo:      repo,
		bus:       bus,
		handler:   handler,
		processor: NewOutboxProcessor(repo, bus, serializer, config, logger),
	}
}

func (f *relayFixture) save(t *testing.T, eventType string) *shared.OutboxEntry {
	t.Helper()
	serializer := NewEventSerializer()
	serializer.Register(eventType, &testEvent{})
	event := newTestEvent(eventType)
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)

	entry := shared.NewOutboxEntry(event, payload)
	require.NoError(t, f.repo.Save(context.Background(), entry))
	return entry
}

func TestOutboxProcessor_ProcessOnce_Delivers(t *testing.T) {
	f := newRelayFixture(t, DefaultRelayConfig())
	ctx := context.Background()
	entry := f.save(t, "TestEvent")

	n, err := f.processor.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	handled := f.handler.getHandled()
	require.Len(t, handled, 1)
	assert.Equal(t, entry.EventID, handled[0].EventID())

	stored, err := f.repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusSent, stored.Status)
	assert.NotNil(t, stored.ProcessedAt)

	n, err = f.processor.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxProcessor_HandlerFailureSchedulesRetry(t *testing.T) {
	f := newRelayFixture(t, DefaultRelayConfig())
	ctx := context.Background()
	f.handler.setError(errors.New("notifier down"))
	entry := f.save(t, "TestEvent")

	_, err := f.processor.ProcessOnce(ctx)
	require.NoError(t, err)

	stored, err := f.repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	assert.Contains(t, stored.LastError, "notifier down")
	require.NotNil(t, stored.NextRetryAt)
	assert.True(t, stored.NextRetryAt.After(time.Now()))

	// not due yet
	n, err := f.processor.ProcessOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxProcessor_UnknownTypeEventuallyDies(t *testing.T) {
	f := newRelayFixture(t, DefaultRelayConfig())
	ctx := context.Background()
	entry := f.save(t, "Unregistered")

	for i := 0; i < shared.DefaultOutboxMaxRetries; i++ {
		stored, err := f.repo.FindByID(ctx, entry.ID)
		require.NoError(t, err)
		f.processor.deliver(ctx, stored)
	}

	stored, err := f.repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusDead, stored.Status)
	assert.Contains(t, stored.LastError, "unknown event type")
	assert.Empty(t, f.handler.getHandled())
}

func TestOutboxProcessor_StartStop(t *testing.T) {
	f := newRelayFixture(t, RelayConfig{
		BatchSize:    10,
		PollInterval: 20 * time.Millisecond,
	})
	entry := f.save(t, "TestEvent")

	require.NoError(t, f.processor.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return len(f.handler.getHandled()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.processor.Stop(stopCtx))

	stored, err := f.repo.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusSent, stored.Status)
}

func TestOutboxProcessor_DrainsFullBatches(t *testing.T) {
	f := newRelayFixture(t, RelayConfig{BatchSize: 2, PollInterval: time.Hour})
	for range 5 {
		f.save(t, "TestEvent")
	}

	f.processor.drain(context.Background())

	assert.Len(t, f.handler.getHandled(), 5)
	counts, err := f.repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts[shared.OutboxStatusSent])
}

func TestOutboxProcessor_BusStoppedKeepsEntryForRetry(t *testing.T) {
	f := newRelayFixture(t, DefaultRelayConfig())
	ctx := context.Background()
	require.NoError(t, f.bus.Stop(ctx))
	entry := f.save(t, "TestEvent")

	_, err := f.processor.ProcessOnce(ctx)
	require.NoError(t, err)

	stored, err := f.repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.OutboxStatusFailed, stored.Status)
	assert.Contains(t, stored.LastError, ErrBusStopped.Error())
}

func TestOutboxProcessor_StartTwice(t *testing.T) {
	f := newRelayFixture(t, RelayConfig{PollInterval: time.Hour})
	require.NoError(t, f.processor.Start(context.Background()))
	assert.Error(t, f.processor.Start(context.Background()))
	require.NoError(t, f.processor.Stop(context.Background()))
	require.NoError(t, f.processor.Stop(context.Background()), "stopping an idle relay is a no-op")
}

type failingClaimStore struct {
	shared.OutboxStore
}

func (failingClaimStore) Claim(context.Context, time.Time, int) ([]*shared.OutboxEntry, error) {
	return nil, errors.New("connection reset")
}

func TestOutboxProcessor_ProcessOnce_ClaimError(t *testing.T) {
	processor := NewOutboxProcessor(failingClaimStore{}, NewInMemoryEventBus(zap.NewNop()),
		NewEventSerializer(), RelayConfig{}, zap.NewNop())

	n, err := processor.ProcessOnce(context.Background())
	require.Error(t, err)
	assert.Zero(t, n)
}

func TestNewOutboxProcessor_FillsDefaults(t *testing.T) {
	processor := NewOutboxProcessor(failingClaimStore{}, NewInMemoryEventBus(zap.NewNop()),
		NewEventSerializer(), RelayConfig{}, zap.NewNop())

	assert.Equal(t, DefaultRelayConfig(), processor.config)
}
