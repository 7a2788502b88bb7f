package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RelayConfig tunes the outbox relay
type RelayConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{BatchSize: 100, PollInterval: 2 * time.Second}
}

// OutboxProcessor relays committed outbox entries to the event bus. An entry
// is marked sent only after every handler accepted it, so delivery is at
// least once.
type OutboxProcessor struct {
	store      shared.OutboxStore
	publisher  shared.EventPublisher
	serializer *EventSerializer
	config     RelayConfig
	logger     *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewOutboxProcessor(store shared.OutboxStore, publisher shared.EventPublisher, serializer *EventSerializer, config RelayConfig, logger *zap.Logger) *OutboxProcessor {
	def := DefaultRelayConfig()
	if config.BatchSize <= 0 {
		config.BatchSize = def.BatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = def.PollInterval
	}
	return &OutboxProcessor{
		store:      store,
		publisher:  publisher,
		serializer: serializer,
		config:     config,
		logger:     logger.Named("outbox"),
	}
}

// Start launches the relay loop. Starting a running relay is an error.
func (p *OutboxProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		return errors.New("outbox relay already running")
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)

	p.logger.Info("Outbox relay started",
		zap.Int("batch_size", p.config.BatchSize),
		zap.Duration("poll_interval", p.config.PollInterval),
	)
	return nil
}

// Stop cancels the loop and waits for the batch in flight
func (p *OutboxProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if done == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		p.logger.Info("Outbox relay stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *OutboxProcessor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

// drain keeps claiming while batches come back full
func (p *OutboxProcessor) drain(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := p.ProcessOnce(ctx)
		if err != nil {
			if ctx.Err() == nil {
				p.logger.Error("Failed to claim outbox entries", zap.Error(err))
			}
			return
		}
		if n < p.config.BatchSize {
			return
		}
	}
}

// ProcessOnce claims one batch and delivers it, returning how many entries
// were claimed.
func (p *OutboxProcessor) ProcessOnce(ctx context.Context) (int, error) {
	entries, err := p.store.Claim(ctx, time.Now(), p.config.BatchSize)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		p.deliver(ctx, entry)
	}
	return len(entries), nil
}

func (p *OutboxProcessor) deliver(ctx context.Context, entry *shared.OutboxEntry) {
	log := p.logger.With(
		zap.String("event_id", entry.EventID.String()),
		zap.String("event_type", entry.EventType),
	)

	event, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err == nil {
		err = p.publisher.Publish(ctx, event)
	}
	if err == nil {
		entry.MarkSent()
	} else {
		entry.MarkFailed(err.Error())
		if entry.IsDead() {
			log.Warn("Event abandoned after retries",
				zap.String("aggregate_type", entry.AggregateType),
				zap.String("aggregate_id", entry.AggregateID.String()),
				zap.Int("retry_count", entry.RetryCount),
				zap.Error(err),
			)
		} else {
			log.Error("Event delivery failed", zap.Int("retry_count", entry.RetryCount), zap.Error(err))
		}
	}

	if uerr := p.store.Update(ctx, entry); uerr != nil {
		log.Error("Failed to record delivery state", zap.String("status", string(entry.Status)), zap.Error(uerr))
		return
	}
	if err == nil {
		log.Debug("Event delivered")
	}
}
