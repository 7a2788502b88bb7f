package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// requeueBatch bounds how many dead entries RequeueAllDead loads at once
const requeueBatch = 100

// OutboxService lets staff inspect the event outbox and hand events whose
// delivery was abandoned back to the relay
type OutboxService struct {
	store  shared.OutboxStore
	logger *zap.Logger
}

func NewOutboxService(store shared.OutboxStore, logger *zap.Logger) *OutboxService {
	return &OutboxService{store: store, logger: logger}
}

// OutboxEntryResponse is one stored event and its delivery state
type OutboxEntryResponse struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	EventType     string     `json:"event_type"`
	AggregateID   uuid.UUID  `json:"aggregate_id"`
	AggregateType string     `json:"aggregate_type"`
	Status        string     `json:"status"`
	RetryCount    int        `json:"retry_count"`
	MaxRetries    int        `json:"max_retries"`
	LastError     string     `json:"last_error,omitempty"`
	NextRetryAt   *time.Time `json:"next_retry_at,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OutboxStatsResponse counts entries per delivery state
type OutboxStatsResponse struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Failed     int64 `json:"failed"`
	Dead       int64 `json:"dead"`
	Total      int64 `json:"total"`
}

// RequeueResponse is the number of dead entries handed back to the relay
type RequeueResponse struct {
	Count int `json:"count"`
}

// ListDead pages through abandoned entries, most recently failed first
func (s *OutboxService) ListDead(ctx context.Context, filter shared.Filter) (shared.Paginated[OutboxEntryResponse], error) {
	entries, total, err := s.store.FindDead(ctx, filter)
	if err != nil {
		return shared.Paginated[OutboxEntryResponse]{}, fmt.Errorf("list dead outbox entries: %w", err)
	}
	items := make([]OutboxEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = toEntryResponse(e)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

func (s *OutboxService) GetEntry(ctx context.Context, id uuid.UUID) (*OutboxEntryResponse, error) {
	entry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry)
	return &resp, nil
}

// Requeue resets a dead entry to pending with a fresh retry budget. Entries
// in any other state are rejected with INVALID_STATE.
func (s *OutboxService) Requeue(ctx context.Context, id uuid.UUID) (*OutboxEntryResponse, error) {
	entry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entry.Requeue(); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("requeue outbox entry %s: %w", id, err)
	}

	s.logger.Info("Dead outbox entry requeued",
		zap.String("id", id.String()),
		zap.String("event_type", entry.EventType),
	)
	resp := toEntryResponse(entry)
	return &resp, nil
}

// RequeueAllDead requeues every dead entry. Entries that fail to save are
// logged and skipped; they stay dead and are returned by the next ListDead.
func (s *OutboxService) RequeueAllDead(ctx context.Context) (int, error) {
	count := 0
	for {
		// requeued entries leave the dead set, so the first page always holds the rest
		entries, _, err := s.store.FindDead(ctx, shared.Filter{Page: 1, PageSize: requeueBatch})
		if err != nil {
			return count, fmt.Errorf("list dead outbox entries: %w", err)
		}

		requeued := 0
		for _, entry := range entries {
			if err := entry.Requeue(); err != nil {
				continue
			}
			if err := s.store.Update(ctx, entry); err != nil {
				s.logger.Warn("Failed to requeue outbox entry", zap.String("id", entry.ID.String()), zap.Error(err))
				continue
			}
			requeued++
		}
		count += requeued

		if len(entries) < requeueBatch || requeued == 0 {
			break
		}
	}

	s.logger.Info("Dead outbox entries requeued", zap.Int("count", count))
	return count, nil
}

func (s *OutboxService) Stats(ctx context.Context) (*OutboxStatsResponse, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count outbox entries: %w", err)
	}

	stats := &OutboxStatsResponse{
		Pending:    counts[shared.OutboxStatusPending],
		Processing: counts[shared.OutboxStatusProcessing],
		Sent:       counts[shared.OutboxStatusSent],
		Failed:     counts[shared.OutboxStatusFailed],
		Dead:       counts[shared.OutboxStatusDead],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func (s *OutboxService) load(ctx context.Context, id uuid.UUID) (*shared.OutboxEntry, error) {
	entry, err := s.store.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Outbox entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load outbox entry %s: %w", id, err)
	}
	return entry, nil
}

func toEntryResponse(e *shared.OutboxEntry) OutboxEntryResponse {
	return OutboxEntryResponse{
		ID:            e.ID,
		EventID:       e.EventID,
		EventType:     e.EventType,
		AggregateID:   e.AggregateID,
		AggregateType: e.AggregateType,
		Status:        string(e.Status),
		RetryCount:    e.RetryCount,
		MaxRetries:    e.MaxRetries,
		LastError:     e.LastError,
		NextRetryAt:   e.NextRetryAt,
		ProcessedAt:   e.ProcessedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
