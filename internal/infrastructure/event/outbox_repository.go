package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements shared.OutboxStore using GORM
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM-based outbox repository
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Save inserts entries; inside a transaction they commit with the aggregate change
func (r *GormOutboxRepository) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.OutboxEventModel, len(entries))
	for i, e := range entries {
		rows[i] = models.OutboxEventModelFromDomain(e)
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

// Claim locks up to limit deliverable entries, skipping rows another relay
// holds, and marks them as processing before the lock is released.
func (r *GormOutboxRepository) Claim(ctx context.Context, now time.Time, limit int) ([]*shared.OutboxEntry, error) {
	var rows []models.OutboxEventModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? OR (status = ? AND next_retry_at <= ?)",
				shared.OutboxStatusPending, shared.OutboxStatusFailed, now).
			Order("created_at ASC").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		return tx.Model(&models.OutboxEventModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":     shared.OutboxStatusProcessing,
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*shared.OutboxEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
		entries[i].Status = shared.OutboxStatusProcessing
		entries[i].UpdatedAt = now
	}
	return entries, nil
}

// Update writes the delivery state of an entry
func (r *GormOutboxRepository) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	return r.db.WithContext(ctx).
		Model(&models.OutboxEventModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"status":        entry.Status,
			"retry_count":   entry.RetryCount,
			"last_error":    entry.LastError,
			"next_retry_at": entry.NextRetryAt,
			"processed_at":  entry.ProcessedAt,
			"updated_at":    entry.UpdatedAt,
		}).Error
}

// FindByID retrieves a single outbox entry
func (r *GormOutboxRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.OutboxEntry, error) {
	var row models.OutboxEventModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindDead returns a page of dead entries, most recently failed first
func (r *GormOutboxRepository) FindDead(ctx context.Context, filter shared.Filter) ([]*shared.OutboxEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.OutboxEventModel{}).
		Where("status = ?", shared.OutboxStatusDead).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Where("status = ?", shared.OutboxStatusDead).
		Order("updated_at DESC")
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	var rows []models.OutboxEventModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]*shared.OutboxEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, total, nil
}

// CountByStatus returns the number of entries in each status
func (r *GormOutboxRepository) CountByStatus(ctx context.Context) (map[shared.OutboxStatus]int64, error) {
	var results []struct {
		Status shared.OutboxStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OutboxEventModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[shared.OutboxStatus]int64, len(results))
	for _, row := range results {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// DeleteSentBefore removes delivered entries processed before the cutoff
func (r *GormOutboxRepository) DeleteSentBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", shared.OutboxStatusSent, before).
		Delete(&models.OutboxEventModel{})
	return result.RowsAffected, result.Error
}

var _ shared.OutboxStore = (*GormOutboxRepository)(nil)
