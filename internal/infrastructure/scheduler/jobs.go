package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job names
const (
	JobExpireOffers    = "expire-offers"
	JobPurgeStaleCarts = "purge-stale-carts"
	JobPurgeSentEvents = "purge-sent-events"
)

// OfferExpirer deactivates offers whose window has closed
type OfferExpirer interface {
	ExpireOffers(ctx context.Context, now time.Time) (int64, error)
}

// StaleCartPurger removes anonymous carts left idle
type StaleCartPurger interface {
	DeleteStaleSessionCarts(ctx context.Context, before time.Time) (int64, error)
}

// NewExpireOffersJob deactivates product offers past their end
func NewExpireOffersJob(expirer OfferExpirer, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     JobExpireOffers,
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := expirer.ExpireOffers(ctx, time.Now())
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("Expired offers deactivated", zap.Int64("count", n))
			}
			return nil
		},
	}
}

// NewPurgeStaleCartsJob deletes session carts not touched within retention
func NewPurgeStaleCartsJob(purger StaleCartPurger, interval, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     JobPurgeStaleCarts,
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := purger.DeleteStaleSessionCarts(ctx, time.Now().Add(-retention))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("Stale session carts purged",
					zap.Int64("count", n),
					zap.Duration("retention", retention),
				)
			}
			return nil
		},
	}
}

// SentEventPurger removes delivered outbox entries
type SentEventPurger interface {
	DeleteSentBefore(ctx context.Context, before time.Time) (int64, error)
}

// NewPurgeSentEventsJob deletes outbox entries delivered more than retention ago
func NewPurgeSentEventsJob(purger SentEventPurger, interval, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     JobPurgeSentEvents,
		Interval: interval,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().Add(-retention)
			n, err := purger.DeleteSentBefore(ctx, cutoff)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("Delivered events purged", zap.Int64("count", n), zap.Time("cutoff", cutoff))
			}
			return nil
		},
	}
}
