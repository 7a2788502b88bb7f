package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// cutoffRecorder captures the time each maintenance call was given
type cutoffRecorder struct {
	got   time.Time
	count int64
	err   error
}

func (r *cutoffRecorder) ExpireOffers(_ context.Context, now time.Time) (int64, error) {
	r.got = now
	return r.count, r.err
}

func (r *cutoffRecorder) DeleteStaleSessionCarts(_ context.Context, before time.Time) (int64, error) {
	r.got = before
	return r.count, r.err
}

func (r *cutoffRecorder) DeleteSentBefore(_ context.Context, before time.Time) (int64, error) {
	r.got = before
	return r.count, r.err
}

func TestMaintenanceJobs(t *testing.T) {
	const retention = 48 * time.Hour

	tests := []struct {
		name    string
		build   func(*cutoffRecorder, *zap.Logger) Job
		offset  time.Duration
		message string
	}{
		{"expire offers", func(r *cutoffRecorder, l *zap.Logger) Job {
			return NewExpireOffersJob(r, time.Minute, l)
		}, 0, "Expired offers deactivated"},
		{"purge carts", func(r *cutoffRecorder, l *zap.Logger) Job {
			return NewPurgeStaleCartsJob(r, time.Minute, retention, l)
		}, -retention, "Stale session carts purged"},
		{"purge events", func(r *cutoffRecorder, l *zap.Logger) Job {
			return NewPurgeSentEventsJob(r, time.Minute, retention, l)
		}, -retention, "Delivered events purged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			rec := &cutoffRecorder{count: 3}
			job := tt.build(rec, zap.New(core))
			assert.Equal(t, time.Minute, job.Interval)

			require.NoError(t, job.Run(context.Background()))
			assert.WithinDuration(t, time.Now().Add(tt.offset), rec.got, 5*time.Second)
			assert.Equal(t, 1, logs.FilterMessage(tt.message).Len())

			rec.count = 0
			require.NoError(t, job.Run(context.Background()))
			assert.Equal(t, 1, logs.FilterMessage(tt.message).Len(), "nothing is logged when nothing changed")

			rec.err = errors.New("database is locked")
			assert.ErrorIs(t, job.Run(context.Background()), rec.err)
		})
	}
}

func TestMaintenanceJobs_RegisterTogether(t *testing.T) {
	rec := &cutoffRecorder{}
	s := NewScheduler(DefaultSchedulerConfig(), zap.NewNop())

	for _, job := range []Job{
		NewExpireOffersJob(rec, time.Minute, zap.NewNop()),
		NewPurgeStaleCartsJob(rec, time.Hour, time.Hour, zap.NewNop()),
		NewPurgeSentEventsJob(rec, time.Hour, time.Hour, zap.NewNop()),
	} {
		require.NoError(t, s.Register(job))
	}
	require.NoError(t, s.RunNow(context.Background(), JobPurgeSentEvents))

	stats, ok := s.Stats(JobPurgeSentEvents)
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.Runs)
}
