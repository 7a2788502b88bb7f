package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler(config SchedulerConfig) *Scheduler {
	return NewScheduler(config, zap.NewNop())
}

func counting(calls *atomic.Int64, err error) JobFunc {
	return func(context.Context) error {
		calls.Add(1)
		return err
	}
}

func TestScheduler_Register(t *testing.T) {
	s := newTestScheduler(DefaultSchedulerConfig())
	var calls atomic.Int64

	tests := []struct {
		name string
		job  Job
		want error
	}{
		{"valid", Job{Name: "a", Interval: time.Minute, Run: counting(&calls, nil)}, nil},
		{"duplicate", Job{Name: "a", Interval: time.Minute, Run: counting(&calls, nil)}, ErrDuplicateJob},
		{"no name", Job{Interval: time.Minute, Run: counting(&calls, nil)}, ErrInvalidJob},
		{"no interval", Job{Name: "b", Run: counting(&calls, nil)}, ErrInvalidJob},
		{"no func", Job{Name: "c", Interval: time.Minute}, ErrInvalidJob},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Register(tt.job)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScheduler_RunNow(t *testing.T) {
	s := newTestScheduler(DefaultSchedulerConfig())
	var calls atomic.Int64
	boom := errors.New("boom")
	require.NoError(t, s.Register(Job{Name: "ok", Interval: time.Hour, Run: counting(&calls, nil)}))
	require.NoError(t, s.Register(Job{Name: "fails", Interval: time.Hour, Run: counting(&calls, boom)}))
	require.NoError(t, s.Register(Job{Name: "panics", Interval: time.Hour, Run: func(context.Context) error {
		panic("bad state")
	}}))

	require.NoError(t, s.RunNow(context.Background(), "ok"))
	stats, ok := s.Stats("ok")
	require.True(t, ok)
	assert.Equal(t, JobStatusSuccess, stats.Status)
	assert.Equal(t, int64(1), stats.Runs)
	assert.NotNil(t, stats.LastRunAt)

	assert.ErrorIs(t, s.RunNow(context.Background(), "fails"), boom)
	stats, _ = s.Stats("fails")
	assert.Equal(t, JobStatusFailed, stats.Status)
	assert.Equal(t, int64(1), stats.Failures)
	assert.Equal(t, "boom", stats.LastError)

	err := s.RunNow(context.Background(), "panics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad state")

	assert.ErrorIs(t, s.RunNow(context.Background(), "missing"), ErrJobNotFound)
	_, ok = s.Stats("missing")
	assert.False(t, ok)
	assert.Equal(t, int64(2), calls.Load())
}

func TestScheduler_JobTimeout(t *testing.T) {
	s := newTestScheduler(SchedulerConfig{Enabled: true, JobTimeout: 20 * time.Millisecond})
	require.NoError(t, s.Register(Job{Name: "slow", Interval: time.Hour, Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}))

	assert.ErrorIs(t, s.RunNow(context.Background(), "slow"), context.DeadlineExceeded)
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(SchedulerConfig{Enabled: true, JobTimeout: time.Second})
	var calls atomic.Int64
	require.NoError(t, s.Register(Job{Name: "tick", Interval: 10 * time.Millisecond, Run: counting(&calls, nil)}))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.ErrorIs(t, s.Register(Job{Name: "late", Interval: time.Second, Run: counting(&calls, nil)}), ErrSchedulerRunning)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestScheduler_RunOnStart(t *testing.T) {
	s := newTestScheduler(SchedulerConfig{Enabled: true, RunOnStart: true})
	var calls atomic.Int64
	require.NoError(t, s.Register(Job{Name: "once", Interval: time.Hour, Run: counting(&calls, nil)}))

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_Disabled(t *testing.T) {
	s := newTestScheduler(SchedulerConfig{Enabled: false, RunOnStart: true})
	var calls atomic.Int64
	require.NoError(t, s.Register(Job{Name: "never", Interval: time.Millisecond, Run: counting(&calls, nil)}))

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
	require.NoError(t, s.Stop(context.Background()))
}

type fakeExpirer struct {
	n   int64
	err error
	at  time.Time
}

func (f *fakeExpirer) ExpireOffers(_ context.Context, now time.Time) (int64, error) {
	f.at = now
	return f.n, f.err
}

type fakePurger struct {
	before time.Time
}

func (f *fakePurger) DeleteStaleSessionCarts(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 2, nil
}

func TestShopJobs(t *testing.T) {
	t.Run("expire offers", func(t *testing.T) {
		expirer := &fakeExpirer{n: 3}
		job := NewExpireOffersJob(expirer, time.Minute, zap.NewNop())
		assert.Equal(t, JobExpireOffers, job.Name)
		require.NoError(t, job.Run(context.Background()))
		assert.WithinDuration(t, time.Now(), expirer.at, time.Second)

		expirer.err = errors.New("db down")
		assert.Error(t, job.Run(context.Background()))
	})

	t.Run("purge stale carts", func(t *testing.T) {
		purger := &fakePurger{}
		job := NewPurgeStaleCartsJob(purger, time.Hour, 48*time.Hour, zap.NewNop())
		assert.Equal(t, JobPurgeStaleCarts, job.Name)
		require.NoError(t, job.Run(context.Background()))
		assert.WithinDuration(t, time.Now().Add(-48*time.Hour), purger.before, time.Second)
	})
}
