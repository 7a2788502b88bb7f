package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobFunc is the body of a periodic job
type JobFunc func(ctx context.Context) error

// Job is a named function run every Interval
type Job struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
}

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobStats summarizes the runs of a job
type JobStats struct {
	Status    JobStatus
	Runs      int64
	Failures  int64
	LastRunAt *time.Time
	LastError string
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	Enabled bool
	// JobTimeout bounds a single run
	JobTimeout time.Duration
	// RunOnStart runs every job once right after Start
	RunOnStart bool
}

// DefaultSchedulerConfig returns default scheduler configuration
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:    true,
		JobTimeout: 2 * time.Minute,
		RunOnStart: true,
	}
}

// Scheduler runs registered jobs on fixed intervals. Each job has its own
// ticker; a run that is still in progress when the next tick fires
// delays that tick rather than overlapping it.
type Scheduler struct {
	config SchedulerConfig
	logger *zap.Logger

	jobs  []Job
	locks map[string]*sync.Mutex
	stats map[string]*JobStats

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(config SchedulerConfig, logger *zap.Logger) *Scheduler {
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultSchedulerConfig().JobTimeout
	}
	return &Scheduler{
		config: config,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
		stats:  make(map[string]*JobStats),
	}
}

// Register adds a job. Jobs must be registered before Start.
func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Interval <= 0 || job.Run == nil {
		return fmt.Errorf("%w: %q", ErrInvalidJob, job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	if _, exists := s.stats[job.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, job.Name)
	}
	s.jobs = append(s.jobs, job)
	s.locks[job.Name] = &sync.Mutex{}
	s.stats[job.Name] = &JobStats{Status: JobStatusPending}
	return nil
}

// Start starts one loop per registered job
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Scheduler disabled")
		return nil
	}
	s.isRunning = true
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}

	s.logger.Info("Scheduler started",
		zap.Int("jobs", len(jobs)),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels the job loops and waits for running jobs to return
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the scheduler has been started
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunNow runs a job synchronously, outside its schedule
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.run(ctx, job)
}

// Stats returns a snapshot of the runs of a job
func (s *Scheduler) Stats(name string) (JobStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[name]
	if !ok {
		return JobStats{}, false
	}
	return *stats, true
}

func (s *Scheduler) find(name string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		if job.Name == name {
			return job, true
		}
	}
	return Job{}, false
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		_ = s.run(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Job loop stopping", zap.String("job", job.Name))
			return
		case <-ticker.C:
			_ = s.run(ctx, job)
		}
	}
}

// run executes a job once with the configured timeout. Runs of the same
// job are serialized.
func (s *Scheduler) run(ctx context.Context, job Job) (err error) {
	lock := s.lockFor(job.Name)
	lock.Lock()
	defer lock.Unlock()

	s.record(job.Name, func(st *JobStats) { st.Status = JobStatusRunning })
	start := time.Now()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
		s.finish(job.Name, start, err)
	}()

	return job.Run(jobCtx)
}

func (s *Scheduler) finish(name string, start time.Time, err error) {
	s.record(name, func(st *JobStats) {
		st.Runs++
		st.LastRunAt = &start
		if err != nil {
			st.Failures++
			st.Status = JobStatusFailed
			st.LastError = err.Error()
			return
		}
		st.Status = JobStatusSuccess
		st.LastError = ""
	})

	if err != nil {
		s.logger.Error("Job failed",
			zap.String("job", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Job completed",
		zap.String("job", name),
		zap.Duration("duration", time.Since(start)),
	)
}

func (s *Scheduler) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks[name]
}

func (s *Scheduler) record(name string, fn func(*JobStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stats[name]; ok {
		fn(st)
	}
}
