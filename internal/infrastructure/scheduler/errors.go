package scheduler

import "errors"

var (
	// ErrSchedulerRunning is returned when registering a job on a started scheduler
	ErrSchedulerRunning = errors.New("scheduler is already running")

	// ErrInvalidJob is returned for jobs without a name, a positive interval or a function
	ErrInvalidJob = errors.New("invalid job")

	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("job already registered")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")
)
