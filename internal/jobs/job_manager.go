package jobs

import (
	"fmt"
	"log/slog"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs   []namedJob
	logger *slog.Logger
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates an empty job manager. Jobs are added with Register.
func NewJobManager(logger *slog.Logger) *JobManager {
	return &JobManager{logger: logger.With("component", "job_manager")}
}

// Register adds a job. Jobs start in registration order and stop in reverse.
func (jm *JobManager) Register(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all registered jobs.
// Returns an error if any job fails to start; jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[j].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	if len(jm.jobs) == 0 {
		jm.logger.Info("No scheduled jobs configured")
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
