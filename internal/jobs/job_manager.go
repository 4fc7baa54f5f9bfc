package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	proposalsJob *AssignmentProposalsJob
	auditJob     *ConsistencyAuditJob
}

// NewJobManager creates a new job manager over the already-wired jobs.
func NewJobManager(
	proposalsJob *AssignmentProposalsJob,
	auditJob *ConsistencyAuditJob,
) *JobManager {
	return &JobManager{
		proposalsJob: proposalsJob,
		auditJob:     auditJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.proposalsJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment proposals job: %w", err)
	}

	if err := jm.auditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.proposalsJob.Stop()
		return fmt.Errorf("failed to start consistency audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.auditJob.Stop()
	jm.proposalsJob.Stop()
}
