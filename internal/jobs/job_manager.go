package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"procserve/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	draftPurgeJob *DraftPurgeJob
}

// NewJobManager creates a job manager wired to its command handlers.
func NewJobManager(
	purgeHandler commands.PurgeStaleDraftsCommandHandler,
	draftRetention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		draftPurgeJob: NewDraftPurgeJob(purgeHandler, draftRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.draftPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start draft purge job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.draftPurgeJob.Stop()
}
