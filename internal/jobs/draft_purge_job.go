package jobs

import (
	"context"
	"log/slog"
	"time"

	"procserve/internal/core/application/usecases/commands"
	"procserve/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DraftPurgeJob deletes drafts whose last autosave is older than the
// retention period. Runs hourly.
type DraftPurgeJob struct {
	handler   commands.PurgeStaleDraftsCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDraftPurgeJob creates the purge job with the given retention period.
func NewDraftPurgeJob(
	handler commands.PurgeStaleDraftsCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *DraftPurgeJob {
	return &DraftPurgeJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "draft_purge_job"),
	}
}

// Start schedules the job at the top of every hour.
func (j *DraftPurgeJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewPurgeStaleDraftsCommand(j.retention)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Draft purge command invalid", "error", cmdErr)
			return
		}

		purged, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Draft purge job failed", "error", handleErr)
			return
		}

		metrics.DraftsPurged.Add(float64(purged))
		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged stale drafts", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft purge job started (running hourly)")
	return nil
}

// Stop stops the purge job.
func (j *DraftPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft purge job stopped")
}
