package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/enkellaering/admin-backend/internal/model"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const snapshotJobTimeout = 5 * time.Minute

// Archiver stores a month's revenue report.
type Archiver interface {
	Archive(ctx context.Context, adminUserID string, year, month int) (*model.RevenueSnapshot, error)
}

// SnapshotWorker archives the previous month's report for a fixed set of
// admins on a cron schedule, so the month is frozen once it has closed.
type SnapshotWorker struct {
	archiver Archiver
	adminIDs []string
	schedule string
	loc      *time.Location
	log      zerolog.Logger
}

// NewSnapshotWorker creates a SnapshotWorker. schedule is a standard five-field
// cron expression evaluated in loc.
func NewSnapshotWorker(archiver Archiver, adminIDs []string, schedule string, loc *time.Location, log zerolog.Logger) *SnapshotWorker {
	return &SnapshotWorker{
		archiver: archiver,
		adminIDs: adminIDs,
		schedule: schedule,
		loc:      loc,
		log:      log.With().Str("component", "snapshot_worker").Logger(),
	}
}

// Start schedules the job and blocks until ctx is cancelled. Call in a goroutine.
func (w *SnapshotWorker) Start(ctx context.Context) error {
	if len(w.adminIDs) == 0 {
		w.log.Info().Msg("No admins configured, worker disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(w.loc))
	if _, err := c.AddFunc(w.schedule, func() {
		jobCtx, cancel := context.WithTimeout(ctx, snapshotJobTimeout)
		defer cancel()
		w.runOnce(jobCtx, time.Now())
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", w.schedule, err)
	}

	c.Start()
	w.log.Info().Str("schedule", w.schedule).Int("admins", len(w.adminIDs)).Msg("Worker started")

	<-ctx.Done()
	w.log.Info().Msg("Worker stopping...")
	<-c.Stop().Done()
	w.log.Info().Msg("Worker stopped")
	return nil
}

// runOnce archives the month before the one containing now. A failure for
// one admin does not stop the others.
func (w *SnapshotWorker) runOnce(ctx context.Context, now time.Time) int {
	year, month := previousMonth(now.In(w.loc))

	archived := 0
	for _, id := range w.adminIDs {
		if _, err := w.archiver.Archive(ctx, id, year, month); err != nil {
			w.log.Error().Err(err).
				Str("admin_user_id", id).
				Int("year", year).
				Int("month", month).
				Msg("Failed to archive revenue snapshot")
			continue
		}
		archived++
	}
	return archived
}

func previousMonth(t time.Time) (int, int) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}
