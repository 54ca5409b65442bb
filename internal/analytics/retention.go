package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionJob prunes visits older than the retention window on a daily
// schedule. Zero or negative retention disables pruning entirely.
type RetentionJob struct {
	repo      *VisitRepo
	retention time.Duration
	log       *slog.Logger
	cron      *cron.Cron
}

func NewRetentionJob(repo *VisitRepo, retention time.Duration, log *slog.Logger) *RetentionJob {
	if log == nil {
		log = slog.Default()
	}
	return &RetentionJob{
		repo:      repo,
		retention: retention,
		log:       log.With("component", "retention"),
	}
}

// Start schedules the nightly prune. No-op when retention is disabled.
func (j *RetentionJob) Start() error {
	if j.retention <= 0 {
		j.log.Info("visit retention disabled")
		return nil
	}
	j.cron = cron.New()
	if _, err := j.cron.AddFunc("@daily", j.RunOnce); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info("visit retention scheduled", "window", j.retention)
	return nil
}

// Stop halts the schedule and waits for a running prune to finish.
func (j *RetentionJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}

// RunOnce prunes immediately. Exported so the server can also trigger it at
// startup and tests can drive it directly.
func (j *RetentionJob) RunOnce() {
	if j.retention <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-j.retention)
	n, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.log.Error("visit prune failed", "error", err)
		return
	}
	if n > 0 {
		j.log.Info("pruned old visits", "removed", n, "cutoff", cutoff.UTC().Format(time.RFC3339))
	}
}
