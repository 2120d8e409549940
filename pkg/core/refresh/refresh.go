// Package refresh recomputes stored analyses on a schedule. Tariff defaults
// and engine revisions change over time; persisted proposals would silently
// drift from what a fresh computation returns, so a nightly job replays
// stale records through the pipeline.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"solarfin/pkg/core/pipeline"
	"solarfin/pkg/core/store"
)

// Refresher owns the cron schedule and the recomputation batch settings.
type Refresher struct {
	Cron      *cron.Cron
	orch      *pipeline.Orchestrator
	repo      store.ProjectRepository
	olderThan time.Duration
	batchSize int
}

// NewRefresher creates a refresher over the given orchestrator and
// repository. Records untouched for olderThan are eligible; at most
// batchSize are recomputed per run.
func NewRefresher(orch *pipeline.Orchestrator, repo store.ProjectRepository, olderThan time.Duration, batchSize int) *Refresher {
	return &Refresher{
		Cron:      cron.New(),
		orch:      orch,
		repo:      repo,
		olderThan: olderThan,
		batchSize: batchSize,
	}
}

// Register schedules the refresh at the given cron spec (standard five-field
// syntax, e.g. "0 3 * * *" for 03:00 daily).
func (r *Refresher) Register(spec string) error {
	if _, err := r.Cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		r.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start begins the schedule in its own goroutine.
func (r *Refresher) Start() { r.Cron.Start() }

// Stop halts the schedule; running jobs finish.
func (r *Refresher) Stop() { r.Cron.Stop() }

// RunOnce refreshes one batch immediately. Failures on individual records
// are logged and skipped so one bad row never stalls the batch.
func (r *Refresher) RunOnce(ctx context.Context) {
	records, err := r.repo.ListStale(ctx, r.olderThan, r.batchSize)
	if err != nil {
		fmt.Printf("[REFRESH] Stale scan failed: %v\n", err)
		return
	}
	if len(records) == 0 {
		return
	}

	fmt.Printf("[REFRESH] Recomputing %d stale analyses...\n", len(records))
	refreshed := 0
	for _, rec := range records {
		if err := r.orch.Recompute(ctx, rec); err != nil {
			fmt.Printf("[REFRESH] Skipping %s: %v\n", rec.ID, err)
			continue
		}
		refreshed++
	}
	fmt.Printf("[REFRESH] Done: %d/%d refreshed\n", refreshed, len(records))
}
