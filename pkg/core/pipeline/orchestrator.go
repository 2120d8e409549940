// Package pipeline wires the pure engine to its collaborators: input
// validation, the result cache and the project repository. The engine never
// sees any of them; this is the only layer that performs I/O around a
// computation.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"solarfin/pkg/core/cache"
	"solarfin/pkg/core/finance"
	"solarfin/pkg/core/store"
	"solarfin/pkg/core/validate"
)

// Request is one analysis job. ProjectID is optional: when set, the computed
// result is persisted under that project.
type Request struct {
	ProjectID *uuid.UUID
	Name      string
	Input     finance.FinancialInput
}

// Orchestrator runs validate -> cache lookup -> engine -> persist.
type Orchestrator struct {
	repo     store.ProjectRepository
	cache    cache.ResultCache
	cacheTTL time.Duration
}

// NewOrchestrator creates an orchestrator with no collaborators attached;
// it then runs validation and the engine only. Permission checks happen in
// the caller before a request ever reaches this type.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{cacheTTL: 24 * time.Hour}
}

// SetRepository attaches a project repository (Postgres in production, the
// in-memory fake in tests).
func (o *Orchestrator) SetRepository(repo store.ProjectRepository) {
	o.repo = repo
}

// SetCache attaches a result cache with the given TTL.
func (o *Orchestrator) SetCache(c cache.ResultCache, ttl time.Duration) {
	o.cache = c
	if ttl > 0 {
		o.cacheTTL = ttl
	}
}

// Analyze executes one request end to end. Validation failures return an
// error listing every violation; a valid input always yields a complete
// result, sentinel-valued when numerically degenerate.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*finance.FinancialResult, error) {
	if err := validate.Input(req.Input); err != nil {
		return nil, err
	}

	key := cache.Key(req.Input)
	if o.cache != nil && key != "" {
		if raw, ok := o.cache.Get(ctx, key); ok {
			var cached finance.FinancialResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				fmt.Printf("[PIPELINE] Cache hit for %s\n", key[:24])
				o.persist(ctx, req, &cached)
				return &cached, nil
			}
			// Corrupt entry; recompute and overwrite below.
		}
	}

	start := time.Now()
	result := finance.Analyze(req.Input)
	fmt.Printf("[PIPELINE] Computed %d-year projection in %s\n", req.Input.UsefulLife, time.Since(start))

	if o.cache != nil && key != "" {
		if raw, err := json.Marshal(result); err == nil {
			if err := o.cache.Set(ctx, key, string(raw), o.cacheTTL); err != nil {
				fmt.Printf("[WARNING] Failed to cache result: %v\n", err)
			}
		}
	}

	o.persist(ctx, req, &result)
	return &result, nil
}

// Recompute refreshes one stored record in place: same input, current
// engine. Used by the scheduled refresh job after defaults or engine
// revisions change.
func (o *Orchestrator) Recompute(ctx context.Context, record *store.ProjectRecord) error {
	if o.repo == nil {
		return fmt.Errorf("no repository attached")
	}
	if err := validate.Input(record.Input); err != nil {
		return fmt.Errorf("stored input no longer valid: %w", err)
	}
	record.Result = finance.Analyze(record.Input)
	return o.repo.Save(ctx, record)
}

func (o *Orchestrator) persist(ctx context.Context, req Request, result *finance.FinancialResult) {
	if o.repo == nil || req.ProjectID == nil {
		return
	}
	record := &store.ProjectRecord{
		ID:     *req.ProjectID,
		Name:   req.Name,
		Input:  req.Input,
		Result: *result,
	}
	if err := o.repo.Save(ctx, record); err != nil {
		// Persistence is best effort; the caller still gets the result.
		fmt.Printf("[WARNING] Failed to persist project %s: %v\n", req.ProjectID, err)
	}
}
