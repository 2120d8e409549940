package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-process ProjectRepository used by tests and by the CLI
// when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*ProjectRecord
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[uuid.UUID]*ProjectRecord)}
}

func (r *MemoryRepo) Save(_ context.Context, record *ProjectRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.UpdatedAt = time.Now()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *MemoryRepo) Load(_ context.Context, id uuid.UUID) (*ProjectRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("no analysis found for project %s", id)
	}
	clone := *rec
	return &clone, nil
}

func (r *MemoryRepo) ListStale(_ context.Context, olderThan time.Duration, limit int) ([]*ProjectRecord, error) {
	cutoff := time.Now().Add(-olderThan)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var stale []*ProjectRecord
	for _, rec := range r.records {
		if rec.UpdatedAt.Before(cutoff) {
			clone := *rec
			stale = append(stale, &clone)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].UpdatedAt.Before(stale[j].UpdatedAt) })
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}
	return stale, nil
}
