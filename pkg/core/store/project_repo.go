package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"solarfin/pkg/core/finance"
)

// ProjectRecord is one persisted analysis: the exact input the customer
// configured and the result computed from it.
type ProjectRecord struct {
	ID        uuid.UUID               `json:"id"`
	Name      string                  `json:"nome"`
	Input     finance.FinancialInput  `json:"input"`
	Result    finance.FinancialResult `json:"result"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// ProjectRepository abstracts persistence so the pipeline can run against
// Postgres in production and an in-memory fake in tests.
type ProjectRepository interface {
	Save(ctx context.Context, record *ProjectRecord) error
	Load(ctx context.Context, id uuid.UUID) (*ProjectRecord, error)
	// ListStale returns records last updated before the cutoff, oldest
	// first, for the scheduled recomputation job.
	ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]*ProjectRecord, error)
}

// ProjectRepo is the Postgres implementation.
//
// Schema (managed by migrations outside this repo):
//
//	CREATE TABLE IF NOT EXISTS solar_analysis (
//	  id UUID PRIMARY KEY,
//	  name TEXT,
//	  payload JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ProjectRepo struct{}

// NewProjectRepo creates a repository instance.
func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{}
}

type projectPayload struct {
	Input  finance.FinancialInput  `json:"input"`
	Result finance.FinancialResult `json:"result"`
}

// Save upserts one record keyed by project id.
func (r *ProjectRepo) Save(ctx context.Context, record *ProjectRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	payload, err := json.Marshal(projectPayload{Input: record.Input, Result: record.Result})
	if err != nil {
		return fmt.Errorf("marshal project payload: %w", err)
	}

	query := `
		INSERT INTO solar_analysis (id, name, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`

	record.UpdatedAt = time.Now()
	if _, err := pool.Exec(ctx, query, record.ID, record.Name, payload, record.UpdatedAt); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// Load retrieves one record by id.
func (r *ProjectRepo) Load(ctx context.Context, id uuid.UUID) (*ProjectRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT name, payload, updated_at FROM solar_analysis WHERE id = $1`

	var (
		name      string
		raw       []byte
		updatedAt time.Time
	)
	if err := pool.QueryRow(ctx, query, id).Scan(&name, &raw, &updatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no analysis found for project %s", id)
		}
		return nil, fmt.Errorf("load analysis: %w", err)
	}

	var payload projectPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal project payload: %w", err)
	}

	return &ProjectRecord{
		ID:        id,
		Name:      name,
		Input:     payload.Input,
		Result:    payload.Result,
		UpdatedAt: updatedAt,
	}, nil
}

// ListStale returns records not recomputed since the cutoff.
func (r *ProjectRepo) ListStale(ctx context.Context, olderThan time.Duration, limit int) ([]*ProjectRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, name, payload, updated_at
		FROM solar_analysis
		WHERE updated_at < $1
		ORDER BY updated_at ASC
		LIMIT $2
	`

	rows, err := pool.Query(ctx, query, time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, fmt.Errorf("list stale analyses: %w", err)
	}
	defer rows.Close()

	var records []*ProjectRecord
	for rows.Next() {
		var (
			rec ProjectRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &raw, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stale analysis: %w", err)
		}
		var payload projectPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal stale payload: %w", err)
		}
		rec.Input = payload.Input
		rec.Result = payload.Result
		records = append(records, &rec)
	}
	return records, rows.Err()
}
