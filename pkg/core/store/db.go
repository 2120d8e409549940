// Package store persists analyzed projects. The engine itself is oblivious
// to storage; everything here runs before or after a computation, never
// inside one.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the shared connection pool from DATABASE_URL.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the shared pool, nil when InitDB was never called or
// failed. Repositories treat a nil pool as "running without persistence".
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
