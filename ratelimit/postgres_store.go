package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAttemptStore keeps attempt state in a shared Postgres table so
// the limit stays correct across horizontally scaled instances.
type PostgresAttemptStore struct {
	pool *pgxpool.Pool
}

func NewPostgresAttemptStore(pool *pgxpool.Pool) PostgresAttemptStore {
	return PostgresAttemptStore{pool: pool}
}

// EnsureAttemptSchema creates the attempts table when it does not exist yet.
// Statements run one by one: the cached-statement exec mode cannot prepare
// multi-command strings.
func EnsureAttemptSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rate_limit_attempts (
			key TEXT NOT NULL,
			at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS rate_limit_attempts_key_at_idx ON rate_limit_attempts (key, at)`,
	}
	for _, statement := range statements {
		if _, err := pool.Exec(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

// TakeAttempt prunes, counts and conditionally records inside one
// transaction holding a per-key advisory lock. The lock serializes
// concurrent checks for the same key across every connected instance;
// without it two instances could both read a stale count below max.
func (s PostgresAttemptStore) TakeAttempt(ctx context.Context, key string, now time.Time, window time.Duration, max int) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("postgres attempt store: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return false, fmt.Errorf("postgres attempt store: %w", err)
	}

	cutoff := now.Add(-window)
	if _, err := tx.Exec(ctx,
		`DELETE FROM rate_limit_attempts WHERE key = $1 AND at < $2`, key, cutoff,
	); err != nil {
		return false, fmt.Errorf("postgres attempt store: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM rate_limit_attempts WHERE key = $1`, key,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("postgres attempt store: %w", err)
	}

	allowed := count < max
	if allowed {
		if _, err := tx.Exec(ctx,
			`INSERT INTO rate_limit_attempts (key, at) VALUES ($1, $2)`, key, now,
		); err != nil {
			return false, fmt.Errorf("postgres attempt store: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("postgres attempt store: %w", err)
	}
	return allowed, nil
}
