package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the slice of pgxpool.Pool the journal uses; pgxmock satisfies it
// in tests.
type db interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresJournal implements Journal against the frontier_sessions table.
type PostgresJournal struct {
	pool db
}

// NewPostgres connects a journal to Postgres.
func NewPostgres(ctx context.Context, dsn string) (*PostgresJournal, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	return &PostgresJournal{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool-compatible handle.
func NewPostgresWithPool(pool db) *PostgresJournal {
	return &PostgresJournal{pool: pool}
}

// Close closes the underlying connection pool.
func (j *PostgresJournal) Close() {
	j.pool.Close()
}

// SessionOpened implements Journal.
func (j *PostgresJournal) SessionOpened(ctx context.Context, s Session) error {
	query := `
		INSERT INTO frontier_sessions (id, job, strategy, persist, opened_at, resumed_requests)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := j.pool.Exec(ctx, query, s.ID, s.Job, s.Strategy, s.Persist, s.OpenedAt, s.ResumedRequests)
	if err != nil {
		return fmt.Errorf("record session open: %w", err)
	}
	return nil
}

// SessionClosed implements Journal.
func (j *PostgresJournal) SessionClosed(ctx context.Context, id uuid.UUID, closedAt time.Time, reason string) error {
	query := `
		UPDATE frontier_sessions
		SET closed_at = $1, close_reason = $2
		WHERE id = $3;
	`
	_, err := j.pool.Exec(ctx, query, closedAt, reason, id)
	if err != nil {
		return fmt.Errorf("record session close: %w", err)
	}
	return nil
}
