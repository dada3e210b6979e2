// Package dbexec provides database query execution abstractions and the row
// scanning used to turn flat result sets back into nested JSON payloads.
package dbexec

import (
	"context"
	"database/sql"
)

// Rows abstracts sql.Rows to allow wrapped cleanup behavior.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Err() error
	Close() error
}

// QueryExecutor abstracts SQL execution so tests can swap in a mock handle.
type QueryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) (*sql.Row, error)
	PingContext(ctx context.Context) error
}

// StandardExecutor executes queries directly against a database handle.
type StandardExecutor struct {
	db *sql.DB
}

// NewStandardExecutor creates an executor that runs queries directly against
// the database.
func NewStandardExecutor(db *sql.DB) *StandardExecutor {
	return &StandardExecutor{db: db}
}

func (e *StandardExecutor) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	if e.db == nil {
		return nil, sql.ErrConnDone
	}
	return e.db.QueryContext(ctx, query, args...)
}

func (e *StandardExecutor) QueryRowContext(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	if e.db == nil {
		return nil, sql.ErrConnDone
	}
	return e.db.QueryRowContext(ctx, query, args...), nil
}

func (e *StandardExecutor) PingContext(ctx context.Context) error {
	if e.db == nil {
		return sql.ErrConnDone
	}
	return e.db.PingContext(ctx)
}
