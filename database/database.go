// Package database is the executor boundary: rendered statements and their
// ordered arguments go in, rows and results come out.
package database

import (
	"context"
)

// Querier runs rendered statements. Both Database and Tx implement it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
}

type Database interface {
	Querier
	Query(query string, args ...any) (Rows, error)
	Exec(query string, args ...any) (Result, error)
	BeginTx(ctx context.Context) (Tx, error)
	PingContext(ctx context.Context) error
	Close() error
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
}

// Tx is a transaction. Exactly one of Commit or Rollback ends it; Rollback
// after Commit is a no-op.
type Tx interface {
	Querier
	Commit() error
	Rollback() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}
