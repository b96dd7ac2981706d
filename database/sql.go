package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Konsultn-Engineering/sqlview/cache"
)

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db    *sql.DB
	stmts *cache.StatementCache
}

type SqlOption func(*SqlDatabase)

// WithStatementCache prepares every query once and keeps up to size prepared
// statements.
func WithStatementCache(size int) SqlOption {
	return func(s *SqlDatabase) {
		if size > 0 {
			s.stmts = cache.NewStatementCache(size)
		}
	}
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB, opts ...SqlOption) *SqlDatabase {
	s := &SqlDatabase{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying pool.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

// Query executes a query that returns rows.
func (s *SqlDatabase) Query(query string, args ...any) (Rows, error) {
	return s.QueryContext(context.Background(), query, args...)
}

// QueryContext executes a query with a context.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if s.stmts != nil {
		stmt, perr := s.stmts.GetOrPrepare(ctx, s.db, query)
		if perr != nil {
			return nil, perr
		}
		rows, err = stmt.QueryContext(ctx, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// Exec executes a query without returning rows.
func (s *SqlDatabase) Exec(query string, args ...any) (Result, error) {
	return s.ExecContext(context.Background(), query, args...)
}

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	if s.stmts != nil {
		stmt, err := s.stmts.GetOrPrepare(ctx, s.db, query)
		if err != nil {
			return nil, err
		}
		return stmt.ExecContext(ctx, args...)
	}
	return s.db.ExecContext(ctx, query, args...) // database/sql.Result implements Result
}

// BeginTx starts a transaction. Statements inside it bypass the statement
// cache.
func (s *SqlDatabase) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &SqlTx{tx: tx}, nil
}

// PingContext verifies the connection to the database is alive.
func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the cached statements and the database.
func (s *SqlDatabase) Close() error {
	if s.stmts != nil {
		s.stmts.Close()
	}
	return s.db.Close()
}

// SetMaxOpenConns sets the maximum number of open connections.
func (s *SqlDatabase) SetMaxOpenConns(n int) { s.db.SetMaxOpenConns(n) }

// SetMaxIdleConns sets the maximum number of idle connections.
func (s *SqlDatabase) SetMaxIdleConns(n int) { s.db.SetMaxIdleConns(n) }

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

// Next prepares the next result row for reading.
func (s *SqlRows) Next() bool { return s.rows.Next() }

// Scan copies the columns from the current row into the provided destinations.
func (s *SqlRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }

// Close closes the rows iterator.
func (s *SqlRows) Close() error { return s.rows.Close() }

// Columns returns the column names.
func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }

// Err returns the error, if any, that was encountered during iteration.
func (s *SqlRows) Err() error { return s.rows.Err() }

// SqlTx implements Tx for *sql.Tx.
type SqlTx struct {
	tx *sql.Tx
}

// QueryContext executes a query inside the transaction.
func (t *SqlTx) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// ExecContext executes a statement inside the transaction.
func (t *SqlTx) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *SqlTx) Commit() error { return t.tx.Commit() }

func (t *SqlTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// Assert that SqlDatabase implements the Database interface.
var (
	_ Database = (*SqlDatabase)(nil)
	_ Tx       = (*SqlTx)(nil)
)
