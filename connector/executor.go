package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Konsultn-Engineering/sqlview/database"
)

// Executor wraps a database.Database and logs every statement with its
// duration at debug level.
type Executor struct {
	db      database.Database
	logger  *slog.Logger
	timeout time.Duration
}

// NewExecutor wraps db. A positive timeout bounds every ExecContext call;
// queries are bounded by their caller's context since their rows outlive the
// call.
func NewExecutor(db database.Database, logger *slog.Logger, timeout time.Duration) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{db: db, logger: logger, timeout: timeout}
}

func (e *Executor) Query(query string, args ...any) (database.Rows, error) {
	return e.QueryContext(context.Background(), query, args...)
}

func (e *Executor) QueryContext(ctx context.Context, query string, args ...any) (database.Rows, error) {
	start := time.Now()
	rows, err := e.db.QueryContext(ctx, query, args...)
	logStatement(ctx, e.logger, "query", query, args, start, err)
	return rows, err
}

func (e *Executor) Exec(query string, args ...any) (database.Result, error) {
	return e.ExecContext(context.Background(), query, args...)
}

func (e *Executor) ExecContext(ctx context.Context, query string, args ...any) (database.Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	start := time.Now()
	res, err := e.db.ExecContext(ctx, query, args...)
	logStatement(ctx, e.logger, "exec", query, args, start, err)
	return res, err
}

func (e *Executor) BeginTx(ctx context.Context) (database.Tx, error) {
	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	e.logger.DebugContext(ctx, "begin")
	return &Tx{tx: tx, logger: e.logger}, nil
}

func (e *Executor) PingContext(ctx context.Context) error { return e.db.PingContext(ctx) }
func (e *Executor) Close() error                          { return e.db.Close() }
func (e *Executor) SetMaxOpenConns(n int)                 { e.db.SetMaxOpenConns(n) }
func (e *Executor) SetMaxIdleConns(n int)                 { e.db.SetMaxIdleConns(n) }

// Tx is a logged transaction.
type Tx struct {
	tx     database.Tx
	logger *slog.Logger
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (database.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	logStatement(ctx, t.logger, "tx query", query, args, start, err)
	return rows, err
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (database.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	logStatement(ctx, t.logger, "tx exec", query, args, start, err)
	return res, err
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.logger.Debug("commit")
	return nil
}

func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return err
	}
	t.logger.Debug("rollback")
	return nil
}

// RunInTx runs fn in a transaction on db. The transaction commits when fn
// returns nil and rolls back when it fails or panics.
func RunInTx(ctx context.Context, db database.Database, fn func(tx database.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		done = true
		if rerr := tx.Rollback(); rerr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	done = true
	return nil
}

func logStatement(ctx context.Context, logger *slog.Logger, op, query string, args []any, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("sql", query),
		slog.Int("args", len(args)),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	}
	logger.LogAttrs(ctx, slog.LevelDebug, op, attrs...)
}

var (
	_ database.Database = (*Executor)(nil)
	_ database.Tx       = (*Tx)(nil)
)
