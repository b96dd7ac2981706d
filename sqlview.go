// Package sqlview binds a declared schema to a live database: tables are
// created from record declarations, rows are inserted through their column
// types and views query them with foreign-key joins.
//
//	root := schema.NewRoot("School")
//	root.Record("Student", schema.Field("id", sqltype.PrimaryKey(sqltype.Int)))
//	s, err := sqlview.Open(ctx, "sqlite", connector.Config{Database: ":memory:"}, root)
//	rows, err := s.Table("t_student").Index(query.Page(0, 20)).Maps(ctx)
package sqlview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Konsultn-Engineering/sqlview/connector"
	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/query"
	"github.com/Konsultn-Engineering/sqlview/schema"
)

// ErrInTx is returned by Tx and Close on a session passed to a Tx callback.
var ErrInTx = errors.New("sqlview: session is inside a transaction")

// Session is a schema database bound to a connection. A Session is safe for
// concurrent use; the views it creates are not.
type Session struct {
	connector connector.Connector
	conn      connector.Connection
	db        *schema.Database
	factory   *query.Factory
	exec      database.Querier
	tx        database.Tx
}

type options struct {
	schema    []schema.Option
	query     []query.Option
	connector []connector.Option
}

type Option func(*options)

// WithSchemaOptions sets the schema policy. The dialect defaults to the
// connection's.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(o *options) { o.schema = append(o.schema, opts...) }
}

// WithQueryOptions sets the defaults of the session's views.
func WithQueryOptions(opts ...query.Option) Option {
	return func(o *options) { o.query = append(o.query, opts...) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.connector = append(o.connector, connector.WithLogger(logger)) }
}

// Open connects through the provider registered as driver and builds the
// schema database of root. The provider package must be imported for its
// registration, e.g. _ "github.com/Konsultn-Engineering/sqlview/providers/sqlite".
func Open(ctx context.Context, driver string, cfg connector.Config, root *schema.Root, opts ...Option) (*Session, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c, err := connector.New(driver, cfg, o.connector...)
	if err != nil {
		return nil, err
	}
	conn, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}

	sctx := schema.New(append([]schema.Option{schema.WithDialect(conn.Dialect())}, o.schema...)...)
	db, err := sctx.Database(root)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("sqlview: %w", err)
	}

	exec := conn.Database()
	return &Session{
		connector: c,
		conn:      conn,
		db:        db,
		factory:   query.NewFactory(db, append([]query.Option{query.WithExecutor(exec)}, o.query...)...),
		exec:      exec,
	}, nil
}

func (s *Session) Schema() *schema.Database         { return s.db }
func (s *Session) Connection() connector.Connection { return s.conn }
func (s *Session) Factory() *query.Factory          { return s.factory }

// Table returns a view bound to table.
func (s *Session) Table(table any) *query.View { return s.factory.Table(table) }

// CreateTables runs the DDL of every table in declaration order. existOK
// drops existing tables first.
func (s *Session) CreateTables(ctx context.Context, existOK bool) error {
	stmts, err := s.db.CreateSQL(existOK)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := s.exec.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlview: create tables: %w", err)
		}
	}
	return nil
}

// Insert boxes args and named into a row of table, positionally and by
// column name, and inserts it.
func (s *Session) Insert(ctx context.Context, table string, args []any, named map[string]any) (database.Result, error) {
	t, err := s.db.Table(table)
	if err != nil {
		return nil, err
	}
	row, err := schema.NewRow(t, args, named)
	if err != nil {
		return nil, err
	}
	return s.InsertRow(ctx, row)
}

// InsertRow validates row and inserts it.
func (s *Session) InsertRow(ctx context.Context, row *schema.Row) (database.Result, error) {
	if err := row.Validate(); err != nil {
		return nil, err
	}
	sql, args, err := row.InsertSQL(s.factory.Dialect())
	if err != nil {
		return nil, err
	}
	return s.exec.ExecContext(ctx, sql, args...)
}

// Tx runs fn with a session whose statements and views execute in one
// transaction. It commits when fn returns nil and rolls back otherwise.
func (s *Session) Tx(ctx context.Context, fn func(tx *Session) error) error {
	if s.tx != nil {
		return ErrInTx
	}
	return connector.RunInTx(ctx, s.conn.Database(), func(tx database.Tx) error {
		child := *s
		child.tx = tx
		child.exec = tx
		child.factory = s.factory.Using(tx)
		return fn(&child)
	})
}

// Close closes the connection.
func (s *Session) Close() error {
	if s.tx != nil {
		return ErrInTx
	}
	return s.connector.Close()
}
