package connector

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/dialect"
)

// SQLConnection is a Connection over a database/sql pool, used by the
// providers whose drivers plug into database/sql.
type SQLConnection struct {
	db      *database.SqlDatabase
	dialect dialect.Dialect
}

// NewSQLConnection applies the pool and statement cache settings of cfg to
// db.
func NewSQLConnection(db *sql.DB, d dialect.Dialect, cfg Config) *SQLConnection {
	if cfg.Pool.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	}
	if cfg.Pool.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	}
	if cfg.Pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}
	if cfg.Pool.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime)
	}

	var opts []database.SqlOption
	if cfg.StatementCache > 0 {
		opts = append(opts, database.WithStatementCache(cfg.StatementCache))
	}
	return &SQLConnection{db: database.NewSqlDatabase(db, opts...), dialect: d}
}

func (c *SQLConnection) Database() database.Database { return c.db }
func (c *SQLConnection) DB() *sql.DB                 { return c.db.DB() }
func (c *SQLConnection) Dialect() dialect.Dialect    { return c.dialect }

func (c *SQLConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConnection) Stats() ConnectionStats {
	return StatsFromDB(c.db.DB().Stats())
}

func (c *SQLConnection) Close() error { return c.db.Close() }

var _ Connection = (*SQLConnection)(nil)
