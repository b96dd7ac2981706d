// Package postgres registers the "postgres" driver, backed by a pgx pool.
package postgres

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/Konsultn-Engineering/sqlview/connector"
	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/dialect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const defaultPort = 5432

type Provider struct{}

func init() {
	connector.Register("postgres", &Provider{})
}

// DSN returns the connection URL for cfg.
func DSN(cfg connector.Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	b := connector.NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, port).
		Database(cfg.Database).
		Param("sslmode", cfg.SSLMode).
		Params(cfg.Params).
		WithPostgresDefaults()
	if err := b.Validate(); err != nil {
		return "", err
	}
	return b.Build(), nil
}

// PoolConfig translates cfg into a pgxpool configuration. Pool settings left
// at zero get the defaults below.
func PoolConfig(cfg connector.Config) (*pgxpool.Config, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.Pool.MaxOpen <= 0 {
		cfg.Pool.MaxOpen = 10
	}
	if cfg.Pool.MaxLifetime == 0 {
		cfg.Pool.MaxLifetime = time.Hour
	}
	if cfg.Pool.MaxIdleTime == 0 {
		cfg.Pool.MaxIdleTime = 30 * time.Minute
	}

	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(min(cfg.Pool.MaxIdle, cfg.Pool.MaxOpen))
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime
	if cfg.StatementCache > 0 {
		poolCfg.ConnConfig.StatementCacheCapacity = cfg.StatementCache
	}
	return poolCfg, nil
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return &connection{pool: pool, db: database.NewPgxDatabase(pool), dialect: p.Dialect()}, nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}

type connection struct {
	pool    *pgxpool.Pool
	db      *database.PgxDatabase
	dialect dialect.Dialect

	sqlOnce sync.Once
	sqlDB   *sql.DB
}

func (c *connection) Database() database.Database { return c.db }
func (c *connection) Dialect() dialect.Dialect    { return c.dialect }

// DB returns a database/sql handle sharing the pgx pool, for code that needs
// *sql.DB.
func (c *connection) DB() *sql.DB {
	c.sqlOnce.Do(func() {
		c.sqlDB = stdlib.OpenDBFromPool(c.pool)
	})
	return c.sqlDB
}

func (c *connection) Health(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *connection) Stats() connector.ConnectionStats {
	s := c.pool.Stat()
	return connector.ConnectionStats{
		MaxOpen:         int(s.MaxConns()),
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

func (c *connection) Close() error {
	if c.sqlDB != nil {
		c.sqlDB.Close()
	}
	c.pool.Close()
	return nil
}
