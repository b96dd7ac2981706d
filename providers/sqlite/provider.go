// Package sqlite registers the "sqlite" driver, backed by modernc.org/sqlite.
// Config.Database is the file path or ":memory:".
package sqlite

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/Konsultn-Engineering/sqlview/connector"
	"github.com/Konsultn-Engineering/sqlview/dialect"
	_ "modernc.org/sqlite"
)

const memory = ":memory:"

type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
}

// DSN returns the file URI for cfg. Foreign keys are enforced unless a
// _pragma parameter says otherwise.
func DSN(cfg connector.Config) string {
	q := url.Values{}
	for k, v := range cfg.Params {
		q.Set(k, v)
	}
	if _, ok := cfg.Params["_pragma"]; !ok {
		q.Set("_pragma", "foreign_keys(1)")
	}
	return "file:" + cfg.Database + "?" + q.Encode()
}

// Connect opens the database. An in-memory database lives in one
// connection, so its pool is limited to one.
func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	db, err := sql.Open("sqlite", DSN(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.Database == memory {
		cfg.Pool.MaxOpen = 1
		cfg.Pool.MaxLifetime = 0
		cfg.Pool.MaxIdleTime = 0
	}
	return connector.NewSQLConnection(db, p.Dialect(), cfg), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}
