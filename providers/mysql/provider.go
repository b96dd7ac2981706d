// Package mysql registers the "mysql" driver, backed by go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"net"
	"strconv"

	"github.com/Konsultn-Engineering/sqlview/connector"
	"github.com/Konsultn-Engineering/sqlview/dialect"
	"github.com/go-sql-driver/mysql"
)

const defaultPort = 3306

type Provider struct{}

func init() {
	connector.Register("mysql", &Provider{})
}

// DriverConfig translates cfg into a driver configuration. SSLMode maps to
// the driver's tls parameter ("true", "skip-verify", "preferred" or a
// registered TLS config name).
func DriverConfig(cfg connector.Config) (*mysql.Config, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", connector.ErrInvalidConfig)
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	c := mysql.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	c.DBName = cfg.Database
	c.ParseTime = true
	c.Timeout = cfg.ConnectTimeout
	c.TLSConfig = cfg.SSLMode
	if len(cfg.Params) > 0 {
		c.Params = maps.Clone(cfg.Params)
	}
	return c, nil
}

// DSN returns the driver DSN for cfg.
func DSN(cfg connector.Config) (string, error) {
	c, err := DriverConfig(cfg)
	if err != nil {
		return "", err
	}
	return c.FormatDSN(), nil
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	c, err := DriverConfig(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := mysql.NewConnector(c)
	if err != nil {
		return nil, err
	}
	return connector.NewSQLConnection(sql.OpenDB(conn), p.Dialect(), cfg), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewMySQLDialect()
}
