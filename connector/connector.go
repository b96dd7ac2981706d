// Package connector opens database connections through registered driver
// providers and wraps them with statement logging and transactions.
package connector

import (
	"context"
	"errors"

	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/dialect"
)

var (
	ErrInvalidConfig = errors.New("connector: invalid config")
	ErrUnknownDriver = errors.New("connector: driver not registered")
)

// Connection is a live pool for one database.
type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

type Connector interface {
	Connect(ctx context.Context) (Connection, error)
	Close() error
}
