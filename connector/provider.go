package connector

import (
	"context"

	"github.com/Konsultn-Engineering/sqlview/dialect"
)

// Provider opens connections for one driver. Providers register themselves
// from an init function of their package.
type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
}
