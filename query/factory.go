// Package query builds SELECT statements over a schema database. A View
// accumulates clause state and renders it to SQL plus ordered parameters;
// execution helpers send the rendered statement to a database.Querier.
package query

import (
	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/dialect"
	"github.com/Konsultn-Engineering/sqlview/schema"
)

// Factory creates views over one schema database with shared settings.
type Factory struct {
	db       *schema.Database
	dialect  dialect.Dialect
	exec     database.Querier
	parents  bool
	children bool
}

type Option func(*Factory)

// WithDialect overrides the dialect of the schema context.
func WithDialect(d dialect.Dialect) Option {
	return func(f *Factory) {
		if d != nil {
			f.dialect = d
		}
	}
}

// WithParentJoins sets whether new views join the tables their foreign keys
// reference. Enabled by default.
func WithParentJoins(enabled bool) Option {
	return func(f *Factory) { f.parents = enabled }
}

// WithChildJoins sets whether new views join the tables referencing them.
// Enabled by default.
func WithChildJoins(enabled bool) Option {
	return func(f *Factory) { f.children = enabled }
}

// WithExecutor sets the database or transaction the execution helpers query.
func WithExecutor(exec database.Querier) Option {
	return func(f *Factory) { f.exec = exec }
}

func NewFactory(db *schema.Database, opts ...Option) *Factory {
	f := &Factory{
		db:       db,
		dialect:  db.Context().Dialect(),
		parents:  true,
		children: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Database() *schema.Database { return f.db }
func (f *Factory) Dialect() dialect.Dialect   { return f.dialect }
func (f *Factory) Executor() database.Querier { return f.exec }

// Using returns a copy of the factory whose views execute on exec, typically
// a transaction.
func (f *Factory) Using(exec database.Querier) *Factory {
	c := *f
	c.exec = exec
	return &c
}

// New returns an unbound view.
func (f *Factory) New() *View {
	return &View{
		factory:  f,
		parents:  f.parents,
		children: f.children,
	}
}

// Table returns a view bound to table, a *schema.Table or a table name.
func (f *Factory) Table(table any) *View {
	return f.New().Table(table)
}
