// Package schema turns explicit record declarations into tables, columns and
// databases, discovers foreign-key links and renders DDL and INSERT
// statements. All descriptors are immutable after construction and cached per
// Context.
package schema

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/Konsultn-Engineering/sqlview/dialect"
	"github.com/Konsultn-Engineering/sqlview/sqltype"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Context is the schema-building policy plus the caches built under it.
type Context struct {
	// Configuration
	defaultNotNull bool
	aliases        map[reflect.Type]*sqltype.Type
	naming         NamingStrategy
	dialect        dialect.Dialect
	ddlCacheSize   int

	// Built descriptors
	tables    sync.Map // *Record -> *Table
	databases sync.Map // *Root -> *Database
	group     singleflight.Group
	ddl       *lru.Cache[ddlKey, string]
}

// ddlKey identifies one rendered CREATE TABLE statement. Tables are keyed by
// identity since two roots may declare records with the same table name.
type ddlKey struct {
	table   *Table
	existOK bool
}

type Option func(*Context)

// WithDefaultNotNull sets whether columns without an explicit nullability
// wrapper become NOT NULL. Enabled by default.
func WithDefaultNotNull(enabled bool) Option {
	return func(ctx *Context) { ctx.defaultNotNull = enabled }
}

// WithTypeAlias maps a Go type to a column type. goType is either a
// reflect.Type or a value of the Go type.
func WithTypeAlias(goType any, t *sqltype.Type) Option {
	return func(ctx *Context) {
		rt, ok := goType.(reflect.Type)
		if !ok {
			rt = reflect.TypeOf(goType)
		}
		ctx.aliases[rt] = t
	}
}

// WithNamingStrategy sets how record and field names become identifiers.
func WithNamingStrategy(strategy NamingStrategy) Option {
	return func(ctx *Context) {
		if strategy != nil {
			ctx.naming = strategy
		}
	}
}

// WithDialect sets the dialect DDL and INSERT statements are rendered with.
func WithDialect(d dialect.Dialect) Option {
	return func(ctx *Context) { ctx.dialect = d }
}

// WithDDLCacheSize sets the LRU size for rendered CREATE TABLE statements.
func WithDDLCacheSize(size int) Option {
	return func(ctx *Context) { ctx.ddlCacheSize = size }
}

// New creates a schema context with the default policy: NOT NULL columns,
// the built-in Go type aliases, "t_" table names and the MySQL dialect.
func New(options ...Option) *Context {
	ctx := &Context{
		defaultNotNull: true,
		aliases:        defaultAliases(),
		naming:         DefaultNamingStrategy(),
		dialect:        dialect.NewMySQLDialect(),
		ddlCacheSize:   256,
	}

	for _, opt := range options {
		opt(ctx)
	}

	if ctx.ddlCacheSize <= 0 {
		ctx.ddlCacheSize = 256
	}
	ctx.ddl, _ = lru.New[ddlKey, string](ctx.ddlCacheSize)
	return ctx
}

func defaultAliases() map[reflect.Type]*sqltype.Type {
	return map[reflect.Type]*sqltype.Type{
		reflect.TypeOf(""):          sqltype.Text,
		reflect.TypeOf(0):           sqltype.Int,
		reflect.TypeOf(int32(0)):    sqltype.Int,
		reflect.TypeOf(int64(0)):    sqltype.BigInt,
		reflect.TypeOf(float64(0)):  sqltype.Double,
		reflect.TypeOf(float32(0)):  sqltype.Float,
		reflect.TypeOf(false):       sqltype.Bool,
		reflect.TypeOf(time.Time{}): sqltype.Datetime,
	}
}

func (c *Context) DefaultNotNull() bool           { return c.defaultNotNull }
func (c *Context) Dialect() dialect.Dialect       { return c.dialect }
func (c *Context) NamingStrategy() NamingStrategy { return c.naming }

// Alias returns the column type registered for a Go type.
func (c *Context) Alias(goType reflect.Type) (*sqltype.Type, bool) {
	t, ok := c.aliases[goType]
	return t, ok
}

// Table returns the table of rec, building and caching it on first use.
// Foreign keys are resolved after the table itself is cached, so records may
// reference each other or themselves.
func (c *Context) Table(rec *Record) (*Table, error) {
	t, err := c.declare(rec)
	if err != nil {
		return nil, err
	}
	if err := t.resolve(); err != nil {
		return nil, err
	}
	return t, nil
}

// Database builds the tables of every record declared under root.
func (c *Context) Database(root *Root) (*Database, error) {
	if root == nil {
		return nil, fmt.Errorf("schema: nil root")
	}
	if db, ok := c.databases.Load(root); ok {
		return db.(*Database), nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("db:%p", root), func() (any, error) {
		if db, ok := c.databases.Load(root); ok {
			return db, nil
		}
		db, err := c.newDatabase(root)
		if err != nil {
			return nil, err
		}
		actual, _ := c.databases.LoadOrStore(root, db)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Database), nil
}

// declare builds the columns of rec without resolving its links.
func (c *Context) declare(rec *Record) (*Table, error) {
	if rec == nil {
		return nil, fmt.Errorf("schema: nil record")
	}
	if t, ok := c.tables.Load(rec); ok {
		return t.(*Table), nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("table:%p", rec), func() (any, error) {
		if t, ok := c.tables.Load(rec); ok {
			return t, nil
		}
		t, err := c.newTable(rec)
		if err != nil {
			return nil, err
		}
		actual, _ := c.tables.LoadOrStore(rec, t)
		return actual, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// columnType resolves a field spec to its normalized column type.
func (c *Context) columnType(rec *Record, f FieldDef) (*sqltype.Type, error) {
	incompatible := func(reason string, err error) error {
		return &IncompatibleColumnTypeError{Record: rec.name, Field: f.Name, Reason: reason, Err: err}
	}

	var declared *sqltype.Type
	switch spec := f.Spec.(type) {
	case nil:
		return nil, incompatible("no type declared", nil)
	case *sqltype.Type:
		if spec == nil {
			return nil, incompatible("no type declared", nil)
		}
		declared = spec
	case *Record:
		fk, err := sqltype.Derive(sqltype.Int, sqltype.ModForeignKey, spec)
		if err != nil {
			return nil, incompatible("invalid foreign key", err)
		}
		declared = fk
	case reflect.Type:
		t, ok := c.aliases[spec]
		if !ok {
			return nil, incompatible(fmt.Sprintf("no alias registered for %s", spec), nil)
		}
		declared = t
	default:
		t, ok := c.aliases[reflect.TypeOf(spec)]
		if !ok {
			return nil, incompatible(fmt.Sprintf("no alias registered for %T", spec), nil)
		}
		declared = t
	}

	t, err := sqltype.Normalize(declared, c.defaultNotNull)
	if err != nil {
		return nil, incompatible("cannot normalize "+declared.Name(), err)
	}
	return t, nil
}
