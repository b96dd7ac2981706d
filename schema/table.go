package schema

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Konsultn-Engineering/sqlview/ast"
	"github.com/Konsultn-Engineering/sqlview/sqltype"
	"github.com/Konsultn-Engineering/sqlview/visitor"
)

// Column is one column of a Table.
type Column struct {
	table *Table
	name  string
	field string
	typ   *sqltype.Type
	index int
	link  *Link // set once the table's links are resolved
}

func (c *Column) Name() string        { return c.name }
func (c *Column) Field() string       { return c.field }
func (c *Column) Table() *Table       { return c.table }
func (c *Column) Type() *sqltype.Type { return c.typ }
func (c *Column) Index() int          { return c.index }
func (c *Column) SQLType() string     { return c.typ.SQL() }
func (c *Column) NotNull() bool       { return c.typ.IsNotNull() }
func (c *Column) Primary() bool       { return c.typ.IsPrimaryKey() }
func (c *Column) Comment() string     { return c.typ.Comment() }

// Alias is the unique select-list name of the column: "<table>__<column>".
func (c *Column) Alias() string { return c.table.name + "__" + c.name }

// Ref returns a table-qualified expression for the column.
func (c *Column) Ref() *ast.Column { return ast.Col(c.table.name, c.name) }

// Link returns the foreign key declared on c, or nil when c has none.
func (c *Column) Link() (*Link, error) {
	if err := c.table.resolve(); err != nil {
		return nil, err
	}
	return c.link, nil
}

// Links returns every link c takes part in: its own foreign key and, for a
// primary key, the foreign keys of the owning database that reference it.
func (c *Column) Links() ([]*Link, error) {
	var links []*Link
	l, err := c.Link()
	if err != nil {
		return nil, err
	}
	if l != nil {
		links = append(links, l)
	}
	children, err := c.table.ChildLinks()
	if err != nil {
		return nil, err
	}
	for _, tl := range children {
		if tl.Local == c {
			links = append(links, &Link{Local: tl.Remote, Remote: c})
		}
	}
	return links, nil
}

func (c *Column) String() string { return c.table.name + "." + c.name }

// Link is a foreign key: Local references Remote, the primary key of its table.
type Link struct {
	Local  *Column
	Remote *Column
}

// TableLink is a join candidate seen from one table: Table is the table to
// join, Local is a column of the table the links were requested on and
// Remote is the matching column of Table.
type TableLink struct {
	Table  *Table
	Local  *Column
	Remote *Column
}

// NotNull reports whether both join columns reject NULL, so an inner join
// cannot drop rows.
func (l TableLink) NotNull() bool { return l.Local.NotNull() && l.Remote.NotNull() }

// On returns the join condition Local = Remote.
func (l TableLink) On() ast.Node { return l.Local.Ref().Eq(l.Remote.Ref()) }

// Table describes one record's table.
type Table struct {
	ctx     *Context
	name    string
	record  *Record
	columns []*Column
	byName  map[string]*Column

	db atomic.Pointer[Database]

	linkOnce sync.Once
	linkErr  error
	links    []*Link
}

func (c *Context) newTable(rec *Record) (*Table, error) {
	name := rec.tableName
	if name == "" {
		name = c.naming.TableName(rec.name)
	}

	t := &Table{ctx: c, name: name, record: rec, byName: make(map[string]*Column)}
	for _, f := range rec.Fields() {
		if f.Name == "" || strings.HasPrefix(f.Name, "_") {
			continue
		}
		colName := c.naming.ColumnName(f.Name)
		if _, dup := t.byName[colName]; dup {
			return nil, &IncompatibleColumnTypeError{Record: rec.name, Field: f.Name, Reason: "column declared twice"}
		}

		typ, err := c.columnType(rec, f)
		if err != nil {
			return nil, err
		}
		col := &Column{table: t, name: colName, field: f.Name, typ: typ, index: len(t.columns)}
		t.columns = append(t.columns, col)
		t.byName[colName] = col
	}
	return t, nil
}

// resolve links every foreign-key column to the primary key of its target.
// Targets are only declared, never resolved, so reference cycles terminate.
func (t *Table) resolve() error {
	t.linkOnce.Do(func() {
		for _, col := range t.columns {
			if !col.typ.IsForeignKey() {
				continue
			}
			target, ok := col.typ.Target().(*Record)
			if !ok {
				t.linkErr = &IncompatibleColumnTypeError{Record: t.record.name, Field: col.field,
					Reason: fmt.Sprintf("foreign key target %s is not a record", col.typ.Target().Name())}
				return
			}
			tt, err := t.ctx.declare(target)
			if err != nil {
				t.linkErr = err
				return
			}
			pk := tt.PrimaryKey()
			if pk == nil {
				t.linkErr = &IncompatibleColumnTypeError{Record: t.record.name, Field: col.field,
					Reason: fmt.Sprintf("target table %s has no primary key", tt.name)}
				return
			}
			col.link = &Link{Local: col, Remote: pk}
			t.links = append(t.links, col.link)
		}
	})
	return t.linkErr
}

func (t *Table) Name() string      { return t.name }
func (t *Table) Record() *Record   { return t.record }
func (t *Table) Context() *Context { return t.ctx }

// Database returns the database the table was built into, or nil.
func (t *Table) Database() *Database { return t.db.Load() }

// Columns returns the columns in declaration order.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

func (t *Table) Column(name string) (*Column, error) {
	if c, ok := t.byName[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrColumnNotFound, t.name, name)
}

// PrimaryKey returns the first primary-key column, or nil.
func (t *Table) PrimaryKey() *Column {
	for _, c := range t.columns {
		if c.Primary() {
			return c
		}
	}
	return nil
}

// Ref returns a table-qualified expression for column. The column is not
// checked; use Column for that.
func (t *Table) Ref(column string) *ast.Column { return ast.Col(t.name, column) }

// ParentLinks returns one entry per foreign key of t, pointing at the
// referenced table.
func (t *Table) ParentLinks() ([]TableLink, error) {
	if err := t.resolve(); err != nil {
		return nil, err
	}
	links := make([]TableLink, 0, len(t.links))
	for _, l := range t.links {
		links = append(links, TableLink{Table: l.Remote.table, Local: l.Local, Remote: l.Remote})
	}
	return links, nil
}

// ChildLinks returns one entry per foreign key of the owning database that
// references t. Tables outside a database have no child links.
func (t *Table) ChildLinks() ([]TableLink, error) {
	db := t.db.Load()
	if db == nil {
		return nil, nil
	}
	var links []TableLink
	for _, other := range db.tables {
		if err := other.resolve(); err != nil {
			return nil, err
		}
		for _, l := range other.links {
			if l.Remote.table == t {
				links = append(links, TableLink{Table: other, Local: l.Remote, Remote: l.Local})
			}
		}
	}
	return links, nil
}

// CreateTableSQL renders the CREATE TABLE statement, preceded by
// DROP TABLE IF EXISTS when existOK is set.
func (t *Table) CreateTableSQL(existOK bool) (string, error) {
	key := ddlKey{table: t, existOK: existOK}
	if sql, ok := t.ctx.ddl.Get(key); ok {
		return sql, nil
	}

	sql, _, err := visitor.Render(t.ctx.dialect, t.createStmt(existOK))
	if err != nil {
		return "", fmt.Errorf("schema: render %s: %w", t.name, err)
	}
	t.ctx.ddl.Add(key, sql)
	return sql, nil
}

func (t *Table) createStmt(dropIfExists bool) *ast.CreateTableStmt {
	defs := make([]*ast.ColumnDef, len(t.columns))
	for i, c := range t.columns {
		defs[i] = &ast.ColumnDef{Name: c.name, SQLType: c.SQLType(), Comment: c.Comment()}
	}
	return &ast.CreateTableStmt{Table: ast.NewTable("", t.name, ""), Columns: defs, DropIfExists: dropIfExists}
}

func (t *Table) String() string { return t.name }
