package schema

import (
	"fmt"
	"strings"
)

// Database is the set of tables built from every record of a Root.
type Database struct {
	ctx    *Context
	name   string
	root   *Root
	tables []*Table
	byName map[string]*Table
}

func (c *Context) newDatabase(root *Root) (*Database, error) {
	db := &Database{ctx: c, name: root.DatabaseName(), root: root, byName: make(map[string]*Table)}

	for _, rec := range root.Records() {
		t, err := c.Table(rec)
		if err != nil {
			return nil, err
		}
		if prev, dup := db.byName[t.name]; dup {
			return nil, &DuplicateTableNameError{
				Database: db.name,
				Table:    t.name,
				Records:  []string{prev.record.name, rec.name},
			}
		}
		db.tables = append(db.tables, t)
		db.byName[t.name] = t
	}

	for _, t := range db.tables {
		t.db.Store(db)
	}
	return db, nil
}

func (d *Database) Name() string      { return d.name }
func (d *Database) Root() *Root       { return d.root }
func (d *Database) Context() *Context { return d.ctx }

// Tables returns the tables in record declaration order.
func (d *Database) Tables() []*Table {
	return append([]*Table(nil), d.tables...)
}

func (d *Database) Table(name string) (*Table, error) {
	if t, ok := d.byName[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrTableNotFound, name, d.name)
}

// Column looks up a column by its "table.column" name.
func (d *Database) Column(qualified string) (*Column, error) {
	table, column, ok := strings.Cut(qualified, ".")
	if !ok {
		return nil, fmt.Errorf("%w: %q is not table-qualified", ErrColumnNotFound, qualified)
	}
	t, err := d.Table(table)
	if err != nil {
		return nil, err
	}
	return t.Column(column)
}

// CreateSQL returns the CREATE TABLE statements of every table, one per
// element, each preceded by a separate DROP TABLE IF EXISTS when existOK is set.
func (d *Database) CreateSQL(existOK bool) ([]string, error) {
	stmts := make([]string, 0, len(d.tables)*2)
	for _, t := range d.tables {
		if existOK {
			stmts = append(stmts, "DROP TABLE IF EXISTS "+d.ctx.dialect.QuoteIdentifier(t.name))
		}
		sql, err := t.CreateTableSQL(false)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, sql)
	}
	return stmts, nil
}
